package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthOK(t *testing.T) {
	checker := NewHealthChecker("memory", nil, "1.0.0", zap.NewNop())
	router := gin.New()
	router.GET("/health", checker.Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"backend":"memory"`)
}

func TestHealthReportsUnreachableBackend(t *testing.T) {
	calls := 0
	pinger := PingerFunc(func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	checker := NewHealthChecker("redis", pinger, "1.0.0", zap.NewNop())
	router := gin.New()
	router.GET("/health", checker.Handle)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
	}
	assert.Equal(t, 1, calls, "second request should be served from cache")
}

func TestHealthRechecksAfterCacheExpires(t *testing.T) {
	calls := 0
	pinger := PingerFunc(func(ctx context.Context) error {
		calls++
		return nil
	})
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	checker := NewHealthChecker("postgres", pinger, "1.0.0", zap.NewNop())
	checker.now = func() time.Time { return now }

	checker.check(context.Background())
	now = now.Add(10 * time.Second)
	checker.check(context.Background())

	assert.Equal(t, 2, calls)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(time.Second))

	var hasDeadline bool
	router.GET("/", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, hasDeadline)
}
