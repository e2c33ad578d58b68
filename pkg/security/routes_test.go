package security

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, session *Session, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, router.SetTrustedProxies(nil))

	limiter := rate_limiter.NewRateLimiter(limit, 5*time.Minute)
	t.Cleanup(limiter.Stop)

	protected := router.Group("")
	protected.Use(session.Middleware())
	protected.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewLoginHandler(session, limiter, zap.NewNop()).RegisterRoutes(router, protected)
	return router
}

func login(router *gin.Engine, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"password": password})
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func withToken(method, path, token string) *http.Request {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestLoginLogoutFlow(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 10)

	w := login(router, testPassword)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withToken(http.MethodGet, "/ping", resp.Token))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withToken(http.MethodPost, "/auth/logout", resp.Token))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withToken(http.MethodGet, "/ping", resp.Token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRequiresToken(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withToken(http.MethodGet, "/ping", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withToken(http.MethodGet, "/ping", "garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongPasswordOverHTTP(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 10)

	assert.Equal(t, http.StatusUnauthorized, login(router, "wrong").Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 2)

	assert.Equal(t, http.StatusUnauthorized, login(router, "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, login(router, "wrong").Code)

	w := login(router, testPassword)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
}

func loginFrom(router *gin.Engine, remoteAddr, forwardedFor, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.Header.Set("User-Agent", "agent-"+forwardedFor)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 3)

	limited := 0
	for i := 1; i <= 20; i++ {
		w := loginFrom(router, "198.51.100.7:40000", fmt.Sprintf("203.0.113.%d", i), "wrong")
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 17, limited)
}

func TestLoginRateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	session, _ := newTestSession(t)
	router := setupRouter(t, session, 1)
	require.NoError(t, router.SetTrustedProxies([]string{"10.0.0.1"}))

	assert.Equal(t, http.StatusUnauthorized, loginFrom(router, "10.0.0.1:40000", "203.0.113.1", "wrong").Code)
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(router, "10.0.0.1:40001", "203.0.113.1", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, loginFrom(router, "10.0.0.1:40002", "203.0.113.2", "wrong").Code)
}
