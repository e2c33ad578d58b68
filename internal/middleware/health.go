package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthStatus struct {
	Status      string    `json:"status"`
	Backend     string    `json:"backend"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// HealthChecker serves GET /health. Backend checks are cached for cacheDuration.
type HealthChecker struct {
	mu            sync.Mutex
	backend       string
	pinger        Pinger
	version       string
	startTime     time.Time
	lastStatus    *HealthStatus
	cacheDuration time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewHealthChecker(backend string, pinger Pinger, version string, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		backend:       backend,
		pinger:        pinger,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
		logger:        logger,
		now:           time.Now,
	}
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := h.check(c.Request.Context())
	if status.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *HealthChecker) check(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if h.lastStatus != nil && now.Sub(h.lastStatus.LastChecked) < h.cacheDuration {
		cached := *h.lastStatus
		cached.Uptime = now.Sub(h.startTime).Round(time.Second).String()
		return cached
	}

	status := HealthStatus{
		Status:      "ok",
		Backend:     h.backend,
		LastChecked: now,
		Uptime:      now.Sub(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}

	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(pingCtx); err != nil {
			h.logger.Warn("Health check failed", zap.String("backend", h.backend), zap.Error(err))
			status.Status = "unavailable"
		}
	}

	h.lastStatus = &status
	return status
}
