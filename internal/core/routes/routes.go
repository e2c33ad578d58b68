package routes

import (
	"fmt"
	"time"

	"inventory/internal/core/container"
	"inventory/internal/core/metrics"
	"inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 15 * time.Second

// NewRouter builds the engine with every route the container provides.
func NewRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(c.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	router.Use(
		middleware.RecoveryMiddleware(c.Logger),
		middleware.RequestLogger(c.Logger),
		middleware.TimeoutMiddleware(requestTimeout),
	)

	RegisterUtilityRoutes(router, c)
	protected := RegisterProtectedRoutes(router, c)
	c.LoginHandler.RegisterRoutes(router, protected)

	return router, nil
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/health", c.Health.Handle)
	router.GET("/metrics", metrics.Handler())
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) *gin.RouterGroup {
	protected := router.Group("")
	protected.Use(c.Session.Middleware())

	c.AssetsHandler.RegisterRoutes(protected)
	c.ReportsHandler.RegisterRoutes(protected)
	c.UsersHandler.RegisterRoutes(protected)
	c.NotificationsHandler.RegisterRoutes(protected)
	if c.HistoryHandler != nil {
		c.HistoryHandler.RegisterRoutes(protected)
	}
	if c.SheetsHandler != nil {
		c.SheetsHandler.RegisterRoutes(protected)
	}

	return protected
}
