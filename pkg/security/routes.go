package security

import (
	"net/http"
	"strconv"
	"time"

	"inventory/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginHandler struct {
	session     *Session
	rateLimiter *rate_limiter.RateLimiter
	logger      *zap.Logger
}

func NewLoginHandler(session *Session, rateLimiter *rate_limiter.RateLimiter, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		session:     session,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RegisterRoutes puts login on the public router and logout behind the session middleware.
func (l *LoginHandler) RegisterRoutes(public gin.IRoutes, protected gin.IRoutes) {
	public.POST("/auth/login", l.Login)
	protected.POST("/auth/logout", l.Logout)
}

func (l *LoginHandler) Login(c *gin.Context) {
	key := clientKey(c)
	if !l.rateLimiter.IsAllowed(key) {
		resetAt := l.rateLimiter.ResetAt(key).Format(time.RFC3339)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.rateLimiter.Limit()))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", resetAt)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":    "Too many login attempts. Try again later.",
			"reset_at": resetAt,
		})
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	token, expiresAt, err := l.session.Login(req.Password)
	if err != nil {
		l.logger.Info("Rejected login attempt", zap.String("client", key))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expiresAt.UTC().Format(time.RFC3339)})
}

func (l *LoginHandler) Logout(c *gin.Context) {
	if err := l.session.Logout(TokenFromContext(c)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.Status(http.StatusNoContent)
}

// clientKey identifies the caller for rate limiting. Forwarded headers only count when
// the engine trusts the proxy that sent them (gin.Engine.SetTrustedProxies).
func clientKey(c *gin.Context) string {
	return c.ClientIP()
}
