package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	tokenContextKey     = "sessionToken"
	sessionIDContextKey = "sessionID"
)

// Middleware rejects requests without a valid, unrevoked bearer token.
func (s *Session) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := s.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(tokenContextKey, tokenString)
		c.Set(sessionIDContextKey, claims.ID)
		c.Next()
	}
}

func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
