package middleware

import (
	"net/http"
	"strings"

	"coachhub/handlers"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the bearer token into a caller. With optional set, requests
// without a token continue anonymously, but a supplied token must still be valid.
func AuthMiddleware(verifier *utils.TokenVerifier, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Missing Authorization header"})
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		caller, err := verifier.CallerFromToken(tokenString)
		if err != nil {
			zap.L().Debug("Token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid token"})
			return
		}

		c.Set(handlers.CallerKey, caller)
		c.Next()
	}
}
