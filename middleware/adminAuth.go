package middleware

import (
	"net/http"

	"coachhub/handlers"
	"coachhub/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminOnlyMiddleware must run after AuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(handlers.CallerKey)
		caller, _ := v.(models.Caller)
		if !caller.IsAdmin() {
			zap.L().Warn("Admin route refused", zap.String("userID", caller.UserID), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}
