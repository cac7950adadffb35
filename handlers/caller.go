package handlers

import (
	"coachhub/models"

	"github.com/gin-gonic/gin"
)

// CallerKey is the context key the auth middleware stores the caller under.
const CallerKey = "caller"

// callerFrom returns the caller attached by the auth middleware; anonymous if none.
func callerFrom(c *gin.Context) models.Caller {
	if v, exists := c.Get(CallerKey); exists {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Caller{}
}
