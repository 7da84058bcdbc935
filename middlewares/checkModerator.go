package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckModerator only lets callers with the moderator role through. It must run
// after CheckAuth.
func CheckModerator(c *gin.Context) {
	if !c.GetBool(ModeratorKey) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Moderator access required"})
		return
	}
	c.Next()
}
