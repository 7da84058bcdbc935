package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/services"
)

// Metrics counts every request by method, matched route and final status.
func Metrics(m *services.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status())
	}
}
