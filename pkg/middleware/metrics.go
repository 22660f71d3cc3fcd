package middleware

import (
	"bitwise74/medflow-api/internal/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// NewMetricsMiddleware records every request under its route template so
// path parameters don't explode label cardinality
func NewMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
