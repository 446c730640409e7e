package middleware

import (
	"strconv"

	"todo-panel/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics counts every handled request. The route template is
// used as the path label so IDs don't blow up cardinality.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
