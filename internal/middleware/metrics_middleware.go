package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_report/internal/metrics"
)

// MetricsMiddleware records request count and latency per route template.
// Unmatched routes are grouped under "unmatched" to keep label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
