package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, durations and in-flight gauges into the
// application metrics. The route template (c.FullPath) is used as the path
// label so parameterized routes stay low-cardinality; unmatched routes are
// grouped under "unmatched".
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		active := m.HTTPActiveRequests.WithLabelValues(method, path)
		active.Inc()
		start := time.Now()

		c.Next()

		active.Dec()
		m.RecordHTTPRequest(method, path, c.Writer.Status(), time.Since(start))
	}
}
