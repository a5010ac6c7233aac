package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
)

// unmatchedRoute labels requests that hit no route, keeping the path label
// bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests.  The path
// label is the route template (/api/v1/patents/:id), never the raw URL.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	if m == nil {
		m = prometheus.NewNopAppMetrics()
	}
	return func(c *gin.Context) {
		method := c.Request.Method
		active := m.HTTPActiveRequests.WithLabelValues(method)
		active.Inc()
		start := time.Now()

		c.Next()

		active.Dec()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(method, route, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
