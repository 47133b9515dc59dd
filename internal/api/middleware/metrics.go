package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// Metrics returns a gin middleware that counts requests and records their
// duration per route. Unmatched routes are reported as "unknown" and
// nonstandard methods as "other", so clients cannot grow the label set.
func Metrics(set *metrics.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := methodLabel(c.Request.Method)
		set.GetOrCreateCounter(fmt.Sprintf(`http_requests_total{method=%q,route=%q,status="%d"}`,
			method, route, c.Writer.Status())).Inc()
		set.GetOrCreateSummary(fmt.Sprintf(`http_request_duration_seconds{method=%q,route=%q}`,
			method, route)).UpdateDuration(start)
	}
}

func methodLabel(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return "other"
}
