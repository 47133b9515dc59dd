package handlers

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics handles GET /metrics in the Prometheus text format. Process
// metrics are included.
func Metrics(c *gin.Context) {
	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	metrics.WritePrometheus(c.Writer, true)
}
