package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wskill_http_requests_total",
		Help: "HTTP requests served, by method, path and status.",
	}, []string{"method", "path", "status"})

	// TranscriptionDuration tracks wall-clock engine time for requests
	// served over HTTP.
	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wskill_transcription_duration_seconds",
		Help:    "Duration of transcription engine calls.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})
)

// Metrics records per-request Prometheus metrics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		requestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
