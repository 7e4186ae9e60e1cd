// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)

	VisitsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "barber_visits_recorded_total", Help: "Visits recorded, by payment method"},
		[]string{"payment_method"},
	)
	SalesAmount = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "barber_sales_amount_total", Help: "Sum of recorded visit totals, by payment method"},
		[]string{"payment_method"},
	)
	PasswordResets = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "barber_password_reset_requests_total", Help: "Password reset requests, by outcome"},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpReqTotal, httpLatency, VisitsRecorded, SalesAmount, PasswordResets)
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
