package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics groups the request collectors. Labels stay bounded: route is
// the registered Gin pattern (or "unmatched"), never the raw URL.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
	size     *prometheus.HistogramVec
	replays  *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers the collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		}),
		size: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(128, 4, 8), // 128B..2MiB
		}, []string{"method", "route"}),
		replays: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_idempotent_replays_total",
			Help: "Requests that carried an already-used Idempotency-Key.",
		}, []string{"route"}),
	}
}

var defaultHTTPMetrics = NewHTTPMetrics(prometheus.DefaultRegisterer)

// Metrics instruments requests with the collectors registered on the default
// Prometheus registry. Expose them with promhttp.Handler().
func Metrics() gin.HandlerFunc { return defaultHTTPMetrics.Handler() }

// Handler returns the instrumenting middleware for m.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.inflight.Inc()
		defer m.inflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if n := c.Writer.Size(); n >= 0 {
			m.size.WithLabelValues(method, route).Observe(float64(n))
		}
		if IsReplay(c) {
			m.replays.WithLabelValues(route).Inc()
		}
	}
}
