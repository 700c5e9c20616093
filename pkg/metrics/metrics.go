package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics holds the process-wide collectors. HTTP collectors are driven by the
// gin middleware; sync collectors are incremented by the sync service.
type Metrics struct {
	registry *prometheus.Registry

	reqTotal *prometheus.CounterVec
	reqDurMs *prometheus.HistogramVec

	syncTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "http_requests_total",
		Help:      "HTTP requests processed, partitioned by status code, method and route.",
	}, []string{"code", "method", "route"})

	m.reqDurMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pulse",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latencies in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"code", "method", "route"})

	m.syncTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "sync_total",
		Help:      "Connection syncs, partitioned by platform and outcome.",
	}, []string{"platform", "outcome"})

	m.registry.MustRegister(m.reqTotal, m.reqDurMs, m.syncTotal)
	return m
}

// Gatherer exposes the registry for scraping and assertions.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveSync records a completed sync attempt.
func (m *Metrics) ObserveSync(platform string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.syncTotal.WithLabelValues(platform, outcome).Inc()
}

// Middleware records request count and latency for every handled route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		code := strconv.Itoa(c.Writer.Status())
		m.reqTotal.WithLabelValues(code, c.Request.Method, route).Inc()
		m.reqDurMs.WithLabelValues(code, c.Request.Method, route).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
