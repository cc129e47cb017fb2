// Package metrics exposes low-cardinality Prometheus metrics for the
// webhook receiver.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures HTTP server metrics.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewHTTPMetrics creates and registers HTTP server instruments.
func NewHTTPMetrics(cfg Config) *HTTPMetrics {
	return newHTTPMetrics(prometheus.DefaultRegisterer, cfg)
}

func newHTTPMetrics(registerer prometheus.Registerer, cfg Config) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "yookassad_http_request_duration_seconds",
			Help:        "HTTP server request duration.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: cfg.constLabels(),
		},
		[]string{"endpoint", "status_code"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "yookassad_http_in_flight_requests",
			Help:        "Number of HTTP requests currently being served.",
			ConstLabels: cfg.constLabels(),
		},
	)

	registerer.MustRegister(requestDuration, inFlight)
	return &HTTPMetrics{requestDuration: requestDuration, inFlight: inFlight}
}

// GinMiddleware records request duration and in-flight metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		endpoint := normalizeEndpoint(c.FullPath())
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		m.requestDuration.
			WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Config labels every metric with service identity.
type Config struct {
	Environment string
}

func (c Config) constLabels() prometheus.Labels {
	environment := strings.TrimSpace(c.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return prometheus.Labels{
		"service": "yookassad",
		"env":     environment,
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
