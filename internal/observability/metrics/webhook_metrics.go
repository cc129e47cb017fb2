package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WebhookMetrics tracks notification verification outcomes.
type WebhookMetrics struct {
	deliveries           *prometheus.CounterVec
	verificationDuration prometheus.Histogram
}

var (
	webhookMetricsOnce sync.Once
	webhookMetrics     *WebhookMetrics
)

// Webhook returns the process-wide webhook metrics, registering them on
// first use.
func Webhook(cfg Config) *WebhookMetrics {
	webhookMetricsOnce.Do(func() {
		webhookMetrics = newWebhookMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return webhookMetrics
}

func ResetWebhookMetricsForTest() {
	webhookMetricsOnce = sync.Once{}
	webhookMetrics = nil
}

func newWebhookMetrics(registerer prometheus.Registerer, cfg Config) *WebhookMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	deliveries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "yookassad_webhook_deliveries_total",
			Help:        "Webhook deliveries by outcome and reject reason.",
			ConstLabels: cfg.constLabels(),
		},
		[]string{"outcome", "reason"}, // outcome: verified | rejected | duplicate
	)
	verificationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "yookassad_webhook_verification_duration_seconds",
			Help: "Time spent re-verifying a notification against the payment API, including the outbound round trip.",
			Buckets: []float64{
				0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
			},
			ConstLabels: cfg.constLabels(),
		},
	)

	registerer.MustRegister(deliveries, verificationDuration)
	return &WebhookMetrics{
		deliveries:           deliveries,
		verificationDuration: verificationDuration,
	}
}

// RecordDelivery counts one delivery outcome.
func (m *WebhookMetrics) RecordDelivery(outcome, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.deliveries.WithLabelValues(outcome, reason).Inc()
}

// RecordVerification records the authoritative-fetch round trip time.
func (m *WebhookMetrics) RecordVerification(duration time.Duration) {
	if m == nil {
		return
	}
	m.verificationDuration.Observe(duration.Seconds())
}
