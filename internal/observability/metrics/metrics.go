package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics exposes counters/histograms for the voice webhook.
type WebhookMetrics struct {
	callsTotal  *prometheus.CounterVec
	callLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "voice",
			Name:      "function_call_total",
			Help:      "Total Vapi function calls by function and outcome",
		}, []string{"function", "outcome"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "voice",
			Name:      "function_call_latency_seconds",
			Help:      "Latency of function-call processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.callsTotal, m.callLatency)
	return m
}

func (m *WebhookMetrics) ObserveCall(function, outcome string) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(function, outcome).Inc()
}

func (m *WebhookMetrics) ObserveLatency(function string, seconds float64) {
	if m == nil {
		return
	}
	m.callLatency.WithLabelValues(function).Observe(seconds)
}
