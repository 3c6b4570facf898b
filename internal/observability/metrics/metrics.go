package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the chatbot engine.
type ConversationMetrics struct {
	turnsTotal         *prometheus.CounterVec
	generationFailures prometheus.Counter
	schedulingIntents  prometheus.Counter
	turnLatency        prometheus.Histogram
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "chatbot",
			Name:      "turns_total",
			Help:      "Total processed conversation turns",
		}, []string{"intent"}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "chatbot",
			Name:      "generation_failures_total",
			Help:      "Total text-generation calls that failed and fell back",
		}),
		schedulingIntents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "chatbot",
			Name:      "scheduling_intents_total",
			Help:      "Total turns where the scheduling detector overrode the intent",
		}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agency",
			Subsystem: "chatbot",
			Name:      "turn_latency_seconds",
			Help:      "End-to-end latency of processing one visitor message",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.generationFailures, m.schedulingIntents, m.turnLatency)
	return m
}

func (m *ConversationMetrics) ObserveTurn(intent string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(intent).Inc()
	m.turnLatency.Observe(seconds)
}

func (m *ConversationMetrics) ObserveGenerationFailure() {
	if m == nil {
		return
	}
	m.generationFailures.Inc()
}

func (m *ConversationMetrics) ObserveSchedulingIntent() {
	if m == nil {
		return
	}
	m.schedulingIntents.Inc()
}
