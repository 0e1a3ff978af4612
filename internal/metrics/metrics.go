package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventbot"

// Fallback kinds
const (
	FallbackEmergencyEstimate = "emergency_estimate"
	FallbackCatalog           = "fallback_catalog"
	FallbackLLM               = "llm"
	FallbackRenderer          = "renderer"
	FallbackRecordStore       = "record_store"
)

type Metrics struct {
	registry *prometheus.Registry

	Turns          *prometheus.CounterVec
	Estimates      *prometheus.CounterVec
	Fallbacks      *prometheus.CounterVec
	TurnDuration   prometheus.Histogram
	LLMDuration    prometheus.Histogram
	CatalogItems   prometheus.Gauge
	EstimateTotals prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns processed, by resolved intent.",
		}, []string{"intent"}),
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Estimates produced, by event type and emergency flag.",
		}, []string{"event_type", "emergency"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Recovered failures, by fallback kind.",
		}, []string{"kind"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time to process one conversation turn.",
			Buckets:   prometheus.DefBuckets,
		}),
		LLMDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of language model calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}),
		CatalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Entries in the published catalog snapshot.",
		}),
		EstimateTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_total_cost",
			Help:      "Total cost of produced estimates.",
			Buckets:   prometheus.ExponentialBuckets(10000, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.Turns,
		m.Estimates,
		m.Fallbacks,
		m.TurnDuration,
		m.LLMDuration,
		m.CatalogItems,
		m.EstimateTotals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Fallback(kind string) {
	m.Fallbacks.WithLabelValues(kind).Inc()
}
