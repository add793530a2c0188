package biz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TriageTotal counts triage calls by classified intent and response type.
	TriageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_requests_total",
			Help: "Total number of triage calls",
		},
		[]string{"intent", "response_type"},
	)

	// TriageDuration tracks end-to-end pipeline latency.
	TriageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_duration_seconds",
			Help:    "Triage pipeline duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"response_type"},
	)

	// TriageConfidence observes classifier confidence scores.
	TriageConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_intent_confidence",
			Help:    "Intent classification confidence score",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
		},
	)

	// EscalationsTotal counts escalation verdicts by reason and tier.
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_escalations_total",
			Help: "Total number of escalation verdicts",
		},
		[]string{"reason", "level"},
	)

	// FallbacksTotal counts pipeline faults converted to fallback responses.
	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_fallbacks_total",
			Help: "Total number of fallback responses returned",
		},
	)

	// IntentCacheHits counts intent cache hits.
	IntentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_intent_cache_hits_total",
			Help: "Total number of intent cache hits",
		},
	)

	// IntentCacheMisses counts intent cache misses.
	IntentCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_intent_cache_misses_total",
			Help: "Total number of intent cache misses",
		},
	)
)
