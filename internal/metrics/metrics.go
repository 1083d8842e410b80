package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeAppError    = "app_error"
	OutcomeFetchFailed = "fetch_failed"
	OutcomePending     = "pending"
)

// Classification kinds
const (
	KindClassified = "classified"
	KindFallback   = "fallback"
	KindError      = "error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_submissions_total",
			Help: "Profile submissions by outcome",
		},
		[]string{"outcome"},
	)

	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_classifications_total",
			Help: "Rendered results by classification kind",
		},
		[]string{"kind"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheme_upstream_request_duration_seconds",
			Help:    "Duration of /get_schemes calls made by the form",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
	)

	RecommenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheme_recommender_duration_seconds",
			Help:    "Duration of LLM generation for /get_schemes",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"status"},
	)

	RetrievalDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheme_retrieval_duration_seconds",
			Help:    "Duration of scheme corpus lookups, query embedding included",
			Buckets: prometheus.DefBuckets,
		},
	)
)
