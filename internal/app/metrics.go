package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the allocation counters exported on /metrics.
type Metrics struct {
	AllocationsCreated  *prometheus.CounterVec
	AllocationsReleased prometheus.Counter
	Conflicts           *prometheus.CounterVec
	SuggestionWarnings  prometheus.Counter
	AutoAssignDuration  prometheus.Histogram
}

// NewMetrics registers the allocation metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AllocationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "searchops",
			Name:      "allocations_created_total",
			Help:      "Allocations committed, by path (auto, sync, manual).",
		}, []string{"source"}),
		AllocationsReleased: f.NewCounter(prometheus.CounterOpts{
			Namespace: "searchops",
			Name:      "allocations_released_total",
			Help:      "Allocations removed and returned to the pool.",
		}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "searchops",
			Name:      "allocation_conflicts_total",
			Help:      "Commits rejected because a resource was no longer AVAILABLE.",
		}, []string{"operation"}),
		SuggestionWarnings: f.NewCounter(prometheus.CounterOpts{
			Namespace: "searchops",
			Name:      "suggestion_warnings_total",
			Help:      "Shortfall warnings returned by suggestions.",
		}),
		AutoAssignDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "searchops",
			Name:      "auto_assign_duration_seconds",
			Help:      "Wall time of auto-assign runs, retries included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
