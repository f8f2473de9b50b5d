// Package metrics defines all custom Prometheus metrics for the cuna API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cuna"

// SessionResolutionsTotal counts principal resolutions per request.
// Label:
//   - principal: "guest" or "user"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of principal resolutions, by principal kind.",
	},
	[]string{"principal"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "ok", "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ActivityWritesTotal counts stored activity records.
// Label:
//   - kind: "meal", "dream", "weight"
var ActivityWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_writes_total",
		Help:      "Total number of activity records written, by kind.",
	},
	[]string{"kind"},
)

// SummariesComputedTotal counts summary pages served.
// Label:
//   - kind: "meal" or "dream"
var SummariesComputedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_computed_total",
		Help:      "Total number of summary pages computed, by record kind.",
	},
	[]string{"kind"},
)

// SummaryWindowDays observes the span of requested summary windows.
var SummaryWindowDays = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_window_days",
		Help:      "Distribution of summary window lengths in days.",
		Buckets:   []float64{1, 7, 14, 30, 90, 180, 365},
	},
)
