// Package metrics exposes Prometheus collectors for the resolver
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orgresolve"

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Matching
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "searches_total",
			Help:      "Searches by outcome (hit, empty, too_short)",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "search_duration_seconds",
			Help:      "Time spent ranking one query",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	ResultsByType = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "results_total",
			Help:      "Returned results by match type",
		},
		[]string{"match_type"},
	)

	GateSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "signals_total",
			Help:      "Specificity rules that fired",
		},
		[]string{"signal"},
	)

	// Catalog
	CatalogNames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "names",
			Help:      "Canonical names in the catalog",
		},
	)

	CatalogKeywords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "keywords",
			Help:      "Distinct keyword keys in the index",
		},
	)

	CatalogRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "rebuilds_total",
			Help:      "Keyword index rebuilds",
		},
	)

	// Supplementation
	SupplementTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supplement",
			Name:      "tasks_total",
			Help:      "Supplementation tasks by status (started, deduplicated, rejected, done, failed)",
		},
		[]string{"status"},
	)

	SupplementInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "supplement",
			Name:      "in_flight",
			Help:      "Supplementation tasks currently running",
		},
	)

	SupplementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "supplement",
			Name:      "duration_seconds",
			Help:      "Time from trigger to done",
			Buckets:   []float64{.1, .25, .5, 1, 2, 5, 10, 30},
		},
	)

	SupplementEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supplement",
			Name:      "entries_total",
			Help:      "Synthesized entries by generation path (curated, llm, generic)",
		},
		[]string{"path"},
	)

	// Registry
	RegistryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "lookups_total",
			Help:      "Registry lookups by source and outcome (found, not_found, unavailable, cached)",
		},
		[]string{"source", "outcome"},
	)

	RegistryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "lookup_duration_seconds",
			Help:      "Registry source latency",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)
)

// ObserveCatalog records the catalog size after a rebuild
func ObserveCatalog(names, keys int) {
	CatalogNames.Set(float64(names))
	CatalogKeywords.Set(float64(keys))
	CatalogRebuilds.Inc()
}
