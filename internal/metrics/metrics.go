// Package metrics defines Prometheus metrics for the deal analyzer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ebay_scraper"

// Fetch metrics.
var (
	PagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Total number of search and item pages fetched.",
	})

	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of page fetch failures.",
	})

	RequestBudgetHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_budget_hits_total",
		Help:      "Total number of times the per-run request budget was exhausted.",
	})
)

// Extraction metrics.
var (
	ListingsSeenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_seen_total",
		Help:      "Total number of raw listings pulled from search pages.",
	})

	ListingsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_dropped_total",
		Help:      "Total number of listings or variation options dropped, by reason.",
	}, []string{"reason"})

	DealsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_emitted_total",
		Help:      "Total number of normalized deals emitted.",
	})
)

// Run metrics.
var (
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Total number of analysis runs.",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of analysis runs in seconds.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)
