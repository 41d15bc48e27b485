// Package metrics defines and registers all custom Prometheus metrics for the
// character lookup service. It is the single source of truth for metric
// names, labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on import
// (promauto), so the /metrics endpoint exposes them without further setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dnf"

// ── Client core metrics ──────────────────────────────────────────────────────

// DetailFetchTotal counts character detail fetches made against the backend.
// Label:
//   - result: "ok", "not_found", "invalid_input", "error"
var DetailFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "character_detail_fetch_total",
		Help:      "Total number of character detail fetches, by result.",
	},
	[]string{"result"},
)

// RosterRecordsTotal counts roster entries produced by the aggregator.
// Label:
//   - kind: "detail" (full record), "degraded" (built from the registration), "skipped" (missing ids)
var RosterRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_records_total",
		Help:      "Total number of roster records produced, by kind.",
	},
	[]string{"kind"},
)

// RosterAggregationDuration measures a full roster load, from the registration
// fetch until the slowest detail fetch settles.
var RosterAggregationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "roster_aggregation_duration_seconds",
		Help:      "Duration of a roster aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ImageResolveTotal counts item image lookups.
// Label:
//   - result: "resolved", "miss", "skipped"
var ImageResolveTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_resolve_total",
		Help:      "Total number of item image resolutions, by result.",
	},
	[]string{"result"},
)

// SessionOperationsTotal counts Token Store operations.
// Label:
//   - op: "set_tokens", "set_user", "initialize", "clear"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session store operations, by operation.",
	},
	[]string{"op"},
)

// ── Backend metrics ──────────────────────────────────────────────────────────

// NeopleRequestsTotal counts upstream game API calls.
// Labels:
//   - endpoint: "search", "character", "equipment", "item"
//   - status: HTTP status code as a string, or "error" for transport failures
var NeopleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "neople_requests_total",
		Help:      "Total number of Neople API requests, by endpoint and status.",
	},
	[]string{"endpoint", "status"},
)

// ItemImageCacheTotal counts item image cache lookups.
// Label:
//   - result: "hit" or "miss"
var ItemImageCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_image_cache_total",
		Help:      "Total number of item image cache lookups, by result.",
	},
	[]string{"result"},
)

// RegistrationsEnrichedTotal counts asynchronous registration enrichments.
// Label:
//   - result: "ok", "not_found", "error"
var RegistrationsEnrichedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_enriched_total",
		Help:      "Total number of registration enrichments, by result.",
	},
	[]string{"result"},
)

// EnrichQueueDepth tracks the number of enrichments waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EnrichQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "enrich_queue_depth",
		Help:      "Current number of enrichments pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
