// Package metrics defines all custom Prometheus metrics for the heat-wave
// alerting API. It is the single source of truth for metric names, labels,
// and help strings; registration happens implicitly via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "heatwave"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts completed user registrations, by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome ("success" / "failure").
// Failure sub-causes are deliberately not labelled; the HTTP surface hides
// them from callers and the label set must not leak them either.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the auth middleware.
// Label:
//   - reason: "missing", "invalid", "expired", "unknown_subject"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by internal reason.",
	},
	[]string{"reason"},
)

// ── Alert pipeline metrics ────────────────────────────────────────────────────

// AlertsDispatchedTotal counts alert notifications persisted by the fan-out
// workers.
var AlertsDispatchedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_dispatched_total",
		Help:      "Total number of heat-wave alert notifications delivered.",
	},
)

// AlertsDedupTotal counts deduplication decisions ("hit" / "miss").
var AlertsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_dedup_total",
		Help:      "Total number of alert deduplication checks, labelled by result.",
	},
	[]string{"result"},
)

// AlertsErrorsTotal counts alert jobs that failed processing.
var AlertsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_errors_total",
		Help:      "Total number of alert jobs that failed processing.",
	},
	[]string{"reason"},
)

// AlertsQueueDepth tracks the number of jobs waiting in each worker channel.
var AlertsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alerts_queue_depth",
		Help:      "Current number of alert jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
