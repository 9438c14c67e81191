// Package metrics defines and registers all custom Prometheus metrics for the
// account service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// and exposed by the /metrics route.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRequestsTotal counts completed account operations.
// Labels:
//   - operation: "admin_register", "register", "login", "change_password",
//     "update_user", "delete_user", "get_user"
//   - status: the HTTP status code carried by the response envelope
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of account operations, by operation and resulting status code.",
	},
	[]string{"operation", "status"},
)

// GuardRejectionsTotal counts requests refused by the auth or role guards.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token", "revoked_token", "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization guards.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "stored", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, labelled by outcome.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long a single audit insert takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event insert.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ObserveOperation records the outcome of an account operation.
func ObserveOperation(operation string, status int) {
	AuthRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}
