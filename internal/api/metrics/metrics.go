// Package metrics defines and registers all custom Prometheus metrics of the
// portal session agent. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init (promauto);
// the bridge exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts applied session events.
// Labels:
//   - from, to: session status before and after (e.g. "authenticating", "authenticated")
//   - event: the event name (e.g. "auth_succeeded", "logged_out")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session events applied, by status change and event.",
	},
	[]string{"from", "to", "event"},
)

// SessionEventsDiscardedTotal counts events dropped because they no longer
// applied to the session (stale results).
// Label:
//   - event: the event name
var SessionEventsDiscardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_discarded_total",
		Help:      "Total number of session events discarded as stale or invalid.",
	},
	[]string{"event"},
)

// CommandsTotal counts session commands by outcome.
// Labels:
//   - command: "login", "register", "forgot_password", ...
//   - result: "success" or "failure"
var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total number of session commands, by command and result.",
	},
	[]string{"command", "result"},
)

// TokenRefreshTotal counts transparent refresh attempts triggered by a 401.
// Label:
//   - result: "success", "failure", "no_refresh_token", or "stale"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access token refreshes, by result.",
	},
	[]string{"result"},
)

// SessionExpiriesTotal counts silent expiries due to inactivity.
// Label:
//   - phase: "restore" (found expired at startup) or "watchdog"
var SessionExpiriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expiries_total",
		Help:      "Total number of sessions expired by the inactivity policy.",
	},
	[]string{"phase"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivitySignalsTotal counts interaction signals received from the UI shell.
// Labels:
//   - signal: "click", "keypress", ...
//   - result: "written", "throttled", "ignored" (not authenticated), or "dropped" (queue full)
var ActivitySignalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_signals_total",
		Help:      "Total number of activity signals, by signal and result.",
	},
	[]string{"signal", "result"},
)

// ActivityQueueDepth tracks signals waiting in the activity pump.
var ActivityQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity signals pending in the pump.",
	},
)

// ── Dependency metrics ────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the clinic backend.
// Labels:
//   - endpoint: the route template (e.g. "/auth/login")
//   - status: HTTP status code, or "no_response"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the clinic backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// StoreErrorsTotal counts failed writes or reads of the durable session store.
// Label:
//   - op: "load", "save", "save_activity", or "clear"
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of durable session store failures, by operation.",
	},
	[]string{"op"},
)

// Outcome maps a success flag to the "result" label value.
func Outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
