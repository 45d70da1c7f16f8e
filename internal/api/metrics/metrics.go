// Package metrics defines and registers all custom Prometheus metrics for the
// orgboard auth core. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orgboard"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure" (failures carry no cause label so the
//     metric leaks no more about account existence than the API does)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the role assigned to the new identity
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the auth middleware.
// Label:
//   - reason: "missing", "malformed", or "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"reason"},
)

// SessionRehydrationsTotal counts startup session rehydrations.
// Label:
//   - outcome: "authenticated", "unauthenticated", or "error"
var SessionRehydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rehydrations_total",
		Help:      "Total number of persisted-session rehydrations, by outcome.",
	},
	[]string{"outcome"},
)
