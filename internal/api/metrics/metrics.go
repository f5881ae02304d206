// Package metrics defines and registers all custom Prometheus metrics for the
// college roster API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roster"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications performed by the
// auth middleware. The reason label stays internal; the HTTP response never
// distinguishes failure causes.
// Label:
//   - result: "success", "invalid", "expired", "unknown_principal"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// RoleDenialsTotal counts authorization gate denials.
// Label:
//   - policy: "forbidden" (explicit 403) or "empty" (masked empty list)
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of role gate denials, by denial policy.",
	},
	[]string{"policy"},
)

// UsersCreatedTotal counts roster records created through the API.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user records created.",
	},
)

// UsersDeletedTotal counts roster records deleted through the API.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user records deleted.",
	},
)

// ExportCacheTotal counts CSV export cache lookups.
// Label:
//   - result: "hit" or "miss"
var ExportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_cache_total",
		Help:      "Total number of CSV export cache lookups, by result.",
	},
	[]string{"result"},
)
