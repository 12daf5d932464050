// Package metrics defines the custom Prometheus metrics for the user
// directory API. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (bad credentials and issuance errors alike)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts successfully created accounts.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// UsersDeletedTotal counts successfully deleted accounts.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ReportsRenderedTotal counts CSV export attempts.
// Label:
//   - result: "success" or "error"
var ReportsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_rendered_total",
		Help:      "Total number of user report exports, by result.",
	},
	[]string{"result"},
)

// UserCacheTotal counts lookaside cache decisions on single-user reads.
// Label:
//   - result: "hit" or "miss"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
