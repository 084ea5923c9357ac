// Package metrics defines and registers all custom Prometheus metrics for the
// Loomra CRM API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init time;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loomra"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate_email", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ClientsCreatedTotal counts created client records.
// Label:
//   - source: "api" (single create) or "import" (CSV upload)
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created, by source.",
	},
	[]string{"source"},
)

// ImportRowsTotal counts CSV import row outcomes.
// Label:
//   - result: "imported" or "skipped" (duplicate email)
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of CSV import rows processed, by result.",
	},
	[]string{"result"},
)

// ExportsTotal counts completed CSV exports.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of completed client CSV exports.",
	},
)
