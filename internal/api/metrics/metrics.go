// Package metrics defines and registers all custom Prometheus metrics for
// the medical records API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medrecords"

// LoginsTotal counts login attempts that reached credential verification.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginsThrottledTotal counts logins rejected by the failed-attempt limiter
// before credentials were even checked.
var LoginsThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_throttled_total",
		Help:      "Total number of login attempts rejected by the throttle.",
	},
)

// RegistrationsTotal counts successfully created accounts.
// Label:
//   - role: "doctor" or "patient"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// RecordsCreatedTotal counts medical records written by doctors.
var RecordsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of medical records created.",
	},
)

var sessionsGaugeOnce sync.Once

// RegisterSessionsActive exposes the session registry's live entry count as
// a gauge. Call once at startup with the registry's Len method.
func RegisterSessionsActive(count func() int) {
	sessionsGaugeOnce.Do(func() {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Current number of sessions held by the in-memory registry.",
			},
			func() float64 { return float64(count()) },
		))
	})
}
