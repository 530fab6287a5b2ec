// Package observability provides Prometheus metrics for the gatehouse
// authentication pipeline.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Logins counts login attempts by outcome ("ok", "rejected").
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Registrations counts successful account registrations.
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gatehouse_registrations_total",
			Help: "Successful registrations",
		},
	)

	// ActiveSessions is set from the session store's live count after every
	// login and logout, so it never drifts from the store.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatehouse_sessions_active",
			Help: "Live sessions as reported by the session store",
		},
	)

	// ResetTokensIssued counts password-reset tokens handed out.
	ResetTokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gatehouse_reset_tokens_issued_total",
			Help: "Password-reset tokens issued",
		},
	)

	// AuthDecisions counts middleware outcomes by decision
	// ("exempt", "allowed", "unauthorized", "forbidden").
	AuthDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_auth_decisions_total",
			Help: "Authentication middleware decisions",
		},
		[]string{"decision"},
	)
)

func init() {
	prometheus.MustRegister(
		Logins,
		Registrations,
		ActiveSessions,
		ResetTokensIssued,
		AuthDecisions,
	)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
