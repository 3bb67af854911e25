// Package metrics exposes Prometheus counters for authentication outcomes.
// Failure reasons that are collapsed in responses (unknown user vs bad
// password, malformed vs tampered token) stay distinguishable here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations counts registration attempts by result:
	// ok, validation_error, conflict, storage_error, internal_error.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credgate_registrations_total",
		Help: "Registration attempts by result.",
	}, []string{"result"})

	// Logins counts login attempts by result:
	// ok, validation_error, unknown_user, bad_password, storage_error, internal_error.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credgate_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// TokenValidations counts token checks by result:
	// ok, missing, malformed, bad_signature, expired.
	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credgate_token_validations_total",
		Help: "Token validations by result.",
	}, []string{"result"})
)
