// Package metrics exposes Prometheus collectors for the service. All
// collectors are registered on the default registry at init time.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcome label values.
const (
	ResultSuccess            = "success"
	ResultInvalidInput       = "invalid_input"
	ResultInvalidCredentials = "invalid_credentials"
	ResultLocked             = "locked"
	ResultError              = "error"
)

var (
	// LoginAttempts counts login attempts by outcome.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todopanel_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"result"})

	// Lockouts counts lockout windows engaged by the tracker.
	Lockouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todopanel_lockouts_total",
		Help: "Lockout windows engaged after repeated login failures.",
	})

	// HTTPRequests counts handled HTTP requests.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todopanel_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
