// Package router assembles the complete HTTP handler: every record kind's
// routes, the system endpoints, /metrics and the middleware around them.
package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/catalog"
	"github.com/ucsb-cs156/campus-api/internal/http/handlers/system"
	"github.com/ucsb-cs156/campus-api/internal/http/middleware"
)

// Deps is everything the handler tree needs.
type Deps struct {
	Stores   catalog.Stores
	Verifier *auth.Verifier
	Info     system.Info

	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
}

// New returns the root handler.
//
// Route table, per record kind (see crud.Register):
//
//	GET    {prefix}/all     ROLE_USER
//	GET    {prefix}?key     ROLE_USER
//	POST   {prefix}/post    ROLE_ADMIN
//	PUT    {prefix}?key     ROLE_ADMIN
//	DELETE {prefix}?key     ROLE_ADMIN
//
// plus GET /api/currentUser (ROLE_USER), GET /api/systemInfo and
// GET /metrics.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	catalog.Register(mux, d.Stores)
	mux.Handle("GET /api/currentUser", auth.Require(auth.RoleUser, system.CurrentUser()))
	mux.Handle("GET /api/systemInfo", system.SystemInfo(d.Info))
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	metrics := middleware.NewMetrics(d.Registry)

	// Metrics stays innermost: it reads the pattern the mux records on
	// the request it receives.
	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery,
		middleware.Logging,
		auth.Authenticate(d.Verifier),
		metrics.Middleware,
	)(mux)
}
