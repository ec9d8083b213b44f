package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moneymornings/intake/internal/auth"
	"github.com/moneymornings/intake/internal/middleware"
	"github.com/moneymornings/intake/internal/service"
)

// NewRouter wires the intake endpoints behind the logging, CORS and metrics
// middleware. The admin dashboard additionally sits behind basic auth.
func NewRouter(svc *service.ApplicationService, authenticator auth.Authenticator) http.Handler {
	mux := http.NewServeMux()
	h := NewApplicationHandler(svc)

	mux.HandleFunc("GET /api/{$}", h.Root)
	mux.HandleFunc("POST /api/applications", h.Submit)
	mux.HandleFunc("GET /api/applications", h.List)
	mux.HandleFunc("GET /api/applications/stats", h.Stats)
	mux.HandleFunc("GET /api/applications/{id}", h.Get)
	mux.HandleFunc("PATCH /api/applications/{id}", h.Update)

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /admin", middleware.RequireBasicAuth(authenticator, http.HandlerFunc(h.Dashboard)))

	return middleware.Logging(middleware.CORS(middleware.Metrics(mux)))
}
