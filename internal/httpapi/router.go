// Package httpapi wires the HTTP surface of the ledger service.
// It keeps handlers thin, delegating the ledger rules to the store and the
// report service.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bricknote/ledger/internal/service/report"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	store Store
	svc   report.Service
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(store Store, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		store: store,
		svc:   report.New(store),
		rt:    r,
		log:   logger,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Customers (v1)
	s.rt.With(s.validateUpsertCustomer()).Post("/v1/customers", s.upsertCustomer)
	s.rt.Get("/v1/customers", s.listCustomers)
	s.rt.Get("/v1/customers/{id}", s.getCustomer)
	s.rt.Delete("/v1/customers/{id}", s.deleteCustomer)
	// Transactions (v1)
	s.rt.With(s.validateUpsertTransaction()).Post("/v1/transactions", s.upsertTransaction)
	s.rt.Delete("/v1/transactions/{id}", s.deleteTransaction)
	// Reports (v1)
	s.rt.With(s.validatePeriod()).Get("/v1/customers/{id}/statement", s.getStatement)
	s.rt.With(s.validatePeriod()).Get("/v1/customers/{id}/statement/export", s.exportStatement)
	s.rt.With(s.validatePeriod()).Get("/v1/summary", s.getSummary)
	s.rt.With(s.validatePeriod()).Get("/v1/summary/export", s.exportSummary)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
