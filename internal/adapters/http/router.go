// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkoskela/qualcore/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	codeHandler *handlers.CodeHandler,
	categoryHandler *handlers.CategoryHandler,
	codingHandler *handlers.CodingHandler,
	sourceHandler *handlers.SourceHandler,
	eventsHandler *handlers.EventsHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Code commands.
		r.Post("/codes", codeHandler.CreateCode)
		r.Post("/codes/{id}/rename", codeHandler.RenameCode)
		r.Post("/codes/{id}/recolor", codeHandler.RecolorCode)
		r.Post("/codes/{id}/assign", codeHandler.AssignCode)
		r.Delete("/codes/{id}", codeHandler.DeleteCode)

		// Category commands.
		r.Post("/categories", categoryHandler.CreateCategory)
		r.Post("/categories/{id}/rename", categoryHandler.RenameCategory)
		r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

		// Coding commands.
		r.Post("/codings", codingHandler.ApplyCode)
		r.Post("/codings/bulk", codingHandler.BulkApplyCodes)
		r.Delete("/codings/{id}", codingHandler.RemoveCoding)

		// Source document registration.
		r.Put("/sources/{id}", sourceHandler.AddSource)

		// Recent event history.
		r.Get("/events", eventsHandler.History)
	})

	return r
}
