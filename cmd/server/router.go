package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/studyforge/srs-api/internal/api"
	apiMiddleware "github.com/studyforge/srs-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Handlers over the application's services
	itemHandler := api.NewItemHandler(app.itemService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	sessionHandler := api.NewSessionHandler(
		app.studyService, app.config.Scheduler.MaxSessionCards, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Item content endpoints
		r.Post("/items", itemHandler.CreateItems)
		r.Get("/items/{id}", itemHandler.GetItem)
		r.Put("/items/{id}", itemHandler.UpdateItem)
		r.Delete("/items/{id}", itemHandler.DeleteItem)

		// Review endpoints
		r.Get("/items/next", reviewHandler.GetNextItem)
		r.Post("/items/{id}/review", reviewHandler.SubmitReview)
		r.Post("/items/{id}/postpone", reviewHandler.PostponeItem)

		// Study session endpoints
		r.Post("/sessions", sessionHandler.CreateSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
