package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shadyar-bakr/storefront/internal/data"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	// Order matters: the request id must exist before anything can fail.
	r.Use(middleware.RequestID)
	r.Use(app.correlate)
	r.Use(app.recoverPanic)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.CleanPath)
	r.Use(app.rateLimit)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.cors.trustedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(app.authenticate)

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.handle(app.healthcheckHandler))

		r.Get("/products", app.handle(app.listProductsHandler))
		r.Get("/products/{id}", app.handle(app.showProductHandler))

		r.Post("/tokens/authentication", app.handle(app.createAuthenticationTokenHandler))
		r.Post("/errors", app.handle(app.reportClientErrorHandler))

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Delete("/tokens/authentication", app.handle(app.deleteAuthenticationTokenHandler))
			r.Get("/dashboard", app.handle(app.showDashboardHandler))
		})

		r.Group(func(r chi.Router) {
			r.Use(app.requirePermission(data.PermissionProductsWrite))
			r.Post("/products", app.handle(app.createProductHandler))
			r.Put("/products", app.handle(app.bulkUpdateProductsHandler))
		})
	})

	return r
}
