package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes registers the page routes, the action API and the metrics
// endpoint. The route guard wraps the page group only; the action API does
// its own status-code based auth handling.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	// Server-rendered pages
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(routeGuard)

		r.Get("/", handlers.pageHandler.home())
		r.Get("/about", handlers.pageHandler.about())
		r.Get("/contact", handlers.pageHandler.contact())

		r.Get("/login", handlers.authHandler.loginForm())
		r.Post("/login", handlers.authHandler.login())
		r.Get("/signup", handlers.authHandler.signupForm())
		r.Post("/signup", handlers.authHandler.signup())
		r.Post("/logout", handlers.authHandler.logout())

		r.Get("/dashboard", handlers.dashboardHandler.show())
		r.Get("/profile", handlers.profileHandler.show())
		r.Post("/profile", handlers.profileHandler.update())

		r.Route("/surveys", func(r chi.Router) {
			r.Get("/", handlers.surveyHandler.list())
			r.Get("/create", handlers.surveyHandler.createForm())
			r.Post("/create", handlers.surveyHandler.create())
			r.Get("/edit/{surveyID}", handlers.surveyHandler.editForm())
			r.Post("/edit/{surveyID}", handlers.surveyHandler.update())
			r.Get("/{surveyID}", handlers.surveyHandler.detail())
			r.Post("/{surveyID}/participate", handlers.surveyHandler.participate())
		})
	})

	// Action-style API endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: false,
		}))

		r.Post("/api/surveys/{surveyID}/delete", handlers.surveyHandler.deleteSurvey())
	})

	r.Handle("/metrics", promhttp.Handler())
}
