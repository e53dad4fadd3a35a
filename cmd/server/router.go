package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/genops-api/internal/api"
	"github.com/phrazzld/genops-api/internal/api/middleware"
	"github.com/phrazzld/genops-api/internal/api/shared"
)

const serviceName = "generator-ops-backend"

// routes builds the HTTP handler for the whole API.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{middleware.TraceIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", app.health)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	authHandler := api.NewAuthHandler(app.accounts)
	taskHandler := api.NewTaskHandler(app.tasks)
	authMiddleware := middleware.NewAuthMiddleware(app.accounts, app.metrics)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}
