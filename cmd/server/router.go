package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/jobs-api/internal/api"
	"github.com/phrazzld/jobs-api/internal/api/docs"
	apiMiddleware "github.com/phrazzld/jobs-api/internal/api/middleware"
	"github.com/phrazzld/jobs-api/internal/api/shared"
)

const (
	apiBasePath  = "/api/v1"
	docsBasePath = "/api-docs"
	corsMaxAge   = 300
)

// setupRouter builds the HTTP handler from the application's services.
func (app *application) setupRouter() (http.Handler, error) {
	docsHandler, err := docs.NewHandler(docsBasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs handler: %w", err)
	}

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	jobHandler := api.NewJobHandler(app.jobService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	rateLimiter := apiMiddleware.NewRateLimiter(
		app.config.RateLimit.Requests,
		time.Duration(app.config.RateLimit.WindowMinutes)*time.Minute,
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders(app.config.Server.IsDevelopment()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{
			api.HeaderTotalCount, api.HeaderTotalPages, "RateLimit", "RateLimit-Policy", "Retry-After",
		},
		MaxAge: corsMaxAge,
	}))
	r.Use(rateLimiter.Handler)
	r.Use(apiMiddleware.NewXSSSanitizer().Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route does not exist")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route(apiBasePath, func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/jobs", jobHandler.ListJobs)
			r.Post("/jobs", jobHandler.CreateJob)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Patch("/jobs/{id}", jobHandler.UpdateJob)
			r.Delete("/jobs/{id}", jobHandler.DeleteJob)
		})
	})

	r.Get("/", docsHandler.Landing)
	r.Get(docsBasePath, docsHandler.SwaggerUI)
	r.Get(docsBasePath+"/openapi.yaml", docsHandler.SpecYAML)
	r.Get(docsBasePath+"/openapi.json", docsHandler.SpecJSON)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r, nil
}
