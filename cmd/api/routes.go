package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// Analysis Endpoints
	router.Get("/v1/analysis", app.GetAnalysis)
	router.Get("/v1/analysis/watch", app.WatchAnalysis)
	router.Get("/v1/analysis/presets", app.GetPresets)
	router.Get("/v1/teams", app.GetTeams)

	// Cache Endpoints
	router.Delete("/v1/cache/{season}", app.InvalidateSeasonCache)

	return router
}
