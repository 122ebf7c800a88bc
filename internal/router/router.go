// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// report API. Routes that may spend provider quota sit behind the rate
// limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"weeklyreport/internal/handlers"
	"weeklyreport/internal/middleware"
)

// New creates and returns the configured Chi router. A nil limiter leaves
// every route unthrottled.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Quota-spending routes.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/reports", api.GenerateReport)
			r.Post("/providers/{id}/test", api.TestProvider)
		})

		r.Get("/providers", api.ListProviders)
		r.Get("/providers/{id}", api.GetProvider)
		r.Put("/providers/{id}/credential", api.SetCredential)
		r.Put("/provider", api.SelectProvider)

		r.Get("/mode", api.Mode)
		r.Get("/styles", api.ListStyles)

		r.Put("/cache", api.SetCache)
		r.Delete("/cache", api.ClearCache)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
