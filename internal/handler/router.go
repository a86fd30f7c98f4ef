/*
Package handler provides the HTTP handlers and routing for the gateway.

This file defines the main Router, applying logging, permissive CORS, and
per-IP rate limiting on mutating routes before delegating to the handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"rdrive/internal/pkg/limiter"
	"rdrive/internal/pkg/logx"
	"rdrive/internal/pkg/resp"
)

// Rate limits for mutating routes (per client IP).
const (
	MutateRate  = 2
	MutateBurst = 10
)

// Router sets up the gateway routing table. Every response carries the
// permissive CORS headers (any origin, the full verb set, and the custom
// auth header), and OPTIONS preflights short-circuit with 204 before any
// business logic runs.
func Router(deps *AppDeps) http.Handler {
	mutateLimiter := limiter.NewIPRateLimiter(rate.Limit(MutateRate), MutateBurst)

	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Custom-Auth-Key"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	// Preflights are answered by the CORS middleware above; any other
	// OPTIONS request still gets an empty 204 before business logic runs.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondJSON(w, r, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "rdrive gateway",
		})
	})

	r.Route("/files", func(fr chi.Router) {
		fr.Get("/", HandleFiles(deps))
		fr.With(mutateLimiter.Middleware).Post("/", HandleUpload(deps))
		fr.With(mutateLimiter.Middleware).Delete("/", HandleDelete(deps))
	})

	r.With(mutateLimiter.Middleware).Post("/presigned-url", HandlePresignedURL(deps))
	r.With(mutateLimiter.Middleware).Post("/share", HandleShare(deps))

	return r
}
