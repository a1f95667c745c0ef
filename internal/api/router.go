// Package api serves the conversion and tax service over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"

	"github.com/govalues/moneytax/internal/service"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(svc service.Service, logger log.Logger) http.Handler {
	h := &Handlers{
		svc:    svc,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Exchange.
		r.Get("/convert", h.Convert)
		r.Get("/compare", h.Compare)
		r.Get("/rates", h.ListRates)
		r.Put("/rates/{from}/{to}", h.SetRate)

		// Tax.
		r.Get("/schedules", h.ListSchedules)
		r.Post("/schedules/{name}/assess", h.Assess)
	})

	return r
}

func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func(begin time.Time) {
				logger.Log(
					"http_method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"took", time.Since(begin),
				)
			}(time.Now())
			next.ServeHTTP(ww, r)
		})
	}
}
