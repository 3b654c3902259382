// Package httpserver wires the optional diagnostics listener: Prometheus
// scraping and a liveness probe, served next to the interactive session.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shahiilr/roadmap/internal/metrics"
	"github.com/shahiilr/roadmap/internal/middleware"
)

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger) {
	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer()) // panic recovery

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
