// Package httpapi exposes the dev-stack status over HTTP for `stackctl
// serve`: component state as JSON, a health probe, and Prometheus metrics.
// The surface is read-only; shutdown stays a CLI action.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"stackctl/internal/proctable"
	"stackctl/internal/stack"
	"stackctl/pkg/types"
)

// zlog is an optional structured logger. If unset, requests are not logged.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zlog == nil {
			next.ServeHTTP(w, r)
			return
		}
		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		zlog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Dur("dur", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMux builds the serve-mode router. Component state is probed fresh on
// every request; nothing is cached.
func NewMux(table proctable.Table) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// Local dev dashboards run in the browser on another port.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Use(accessLog)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/stack", func(w http.ResponseWriter, req *http.Request) {
		sts := stack.Probe(req.Context(), table)
		recordComponentUp(sts)
		writeJSON(w, http.StatusOK, types.StackStatusResponse{Components: sts})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, types.ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
	return r
}
