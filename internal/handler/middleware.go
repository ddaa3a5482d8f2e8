package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dinhln03/fsds-bwai-recs/internal/metrics"
)

// Metrics registra conteo y latencia por ruta. Usa el patrón de chi y no la
// URL cruda para no explotar la cardinalidad de las métricas.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}
		status := ww.Status()
		if status == 0 {
			// conexiones hijacked (WS) no pasan por WriteHeader
			status = http.StatusOK
		}
		metrics.ObserveRequest(path, r.Method, status, time.Since(start))
	})
}
