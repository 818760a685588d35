// internal/api/routes.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /grade", h.grade)
	mux.HandleFunc("POST /batch-grade", h.batchGrade)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// Middleware chain: Logging → Recover → CORS → next.
func Wrap(next http.Handler, logger *slog.Logger) http.Handler {
	return Logging(logger)(Recover(logger)(CORS(next)))
}
