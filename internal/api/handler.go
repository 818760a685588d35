// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shreedharkb/Speechify/internal/service"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "sbert-grading"

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	grading      *service.GradingService
	model        string
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewHandler creates a Handler with the given dependencies. model is the
// embedding model identifier reported by /health.
func NewHandler(grading *service.GradingService, model string, maxBodyBytes int64, logger *slog.Logger) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		grading:      grading,
		model:        model,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps a service error to its HTTP status. Input errors carry
// their own message; anything else is reported as an internal error.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Kind == service.KindInput {
		resp := ErrorResponse{Error: svcErr.Message}
		if svcErr.Err != nil {
			resp.Message = svcErr.Err.Error()
		}
		respondJSON(w, http.StatusBadRequest, resp)
		return
	}

	message := err.Error()
	if svcErr != nil {
		message = svcErr.Message
	}
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: message,
	})
}
