package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-builder/internal/http/middleware"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.RequestIDHeader)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeOpError maps an orchestrator result to a status and the stable user-facing message.
func writeOpError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := statusFor(err)
	writeError(w, r, status, message, logger)
}

func statusFor(err error) (int, string) {
	if opErr, ok := orchestrator.AsOperationError(err); ok {
		return http.StatusBadGateway, opErr.Message
	}
	switch {
	case errors.Is(err, orchestrator.ErrSuperseded):
		return http.StatusConflict, err.Error()
	case errors.Is(err, orchestrator.ErrNoSport),
		errors.Is(err, orchestrator.ErrNoSchedule),
		errors.Is(err, orchestrator.ErrNoTeams):
		return http.StatusConflict, err.Error()
	case errors.Is(err, reconcile.ErrUnknownConstraint),
		errors.Is(err, reconcile.ErrUnknownViolation):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, reconcile.ErrNotAutoFixable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, remote.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
