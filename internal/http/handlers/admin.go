package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-builder/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	orch   *orchestrator.Orchestrator
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(orch *orchestrator.Orchestrator, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		orch:   orch,
		token:  token,
		logger: logger,
	}
}

// Reload refetches teams and constraints for the current selection and, when a stored
// schedule is current, reloads it and its violations.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	view := h.orch.Snapshot()
	if view.Sport == "" {
		writeError(w, r, http.StatusConflict, "no sport selected", logger)
		return
	}
	var scheduleID string
	if view.Schedule != nil {
		scheduleID = view.Schedule.ID
	}

	if err := h.orch.SelectSport(r.Context(), view.Sport, view.Conference); err != nil {
		logging.Warn(logger, "admin reload failed", slog.String(logging.FieldSport, view.Sport), "error", err)
		writeOpError(w, r, err, logger)
		return
	}
	if scheduleID != "" {
		if _, err := h.orch.LoadSchedule(r.Context(), scheduleID); err != nil {
			logging.Warn(logger, "admin schedule reload failed", slog.String(logging.FieldScheduleID, scheduleID), "error", err)
			writeOpError(w, r, err, logger)
			return
		}
	}

	logging.Info(logger, "admin reload complete",
		slog.String(logging.FieldSport, view.Sport),
		slog.String(logging.FieldScheduleID, scheduleID),
	)
	writeJSON(w, http.StatusOK, h.orch.Snapshot(), logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
