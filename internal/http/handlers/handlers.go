package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/schedule-builder/internal/exports"
	"github.com/preston-bernstein/schedule-builder/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
)

// Handler wires HTTP routes to the orchestrator.
type Handler struct {
	orch       *orchestrator.Orchestrator
	exportsDir string
	logger     *slog.Logger
}

// NewHandler constructs a Handler. exportsDir may be empty when exports are not saved locally.
func NewHandler(orch *orchestrator.Orchestrator, exportsDir string, logger *slog.Logger) *Handler {
	return &Handler{
		orch:       orch,
		exportsDir: exportsDir,
		logger:     logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports ready once a sport's teams and constraints have loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.orch.Ready() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.orch.Phase().Error()
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// State returns the orchestrator read model.
func (h *Handler) State(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.orch.Snapshot(), h.logger)
}

// DismissError clears a failed phase.
func (h *Handler) DismissError(w nethttp.ResponseWriter, r *nethttp.Request) {
	cleared := h.orch.DismissError()
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"cleared": cleared,
		"phase":   h.orch.Phase(),
	}, h.logger)
}

type sportRequest struct {
	Sport      string `json:"sport"`
	Conference string `json:"conference"`
}

// SelectSport switches the selection and loads its teams and constraints.
func (h *Handler) SelectSport(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req sportRequest
	if err := requestutil.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if err := h.orch.SelectSport(r.Context(), req.Sport, req.Conference); err != nil {
		if errors.Is(err, orchestrator.ErrNoSport) {
			writeError(w, r, nethttp.StatusBadRequest, "sport is required", logger)
			return
		}
		writeOpError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.orch.Snapshot(), logger)
}

// Teams lists the loaded teams.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	ts := h.orch.Teams()
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": ts, "count": len(ts)}, h.logger)
}

// Exports lists locally saved exports from the manifest.
func (h *Handler) Exports(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.exportsDir == "" {
		writeError(w, r, nethttp.StatusNotFound, "exports not configured", h.logger)
		return
	}
	m, err := exports.ReadManifest(h.exportsDir)
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "read export manifest failed", "error", err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to read exports", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, m, h.logger)
}
