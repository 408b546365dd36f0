package handlers

import (
	"errors"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-builder/internal/matrix"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
)

type gameResponse struct {
	Game       games.Game              `json:"game"`
	Violations []constraints.Violation `json:"violations"`
}

// Matrix returns the week-by-team view of the current schedule.
func (h *Handler) Matrix(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.orch.Matrix(), h.logger)
}

// MatrixSummary returns per-team home/away/bye counts.
func (h *Handler) MatrixSummary(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"teams": matrix.Summarize(h.orch.Matrix()),
	}, h.logger)
}

// GameByID returns one game of the current schedule and its violations.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := requestutil.PathID(r, "id")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	g, vs, found := h.orch.Game(id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, gameResponse{Game: g, Violations: vs}, h.logger)
}

// LoadSchedule makes a stored schedule current.
func (h *Handler) LoadSchedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := requestutil.PathID(r, "id")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid schedule id", h.logger)
		return
	}
	s, err := h.orch.LoadSchedule(r.Context(), id)
	h.writeSchedule(w, r, s, err)
}

// CreateSchedule persists a new schedule for the current selection.
func (h *Handler) CreateSchedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	var draft schedules.Schedule
	if err := requestutil.DecodeJSON(w, r, &draft); err != nil && !errors.Is(err, requestutil.ErrEmptyBody) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	s, err := h.orch.CreateSchedule(r.Context(), draft)
	h.writeScheduleStatus(w, r, nethttp.StatusCreated, s, err)
}

// Generate asks the service for a new schedule from the current selection.
func (h *Handler) Generate(w nethttp.ResponseWriter, r *nethttp.Request) {
	var opts orchestrator.GenerateOptions
	if err := requestutil.DecodeJSON(w, r, &opts); err != nil && !errors.Is(err, requestutil.ErrEmptyBody) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	s, err := h.orch.Generate(r.Context(), opts)
	h.writeSchedule(w, r, s, err)
}

// Optimize re-optimizes the persisted current schedule.
func (h *Handler) Optimize(w nethttp.ResponseWriter, r *nethttp.Request) {
	s, err := h.orch.Optimize(r.Context())
	h.writeSchedule(w, r, s, err)
}

// Save persists the current schedule.
func (h *Handler) Save(w nethttp.ResponseWriter, r *nethttp.Request) {
	s, err := h.orch.Save(r.Context())
	h.writeSchedule(w, r, s, err)
}

// Export downloads the current schedule in ?format= and saves it locally.
func (h *Handler) Export(w nethttp.ResponseWriter, r *nethttp.Request) {
	format := schedules.ExportFormat(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		format = schedules.FormatCSV
	}
	logger := loggerFromContext(r, h.logger)
	res, err := h.orch.Export(r.Context(), format)
	if err != nil {
		writeOpError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, res, logger)
}

func (h *Handler) writeSchedule(w nethttp.ResponseWriter, r *nethttp.Request, s schedules.Schedule, err error) {
	h.writeScheduleStatus(w, r, nethttp.StatusOK, s, err)
}

func (h *Handler) writeScheduleStatus(w nethttp.ResponseWriter, r *nethttp.Request, status int, s schedules.Schedule, err error) {
	logger := loggerFromContext(r, h.logger)
	if err != nil {
		writeOpError(w, r, err, logger)
		return
	}
	writeJSON(w, status, s, logger)
}
