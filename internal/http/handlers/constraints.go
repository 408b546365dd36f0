package handlers

import (
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
)

type violationsResponse struct {
	Filter     string                   `json:"filter"`
	Violations []constraints.Violation  `json:"violations"`
	Stats      reconcile.ViolationStats `json:"stats"`
}

// Constraints lists the sport-scoped constraint catalog.
func (h *Handler) Constraints(w nethttp.ResponseWriter, r *nethttp.Request) {
	cs := h.orch.Constraints()
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"constraints": cs,
		"active":      reconcile.ActiveIDs(cs),
	}, h.logger)
}

// ConstraintGroups lists the catalog grouped by category.
func (h *Handler) ConstraintGroups(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{"groups": h.orch.ConstraintGroups()}, h.logger)
}

// ToggleConstraint flips one constraint's active flag.
func (h *Handler) ToggleConstraint(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := requestutil.PathID(r, "id")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid constraint id", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	updated, err := h.orch.ToggleConstraint(r.Context(), id)
	if err != nil {
		writeOpError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, updated, logger)
}

// Violations lists the current schedule's violations, optionally filtered by ?type=.
func (h *Handler) Violations(w nethttp.ResponseWriter, r *nethttp.Request) {
	filter := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if filter == "" {
		filter = reconcile.FilterAll
	}
	switch constraints.ViolationType(filter) {
	case constraints.ViolationError, constraints.ViolationWarning, constraints.ViolationInfo:
	default:
		if filter != reconcile.FilterAll {
			writeError(w, r, nethttp.StatusBadRequest, "invalid violation type", h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, violationsResponse{
		Filter:     filter,
		Violations: h.orch.Violations(filter),
		Stats:      h.orch.ViolationStats(),
	}, h.logger)
}

// ViolationStats returns violation counts by type.
func (h *Handler) ViolationStats(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.orch.ViolationStats(), h.logger)
}

// FixViolation asks the service to auto-fix one violation.
func (h *Handler) FixViolation(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := requestutil.PathID(r, "id")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid violation id", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if err := h.orch.AutoFix(r.Context(), id); err != nil {
		writeOpError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, violationsResponse{
		Filter:     reconcile.FilterAll,
		Violations: h.orch.Violations(reconcile.FilterAll),
		Stats:      h.orch.ViolationStats(),
	}, logger)
}
