package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/schedule-builder/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /state", h.State)
	mux.HandleFunc("DELETE /error", h.DismissError)

	mux.HandleFunc("PUT /sport", h.SelectSport)
	mux.HandleFunc("GET /teams", h.Teams)

	mux.HandleFunc("GET /constraints", h.Constraints)
	mux.HandleFunc("GET /constraints/groups", h.ConstraintGroups)
	mux.HandleFunc("POST /constraints/{id}/toggle", h.ToggleConstraint)

	mux.HandleFunc("GET /violations", h.Violations)
	mux.HandleFunc("GET /violations/stats", h.ViolationStats)
	mux.HandleFunc("POST /violations/{id}/fix", h.FixViolation)

	mux.HandleFunc("GET /matrix", h.Matrix)
	mux.HandleFunc("GET /matrix/summary", h.MatrixSummary)
	mux.HandleFunc("GET /games/{id}", h.GameByID)

	mux.HandleFunc("POST /schedules", h.CreateSchedule)
	mux.HandleFunc("GET /schedules/{id}", h.LoadSchedule)
	mux.HandleFunc("POST /schedules/generate", h.Generate)
	mux.HandleFunc("POST /schedules/optimize", h.Optimize)
	mux.HandleFunc("POST /schedules/save", h.Save)
	mux.HandleFunc("POST /schedules/export", h.Export)
	mux.HandleFunc("GET /exports", h.Exports)

	if admin != nil {
		mux.HandleFunc("POST /admin/reload", admin.Reload)
	}
	return mux
}
