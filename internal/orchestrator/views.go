package orchestrator

import (
	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/matrix"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/store"
)

// View is the read model served to clients.
type View struct {
	Phase           Phase                    `json:"phase"`
	Error           string                   `json:"error,omitempty"`
	Sport           string                   `json:"sport,omitempty"`
	Conference      string                   `json:"conference,omitempty"`
	Season          string                   `json:"season,omitempty"`
	Loaded          bool                     `json:"loaded"`
	Schedule        *schedules.Summary       `json:"schedule,omitempty"`
	TeamCount       int                      `json:"teamCount"`
	ConstraintCount int                      `json:"constraintCount"`
	ActiveCount     int                      `json:"activeConstraintCount"`
	ViolationStats  reconcile.ViolationStats `json:"violationStats"`
}

// Snapshot returns the current read model.
func (o *Orchestrator) Snapshot() View {
	o.mu.Lock()
	phase := o.phase
	st := o.store.Get()
	o.mu.Unlock()

	v := View{
		Phase:           phase,
		Error:           phase.Error(),
		Sport:           st.Sport,
		Conference:      st.Conference,
		Season:          st.Season,
		Loaded:          st.Loaded,
		TeamCount:       len(st.Teams),
		ConstraintCount: len(st.Catalog.Constraints),
		ActiveCount:     len(reconcile.ActiveIDs(st.Catalog.Constraints)),
		ViolationStats:  reconcile.Stats(currentViolations(st)),
	}
	if st.HasSchedule {
		summary := st.Schedule.Summarize()
		v.Schedule = &summary
	}
	return v
}

// Ready reports whether a sport has finished loading.
func (o *Orchestrator) Ready() bool {
	return o.store.Get().Loaded
}

// CurrentSchedule returns the current schedule, if any.
func (o *Orchestrator) CurrentSchedule() (schedules.Schedule, bool) {
	st := o.store.Get()
	return st.Schedule, st.HasSchedule
}

// Teams returns the loaded team set.
func (o *Orchestrator) Teams() []teams.Team {
	return o.store.Teams()
}

// Constraints returns the sport-scoped constraint catalog.
func (o *Orchestrator) Constraints() []constraints.Constraint {
	return o.store.Get().Catalog.Constraints
}

// ConstraintGroups returns the catalog grouped by category.
func (o *Orchestrator) ConstraintGroups() []reconcile.Group {
	return reconcile.GroupByCategory(o.Constraints())
}

// Matrix builds the week-by-team view of the current schedule.
func (o *Orchestrator) Matrix() matrix.Matrix {
	return matrix.Build(o.store.ListGames(), o.store.Teams())
}

// Violations returns the current schedule's violations filtered by type ("all" for every type).
func (o *Orchestrator) Violations(filter string) []constraints.Violation {
	return reconcile.FilterViolations(currentViolations(o.store.Get()), filter)
}

// ViolationStats counts the current schedule's violations by type.
func (o *Orchestrator) ViolationStats() reconcile.ViolationStats {
	return reconcile.Stats(currentViolations(o.store.Get()))
}

// Game returns one game of the current schedule with the violations attached to it.
func (o *Orchestrator) Game(id string) (games.Game, []constraints.Violation, bool) {
	st := o.store.Get()
	g, ok := o.store.GetGame(id)
	if !ok {
		return games.Game{}, nil, false
	}
	return g, reconcile.ViolationsForGame(currentViolations(st), id), true
}

// currentViolations only returns violations fetched for the schedule that is current now.
func currentViolations(st store.State) []constraints.Violation {
	id := st.ScheduleID()
	if id == "" || st.Catalog.ScheduleID != id {
		return []constraints.Violation{}
	}
	return st.Catalog.Violations
}
