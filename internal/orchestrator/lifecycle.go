package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
	"github.com/preston-bernstein/schedule-builder/internal/store"
)

func requireSport(st store.State) error {
	if st.Sport == "" {
		return ErrNoSport
	}
	return nil
}

func requireSchedule(st store.State) error {
	if !st.HasSchedule {
		return ErrNoSchedule
	}
	return nil
}

func requirePersisted(st store.State) error {
	if st.ScheduleID() == "" {
		return ErrNoSchedule
	}
	return nil
}

// LoadSchedule makes the stored schedule id current.
func (o *Orchestrator) LoadSchedule(ctx context.Context, id string) (schedules.Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedules.Schedule{}, ErrNoSchedule
	}
	t, st, err := o.startSchedule(opLoadSchedule, PhaseLoading, nil)
	if err != nil {
		return schedules.Schedule{}, err
	}
	loaded, err := o.remote.GetSchedule(ctx, id)
	if err != nil {
		return schedules.Schedule{}, o.fail(ctx, t, MsgLoadSchedule, err)
	}
	if loaded.ID == "" {
		loaded.ID = id
	}
	return o.adopt(ctx, t, withSelection(loaded, st), false)
}

// CreateSchedule persists a new schedule for the current selection and makes it current.
func (o *Orchestrator) CreateSchedule(ctx context.Context, draft schedules.Schedule) (schedules.Schedule, error) {
	t, st, err := o.startSchedule(opCreateSchedule, PhaseSaving, func(st store.State) error {
		if draft.Sport == "" {
			return requireSport(st)
		}
		return nil
	})
	if err != nil {
		return schedules.Schedule{}, err
	}
	draft = withSelection(draft, st)
	draft.ID = ""
	if draft.Status == "" {
		draft.Status = schedules.StatusDraft
	}
	created, err := o.remote.CreateSchedule(ctx, draft)
	if err != nil {
		return schedules.Schedule{}, o.fail(ctx, t, MsgCreateSchedule, err)
	}
	return o.adopt(ctx, t, withSelection(created, st), false)
}

// Generate asks the service for a fresh schedule built from the loaded teams, the active
// constraints and the sport defaults, and makes it current.
func (o *Orchestrator) Generate(ctx context.Context, opts GenerateOptions) (schedules.Schedule, error) {
	var req schedules.GenerateRequest
	t, st, err := o.startSchedule(opGenerate, PhaseOptimizing, func(st store.State) error {
		var err error
		req, err = buildGenerateRequest(st, opts)
		return err
	})
	if err != nil {
		return schedules.Schedule{}, err
	}
	generated, err := o.remote.GenerateSchedule(ctx, req)
	if err != nil {
		return schedules.Schedule{}, o.fail(ctx, t, MsgGenerateSchedule, err)
	}
	if generated.Name == "" {
		generated.Name = opts.Name
	}
	if generated.Season == "" {
		generated.Season = req.Season
	}
	if generated.StartDate.IsZero() {
		generated.StartDate = req.StartDate
	}
	if generated.EndDate.IsZero() {
		generated.EndDate = req.EndDate
	}
	return o.adopt(ctx, t, withSelection(generated, st), false)
}

// Optimize re-optimizes the persisted current schedule against the active constraints and
// refetches its violations.
func (o *Orchestrator) Optimize(ctx context.Context) (schedules.Schedule, error) {
	t, st, err := o.startSchedule(opOptimize, PhaseOptimizing, requirePersisted)
	if err != nil {
		return schedules.Schedule{}, err
	}
	id := st.Schedule.ID
	optimized, err := o.remote.OptimizeSchedule(ctx, id, reconcile.ActiveIDs(st.Catalog.Constraints))
	if err != nil {
		return schedules.Schedule{}, o.fail(ctx, t, MsgOptimizeSchedule, err)
	}
	if optimized.ID == "" {
		optimized.ID = id
	}
	return o.adopt(ctx, t, withSelection(optimized, st), true)
}

// Save updates the current schedule when it has an id and creates it otherwise.
func (o *Orchestrator) Save(ctx context.Context) (schedules.Schedule, error) {
	t, st, err := o.startSchedule(opSave, PhaseSaving, requireSchedule)
	if err != nil {
		return schedules.Schedule{}, err
	}
	var saved schedules.Schedule
	if st.Schedule.Persisted() {
		saved, err = o.remote.UpdateSchedule(ctx, st.Schedule)
	} else {
		saved, err = o.remote.CreateSchedule(ctx, st.Schedule)
	}
	if err != nil {
		return schedules.Schedule{}, o.fail(ctx, t, MsgSaveSchedule, err)
	}
	if saved.ID == "" {
		saved.ID = st.Schedule.ID
	}
	return o.adopt(ctx, t, withSelection(saved, st), false)
}

// adopt commits s as the current schedule, runs the violation effect, and releases the phase.
// Violations of a different schedule are cleared in the same commit so they are never shown
// against s.
func (o *Orchestrator) adopt(ctx context.Context, t ticket, s schedules.Schedule, refresh bool) (schedules.Schedule, error) {
	var prevID string
	next, ok := o.commit(t, func(st *store.State) {
		prevID = st.ScheduleID()
		st.Schedule = s.Clone()
		st.HasSchedule = true
		if s.Season != "" {
			st.Season = s.Season
		}
		if st.ScheduleID() != prevID || st.ScheduleID() == "" {
			st.Catalog.ScheduleID = ""
			st.Catalog.Violations = []constraints.Violation{}
		}
	})
	if !ok {
		return schedules.Schedule{}, ErrSuperseded
	}

	if refresh || next.ScheduleID() != prevID {
		if err := o.refreshViolations(ctx, t.token); err != nil && !errors.Is(err, ErrSuperseded) {
			return s, err
		}
	}
	o.finish(t)

	logging.Info(logging.FromContext(ctx, o.logger), "schedule updated",
		slog.String(logging.FieldOperation, t.op),
		slog.String(logging.FieldScheduleID, s.ID),
		slog.Int(logging.FieldCount, len(s.Games)),
	)
	return s, nil
}

// ExportResult describes a saved export.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Size        int    `json:"size"`
	Path        string `json:"path,omitempty"`
}

// Export downloads the current schedule and hands it to the Saver. It never changes the
// phase unless it fails.
func (o *Orchestrator) Export(ctx context.Context, format schedules.ExportFormat) (ExportResult, error) {
	if !format.Valid() {
		return ExportResult{}, fmt.Errorf("%w: %q", remote.ErrUnsupportedFormat, format)
	}
	t, st := o.start(opExport, "")
	if err := requirePersisted(st); err != nil {
		return ExportResult{}, err
	}

	exp, err := o.remote.ExportSchedule(ctx, st.Schedule.ID, format)
	if err != nil {
		return ExportResult{}, o.fail(ctx, t, MsgExportSchedule, err)
	}
	result := ExportResult{
		Filename:    exp.Filename,
		ContentType: exp.ContentType,
		Size:        len(exp.Data),
	}
	if o.saver != nil {
		path, err := o.saver.Save(ctx, exp)
		if err != nil {
			return ExportResult{}, o.fail(ctx, t, MsgExportSchedule, err)
		}
		result.Path = path
	}
	logging.Info(logging.FromContext(ctx, o.logger), "schedule exported",
		slog.String(logging.FieldScheduleID, st.Schedule.ID),
		slog.String("format", string(format)),
		slog.Int(logging.FieldCount, result.Size),
	)
	return result, nil
}
