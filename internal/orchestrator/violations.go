package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/store"
)

// RefreshViolations refetches violations for the current schedule, or clears them when
// there is no persisted schedule.
func (o *Orchestrator) RefreshViolations(ctx context.Context) error {
	return o.refreshViolations(ctx, 0)
}

// refreshViolations is the effect run whenever the current schedule id changes.
// token is the phase owner to fail on error, 0 for none.
func (o *Orchestrator) refreshViolations(ctx context.Context, token uint64) error {
	t, st := o.startViolations(opRefreshViolations, token)
	next, err := o.reconciler.Refresh(ctx, t.scheduleID, st.Catalog)
	if err != nil {
		return o.fail(ctx, t, MsgLoadViolations, err)
	}
	if _, ok := o.commit(t, func(st *store.State) {
		st.Catalog.ScheduleID = next.ScheduleID
		st.Catalog.Violations = next.Violations
	}); !ok {
		return ErrSuperseded
	}
	logging.Debug(logging.FromContext(ctx, o.logger), "violations refreshed",
		slog.String(logging.FieldScheduleID, t.scheduleID),
		slog.Int(logging.FieldCount, len(next.Violations)),
	)
	return nil
}

// ToggleConstraint flips a constraint's active flag and refetches violations for the current
// schedule. The flag is committed only if the refetch succeeds.
func (o *Orchestrator) ToggleConstraint(ctx context.Context, id string) (constraints.Constraint, error) {
	t, st := o.startViolations(opToggleConstraint, 0)
	next, updated, err := o.reconciler.ToggleConstraint(ctx, t.scheduleID, st.Catalog, id)
	if err != nil {
		if errors.Is(err, reconcile.ErrUnknownConstraint) {
			return constraints.Constraint{}, err
		}
		return constraints.Constraint{}, o.fail(ctx, t, MsgUpdateConstraint, err)
	}

	o.mu.Lock()
	_, ok := o.store.Update(func(st *store.State) bool {
		if st.Epoch != t.epoch {
			return false
		}
		for i := range st.Catalog.Constraints {
			if st.Catalog.Constraints[i].ID == updated.ID {
				st.Catalog.Constraints[i] = updated
			}
		}
		if o.currentLocked(t, st) {
			st.Catalog.ScheduleID = next.ScheduleID
			st.Catalog.Violations = next.Violations
		}
		return true
	})
	if !ok {
		o.discardLocked(t)
	}
	o.mu.Unlock()
	if !ok {
		return constraints.Constraint{}, ErrSuperseded
	}

	logging.Info(logging.FromContext(ctx, o.logger), "constraint toggled",
		slog.String("constraint_id", updated.ID),
		slog.Bool("active", updated.Active),
	)
	return updated, nil
}

// AutoFix asks the service to repair a violation and then refetches violations.
// The violation stays visible until the refetch says otherwise.
func (o *Orchestrator) AutoFix(ctx context.Context, violationID string) error {
	t, st := o.startViolations(opAutoFix, 0)
	if t.scheduleID == "" {
		return ErrNoSchedule
	}
	next, err := o.reconciler.AutoFix(ctx, t.scheduleID, st.Catalog, violationID)
	if err != nil {
		if errors.Is(err, reconcile.ErrUnknownViolation) || errors.Is(err, reconcile.ErrNotAutoFixable) {
			return err
		}
		return o.fail(ctx, t, MsgAutoFix, err)
	}
	if _, ok := o.commit(t, func(st *store.State) {
		st.Catalog.ScheduleID = next.ScheduleID
		st.Catalog.Violations = next.Violations
	}); !ok {
		return ErrSuperseded
	}
	logging.Info(logging.FromContext(ctx, o.logger), "violation fixed",
		slog.String("violation_id", violationID),
		slog.String(logging.FieldScheduleID, t.scheduleID),
	)
	return nil
}
