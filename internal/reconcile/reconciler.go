package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
)

var (
	// ErrNotAutoFixable is returned when asked to fix a violation the service cannot repair.
	ErrNotAutoFixable = errors.New("violation is not auto-fixable")
	// ErrUnknownConstraint is returned when toggling an id missing from the catalog.
	ErrUnknownConstraint = errors.New("unknown constraint")
	// ErrUnknownViolation is returned when fixing an id missing from the current violations.
	ErrUnknownViolation = errors.New("unknown violation")
)

// Source is the remote side of reconciliation.
type Source interface {
	ListConstraints(ctx context.Context, sport string) ([]constraints.Constraint, error)
	ListViolations(ctx context.Context, scheduleID string) ([]constraints.Violation, error)
	FixViolation(ctx context.Context, id string) (json.RawMessage, error)
}

// Snapshot is an immutable view of the constraint catalog and the violations of one schedule.
// Violations always belong to ScheduleID.
type Snapshot struct {
	ScheduleID  string                   `json:"scheduleId,omitempty"`
	Constraints []constraints.Constraint `json:"constraints"`
	Violations  []constraints.Violation  `json:"violations"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{ScheduleID: s.ScheduleID}
	out.Constraints = append([]constraints.Constraint{}, s.Constraints...)
	out.Violations = append([]constraints.Violation{}, s.Violations...)
	return out
}

// Reconciler derives new snapshots from remote calls. On failure it returns the
// snapshot it was given, unchanged, so callers never lose state.
type Reconciler struct {
	source Source
}

// New builds a Reconciler over source.
func New(source Source) *Reconciler {
	return &Reconciler{source: source}
}

// Catalog fetches the constraints visible for sport.
func (r *Reconciler) Catalog(ctx context.Context, sport string) ([]constraints.Constraint, error) {
	cs, err := r.source.ListConstraints(ctx, sport)
	if err != nil {
		return nil, err
	}
	return VisibleConstraints(cs, sport), nil
}

// Refresh replaces the violations with the server's view for scheduleID.
// An empty scheduleID clears violations without a remote call.
func (r *Reconciler) Refresh(ctx context.Context, scheduleID string, prev Snapshot) (Snapshot, error) {
	if scheduleID == "" {
		next := prev.Clone()
		next.ScheduleID = ""
		next.Violations = []constraints.Violation{}
		return next, nil
	}
	vs, err := r.source.ListViolations(ctx, scheduleID)
	if err != nil {
		return prev, err
	}
	next := prev.Clone()
	next.ScheduleID = scheduleID
	next.Violations = append([]constraints.Violation{}, vs...)
	return next, nil
}

// ToggleConstraint flips one constraint's active flag and refetches violations for scheduleID.
// The flag itself is never sent to the service; the updated constraint is returned so the
// caller can keep it in its own state.
func (r *Reconciler) ToggleConstraint(ctx context.Context, scheduleID string, prev Snapshot, constraintID string) (Snapshot, constraints.Constraint, error) {
	current, ok := findConstraint(prev.Constraints, constraintID)
	if !ok {
		return prev, constraints.Constraint{}, fmt.Errorf("%w: %s", ErrUnknownConstraint, constraintID)
	}
	updated := Toggled(current)

	staged := prev.Clone()
	staged.Constraints = replaceConstraint(prev.Constraints, updated)

	next, err := r.Refresh(ctx, scheduleID, staged)
	if err != nil {
		return prev, updated, err
	}
	return next, updated, nil
}

// AutoFix asks the service to repair a violation, then refetches violations.
// The fixed violation is never removed locally; the refetch is authoritative.
func (r *Reconciler) AutoFix(ctx context.Context, scheduleID string, prev Snapshot, violationID string) (Snapshot, error) {
	v, ok := findViolation(prev.Violations, violationID)
	if !ok {
		return prev, fmt.Errorf("%w: %s", ErrUnknownViolation, violationID)
	}
	if !v.AutoFixable {
		return prev, fmt.Errorf("%w: %s", ErrNotAutoFixable, violationID)
	}
	if _, err := r.source.FixViolation(ctx, violationID); err != nil {
		return prev, err
	}
	return r.Refresh(ctx, scheduleID, prev)
}
