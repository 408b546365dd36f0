package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/metrics"
)

// Instrumented wraps an API and records latency, call, and error metrics per operation.
// It never retries: a failure is recorded once and returned to the caller.
type Instrumented struct {
	next    API
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewInstrumented decorates next with metrics and structured logs.
func NewInstrumented(next API, recorder *metrics.Recorder, logger *slog.Logger) *Instrumented {
	return &Instrumented{next: next, metrics: recorder, logger: logger, now: time.Now}
}

func observe[T any](ctx context.Context, i *Instrumented, op string, call func() (T, error)) (T, error) {
	start := i.now()
	out, err := call()
	elapsed := i.now().Sub(start)

	i.metrics.RecordRemoteCall(op, elapsed, err)
	if err != nil {
		logWithOperation(ctx, i.logger, slog.LevelWarn, op, "remote call failed",
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			"error", err,
		)
		return out, err
	}
	logWithOperation(ctx, i.logger, slog.LevelDebug, op, "remote call complete",
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return out, nil
}

func observeErr(ctx context.Context, i *Instrumented, op string, call func() error) error {
	_, err := observe(ctx, i, op, func() (struct{}, error) {
		return struct{}{}, call()
	})
	return err
}

func (i *Instrumented) ListTeams(ctx context.Context, sport, conference string) ([]teams.Team, error) {
	return observe(ctx, i, OpListTeams, func() ([]teams.Team, error) {
		return i.next.ListTeams(ctx, sport, conference)
	})
}

func (i *Instrumented) ListVenues(ctx context.Context, sport string, schoolID int) ([]teams.Venue, error) {
	return observe(ctx, i, OpListVenues, func() ([]teams.Venue, error) {
		return i.next.ListVenues(ctx, sport, schoolID)
	})
}

func (i *Instrumented) ListSchedules(ctx context.Context, filter schedules.Filter) ([]schedules.Schedule, error) {
	return observe(ctx, i, OpListSchedules, func() ([]schedules.Schedule, error) {
		return i.next.ListSchedules(ctx, filter)
	})
}

func (i *Instrumented) GetSchedule(ctx context.Context, id string) (schedules.Schedule, error) {
	return observe(ctx, i, OpGetSchedule, func() (schedules.Schedule, error) {
		return i.next.GetSchedule(ctx, id)
	})
}

func (i *Instrumented) CreateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error) {
	return observe(ctx, i, OpCreateSchedule, func() (schedules.Schedule, error) {
		return i.next.CreateSchedule(ctx, s)
	})
}

func (i *Instrumented) UpdateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error) {
	return observe(ctx, i, OpUpdateSchedule, func() (schedules.Schedule, error) {
		return i.next.UpdateSchedule(ctx, s)
	})
}

func (i *Instrumented) DeleteSchedule(ctx context.Context, id string) error {
	return observeErr(ctx, i, OpDeleteSchedule, func() error {
		return i.next.DeleteSchedule(ctx, id)
	})
}

func (i *Instrumented) GenerateSchedule(ctx context.Context, req schedules.GenerateRequest) (schedules.Schedule, error) {
	return observe(ctx, i, OpGenerateSchedule, func() (schedules.Schedule, error) {
		return i.next.GenerateSchedule(ctx, req)
	})
}

func (i *Instrumented) OptimizeSchedule(ctx context.Context, id string, constraintIDs []string) (schedules.Schedule, error) {
	return observe(ctx, i, OpOptimizeSchedule, func() (schedules.Schedule, error) {
		return i.next.OptimizeSchedule(ctx, id, constraintIDs)
	})
}

func (i *Instrumented) ExportSchedule(ctx context.Context, id string, format schedules.ExportFormat) (Export, error) {
	return observe(ctx, i, OpExportSchedule, func() (Export, error) {
		return i.next.ExportSchedule(ctx, id, format)
	})
}

func (i *Instrumented) ListGames(ctx context.Context, scheduleID string) ([]games.Game, error) {
	return observe(ctx, i, OpListGames, func() ([]games.Game, error) {
		return i.next.ListGames(ctx, scheduleID)
	})
}

func (i *Instrumented) CreateGame(ctx context.Context, scheduleID string, g games.Game) (games.Game, error) {
	return observe(ctx, i, OpCreateGame, func() (games.Game, error) {
		return i.next.CreateGame(ctx, scheduleID, g)
	})
}

func (i *Instrumented) UpdateGame(ctx context.Context, g games.Game) (games.Game, error) {
	return observe(ctx, i, OpUpdateGame, func() (games.Game, error) {
		return i.next.UpdateGame(ctx, g)
	})
}

func (i *Instrumented) DeleteGame(ctx context.Context, id string) error {
	return observeErr(ctx, i, OpDeleteGame, func() error {
		return i.next.DeleteGame(ctx, id)
	})
}

func (i *Instrumented) ValidateGame(ctx context.Context, g games.Game) (games.Validation, error) {
	return observe(ctx, i, OpValidateGame, func() (games.Validation, error) {
		return i.next.ValidateGame(ctx, g)
	})
}

func (i *Instrumented) ListConstraints(ctx context.Context, sport string) ([]constraints.Constraint, error) {
	return observe(ctx, i, OpListConstraints, func() ([]constraints.Constraint, error) {
		return i.next.ListConstraints(ctx, sport)
	})
}

func (i *Instrumented) ListViolations(ctx context.Context, scheduleID string) ([]constraints.Violation, error) {
	return observe(ctx, i, OpListViolations, func() ([]constraints.Violation, error) {
		return i.next.ListViolations(ctx, scheduleID)
	})
}

func (i *Instrumented) FixViolation(ctx context.Context, id string) (json.RawMessage, error) {
	return observe(ctx, i, OpFixViolation, func() (json.RawMessage, error) {
		return i.next.FixViolation(ctx, id)
	})
}

var _ API = (*Instrumented)(nil)
