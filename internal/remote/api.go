package remote

import (
	"context"
	"encoding/json"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
)

// TeamSource fetches the team and venue catalog.
type TeamSource interface {
	ListTeams(ctx context.Context, sport, conference string) ([]teams.Team, error)
	ListVenues(ctx context.Context, sport string, schoolID int) ([]teams.Venue, error)
}

// ScheduleStore covers schedule CRUD plus generation, optimization, and export.
type ScheduleStore interface {
	ListSchedules(ctx context.Context, filter schedules.Filter) ([]schedules.Schedule, error)
	GetSchedule(ctx context.Context, id string) (schedules.Schedule, error)
	CreateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error)
	UpdateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	GenerateSchedule(ctx context.Context, req schedules.GenerateRequest) (schedules.Schedule, error)
	OptimizeSchedule(ctx context.Context, id string, constraintIDs []string) (schedules.Schedule, error)
	ExportSchedule(ctx context.Context, id string, format schedules.ExportFormat) (Export, error)
}

// GameStore covers per-game CRUD and validation.
type GameStore interface {
	ListGames(ctx context.Context, scheduleID string) ([]games.Game, error)
	CreateGame(ctx context.Context, scheduleID string, g games.Game) (games.Game, error)
	UpdateGame(ctx context.Context, g games.Game) (games.Game, error)
	DeleteGame(ctx context.Context, id string) error
	ValidateGame(ctx context.Context, g games.Game) (games.Validation, error)
}

// ConstraintSource fetches the constraint catalog and schedule violations.
type ConstraintSource interface {
	ListConstraints(ctx context.Context, sport string) ([]constraints.Constraint, error)
	ListViolations(ctx context.Context, scheduleID string) ([]constraints.Violation, error)
	FixViolation(ctx context.Context, id string) (json.RawMessage, error)
}

// API combines every remote capability.
type API interface {
	TeamSource
	ScheduleStore
	GameStore
	ConstraintSource
}

var _ API = (*Client)(nil)
