package teststubs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
)

// StubRemote is an in-memory test double for remote.API.
// Errs forces a failure per operation name (remote.Op* constants). Hook, when set, runs
// at the start of every call outside the lock so tests can block or reorder responses.
type StubRemote struct {
	mu sync.Mutex

	Teams       map[string][]teams.Team
	Venues      []teams.Venue
	Constraints map[string][]constraints.Constraint
	Schedules   map[string]schedules.Schedule
	Violations  map[string][]constraints.Violation
	Generated   schedules.Schedule
	ExportData  remote.Export
	Errs        map[string]error
	Hook        func(ctx context.Context, op, arg string)

	calls        map[string]int
	nextID       int
	LastGenerate schedules.GenerateRequest
	LastOptimize []string
	Fixed        []string
}

// NewStubRemote returns a stub with empty collections.
func NewStubRemote() *StubRemote {
	return &StubRemote{
		Teams:       map[string][]teams.Team{},
		Constraints: map[string][]constraints.Constraint{},
		Schedules:   map[string]schedules.Schedule{},
		Violations:  map[string][]constraints.Violation{},
		Errs:        map[string]error{},
		calls:       map[string]int{},
	}
}

// Calls returns how many times op was invoked.
func (s *StubRemote) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// SetErr forces op to fail with err; nil clears it.
func (s *StubRemote) SetErr(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Errs == nil {
		s.Errs = map[string]error{}
	}
	s.Errs[op] = err
}

// SetViolations replaces the violations returned for scheduleID.
func (s *StubRemote) SetViolations(scheduleID string, vs []constraints.Violation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Violations[scheduleID] = vs
}

func (s *StubRemote) enter(ctx context.Context, op, arg string) error {
	if s.Hook != nil {
		s.Hook(ctx, op, arg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[op]++
	if err := s.Errs[op]; err != nil {
		return err
	}
	return ctx.Err()
}

func (s *StubRemote) newID() string {
	s.nextID++
	return fmt.Sprintf("s%d", s.nextID)
}

func (s *StubRemote) ListTeams(ctx context.Context, sport, conference string) ([]teams.Team, error) {
	if err := s.enter(ctx, remote.OpListTeams, sport); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]teams.Team{}, s.Teams[sport]...), nil
}

func (s *StubRemote) ListVenues(ctx context.Context, sport string, schoolID int) ([]teams.Venue, error) {
	if err := s.enter(ctx, remote.OpListVenues, sport); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]teams.Venue{}, s.Venues...), nil
}

func (s *StubRemote) ListSchedules(ctx context.Context, filter schedules.Filter) ([]schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpListSchedules, filter.Sport); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []schedules.Schedule{}
	for _, sc := range s.Schedules {
		if filter.Sport == "" || sc.Sport == filter.Sport {
			out = append(out, sc.Clone())
		}
	}
	return out, nil
}

func (s *StubRemote) GetSchedule(ctx context.Context, id string) (schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpGetSchedule, id); err != nil {
		return schedules.Schedule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.Schedules[id]
	if !ok {
		return schedules.Schedule{}, fmt.Errorf("schedule %s not found", id)
	}
	return sc.Clone(), nil
}

func (s *StubRemote) CreateSchedule(ctx context.Context, sc schedules.Schedule) (schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpCreateSchedule, sc.Name); err != nil {
		return schedules.Schedule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc = sc.Clone()
	sc.ID = s.newID()
	s.Schedules[sc.ID] = sc
	return sc.Clone(), nil
}

func (s *StubRemote) UpdateSchedule(ctx context.Context, sc schedules.Schedule) (schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpUpdateSchedule, sc.ID); err != nil {
		return schedules.Schedule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Schedules[sc.ID] = sc.Clone()
	return sc.Clone(), nil
}

func (s *StubRemote) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.enter(ctx, remote.OpDeleteSchedule, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Schedules, id)
	return nil
}

func (s *StubRemote) GenerateSchedule(ctx context.Context, req schedules.GenerateRequest) (schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpGenerateSchedule, req.Sport); err != nil {
		return schedules.Schedule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastGenerate = req
	out := s.Generated.Clone()
	if out.Sport == "" {
		out.Sport = req.Sport
	}
	if out.ID != "" {
		s.Schedules[out.ID] = out.Clone()
	}
	return out, nil
}

func (s *StubRemote) OptimizeSchedule(ctx context.Context, id string, constraintIDs []string) (schedules.Schedule, error) {
	if err := s.enter(ctx, remote.OpOptimizeSchedule, id); err != nil {
		return schedules.Schedule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastOptimize = append([]string{}, constraintIDs...)
	sc, ok := s.Schedules[id]
	if !ok {
		return schedules.Schedule{}, fmt.Errorf("schedule %s not found", id)
	}
	sc.Status = schedules.StatusOptimized
	s.Schedules[id] = sc
	return sc.Clone(), nil
}

func (s *StubRemote) ExportSchedule(ctx context.Context, id string, format schedules.ExportFormat) (remote.Export, error) {
	if err := s.enter(ctx, remote.OpExportSchedule, id); err != nil {
		return remote.Export{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := s.ExportData
	if exp.Filename == "" {
		exp.Filename = fmt.Sprintf("schedule-%s.%s", id, format)
	}
	return exp, nil
}

func (s *StubRemote) ListGames(ctx context.Context, scheduleID string) ([]games.Game, error) {
	if err := s.enter(ctx, remote.OpListGames, scheduleID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]games.Game{}, s.Schedules[scheduleID].Games...), nil
}

func (s *StubRemote) CreateGame(ctx context.Context, scheduleID string, g games.Game) (games.Game, error) {
	if err := s.enter(ctx, remote.OpCreateGame, scheduleID); err != nil {
		return games.Game{}, err
	}
	return g, nil
}

func (s *StubRemote) UpdateGame(ctx context.Context, g games.Game) (games.Game, error) {
	if err := s.enter(ctx, remote.OpUpdateGame, g.ID); err != nil {
		return games.Game{}, err
	}
	return g, nil
}

func (s *StubRemote) DeleteGame(ctx context.Context, id string) error {
	return s.enter(ctx, remote.OpDeleteGame, id)
}

func (s *StubRemote) ValidateGame(ctx context.Context, g games.Game) (games.Validation, error) {
	if err := s.enter(ctx, remote.OpValidateGame, g.ID); err != nil {
		return games.Validation{}, err
	}
	return games.Validation{Valid: g.HomeTeamID != g.AwayTeamID}, nil
}

func (s *StubRemote) ListConstraints(ctx context.Context, sport string) ([]constraints.Constraint, error) {
	if err := s.enter(ctx, remote.OpListConstraints, sport); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok := s.Constraints[sport]; ok {
		return append([]constraints.Constraint{}, cs...), nil
	}
	return append([]constraints.Constraint{}, s.Constraints[""]...), nil
}

func (s *StubRemote) ListViolations(ctx context.Context, scheduleID string) ([]constraints.Violation, error) {
	if err := s.enter(ctx, remote.OpListViolations, scheduleID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]constraints.Violation{}, s.Violations[scheduleID]...), nil
}

func (s *StubRemote) FixViolation(ctx context.Context, id string) (json.RawMessage, error) {
	if err := s.enter(ctx, remote.OpFixViolation, id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fixed = append(s.Fixed, id)
	return json.RawMessage(`{"fixed":true}`), nil
}

var _ remote.API = (*StubRemote)(nil)

// StubSaver records exports instead of writing files.
type StubSaver struct {
	mu    sync.Mutex
	Saved []remote.Export
	Err   error
}

func (s *StubSaver) Save(ctx context.Context, exp remote.Export) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Saved = append(s.Saved, exp)
	return "/exports/" + exp.Filename, nil
}
