package store

import (
	"sync"

	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
)

// State is the canonical schedule-builder state for the current selection.
type State struct {
	Sport      string
	Conference string
	Season     string
	// Epoch increments on every sport change; responses issued under an older epoch are stale.
	Epoch       uint64
	Loaded      bool
	Teams       []teams.Team
	Catalog     reconcile.Snapshot
	Schedule    schedules.Schedule
	HasSchedule bool
}

// ScheduleID returns the current schedule id, or "" when there is none or it is unsaved.
func (s State) ScheduleID() string {
	if !s.HasSchedule {
		return ""
	}
	return s.Schedule.ID
}

func (s State) clone() State {
	out := s
	out.Teams = append([]teams.Team{}, s.Teams...)
	out.Catalog = s.Catalog.Clone()
	out.Schedule = s.Schedule.Clone()
	return out
}

// MemoryStore keeps a thread-safe snapshot of the schedule-builder state in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: State{}.clone()}
}

// Get returns a copy of the current state.
func (s *MemoryStore) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Update applies fn to a copy of the state and commits it when fn returns true.
// The committed (or untouched) state is returned.
func (s *MemoryStore) Update(fn func(*State) bool) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if !fn(&next) {
		return s.state.clone(), false
	}
	s.state = next
	return next.clone(), true
}

// ListGames returns a copy of the current schedule's games.
func (s *MemoryStore) ListGames() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.HasSchedule {
		return []games.Game{}
	}
	return append([]games.Game{}, s.state.Schedule.Games...)
}

// GetGame retrieves a game of the current schedule by ID.
func (s *MemoryStore) GetGame(id string) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.HasSchedule {
		return games.Game{}, false
	}
	for _, g := range s.state.Schedule.Games {
		if g.ID == id {
			return g, true
		}
	}
	return games.Game{}, false
}

// Teams returns a copy of the loaded team set.
func (s *MemoryStore) Teams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]teams.Team{}, s.state.Teams...)
}
