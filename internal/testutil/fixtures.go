package testutil

import (
	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// SampleTeams returns three teams with ids 1..3 named A, B, C.
func SampleTeams() []teams.Team {
	return []teams.Team{
		{TeamID: 1, Name: "A"},
		{TeamID: 2, Name: "B"},
		{TeamID: 3, Name: "C"},
	}
}

// SampleGame returns a scheduled game fixture.
func SampleGame(id string, home, away int, date string) games.Game {
	return games.Game{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Date:       timeutil.MustDate(date),
		Time:       "19:00",
		VenueName:  "Home Field",
		Status:     games.StatusScheduled,
	}
}

// SampleSchedule returns a two-week football schedule over SampleTeams.
func SampleSchedule(id string) schedules.Schedule {
	return schedules.Schedule{
		ID:         id,
		Name:       "Fall",
		Sport:      "football",
		Season:     "2024",
		Conference: "big12",
		Status:     schedules.StatusDraft,
		StartDate:  timeutil.MustDate("2024-09-07"),
		EndDate:    timeutil.MustDate("2024-09-14"),
		Games: []games.Game{
			SampleGame("g1", 1, 2, "2024-09-07"),
			SampleGame("g2", 3, 1, "2024-09-14"),
		},
	}
}

// SampleConstraints returns a small catalog with one football-only rule.
func SampleConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		{ID: "rest", Name: "Rest days", Type: constraints.TypeHard, Category: "welfare", Weight: 10, Active: true},
		{ID: "travel", Name: "Travel", Type: constraints.TypeSoft, Category: "logistics", Weight: 4, Active: false},
		{ID: "tv", Name: "TV window", Type: constraints.TypeSoft, Category: "broadcast", Weight: 3, Active: true, SportSpecific: []string{"football"}},
	}
}

// SampleViolations returns one violation of each type; only the error is auto-fixable.
func SampleViolations() []constraints.Violation {
	return []constraints.Violation{
		{ID: "v1", ConstraintID: "rest", GameID: "g1", Type: constraints.ViolationError, Severity: 5, Message: "short rest", AutoFixable: true},
		{ID: "v2", ConstraintID: "travel", GameID: "g2", Type: constraints.ViolationWarning, Severity: 2, Message: "long trip"},
		{ID: "v3", ConstraintID: "tv", Type: constraints.ViolationInfo, Severity: 1, Message: "no TV slot"},
	}
}
