package games

import (
	"encoding/json"
	"strings"

	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// Status mirrors the scheduling service's game lifecycle states.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusConflict  Status = "conflict"
	StatusTentative Status = "tentative"
	StatusCancelled Status = "cancelled"
)

// ParseStatus normalizes a raw status; unknown values map to scheduled.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed":
		return StatusConfirmed
	case "conflict":
		return StatusConflict
	case "tentative":
		return StatusTentative
	case "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

// UnmarshalJSON tolerates casing and spelling variants from the service.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Game is one fixture within a schedule. Identity is ID.
type Game struct {
	ID         string        `json:"id"`
	ScheduleID string        `json:"scheduleId,omitempty"`
	HomeTeamID int           `json:"homeTeamId"`
	AwayTeamID int           `json:"awayTeamId"`
	Date       timeutil.Date `json:"date"`
	Time       string        `json:"time,omitempty"`
	VenueName  string        `json:"venueName,omitempty"`
	Status     Status        `json:"status"`
}

// UnmarshalJSON also accepts the snake_case keys older service builds emit.
func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	var aux struct {
		plain
		LegacySchedule string `json:"schedule_id"`
		LegacyHome     int    `json:"home_team_id"`
		LegacyAway     int    `json:"away_team_id"`
		LegacyVenue    string `json:"venue_name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*g = Game(aux.plain)
	if g.ScheduleID == "" {
		g.ScheduleID = aux.LegacySchedule
	}
	if g.HomeTeamID == 0 {
		g.HomeTeamID = aux.LegacyHome
	}
	if g.AwayTeamID == 0 {
		g.AwayTeamID = aux.LegacyAway
	}
	if g.VenueName == "" {
		g.VenueName = aux.LegacyVenue
	}
	return nil
}

// Involves reports whether the team plays in the game.
func (g Game) Involves(teamID int) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// OpponentOf returns the other team's id and whether teamID is the home side.
// Callers should check Involves first.
func (g Game) OpponentOf(teamID int) (opponentID int, isHome bool) {
	if g.HomeTeamID == teamID {
		return g.AwayTeamID, true
	}
	return g.HomeTeamID, false
}

// Validation is the service's verdict on a single game.
type Validation struct {
	Valid     bool     `json:"valid"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// DateRange returns the earliest and latest game dates, ignoring unset dates.
// ok is false when no game carries a date.
func DateRange(items []Game) (min, max timeutil.Date, ok bool) {
	for _, g := range items {
		if g.Date.IsZero() {
			continue
		}
		if !ok {
			min, max, ok = g.Date, g.Date, true
			continue
		}
		if g.Date.Before(min) {
			min = g.Date
		}
		if g.Date.After(max) {
			max = g.Date
		}
	}
	return min, max, ok
}
