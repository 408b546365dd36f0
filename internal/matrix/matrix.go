package matrix

import (
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// Week is one Monday-aligned bucket of games.
type Week struct {
	Key     string        `json:"key"`
	Start   timeutil.Date `json:"weekStart"`
	End     timeutil.Date `json:"weekEnd"`
	Label   string        `json:"weekLabel"`
	ISOWeek int           `json:"isoWeek"`
	Games   []games.Game  `json:"games"`
}

// Cell is a game as seen from one team's row.
type Cell struct {
	GameID       string        `json:"gameId"`
	OpponentID   int           `json:"opponentId"`
	OpponentName string        `json:"opponentName"`
	IsHome       bool          `json:"isHome"`
	Status       games.Status  `json:"status"`
	Time         string        `json:"time,omitempty"`
	Venue        string        `json:"venue,omitempty"`
	Date         timeutil.Date `json:"date"`
}

// TeamRow holds one team's cells keyed by week key. Every week has an entry, possibly empty.
type TeamRow struct {
	TeamID   int               `json:"teamId"`
	TeamName string            `json:"teamName"`
	Cells    map[string][]Cell `json:"cells"`
}

// Matrix is the week-by-team view of a schedule.
type Matrix struct {
	Weeks []Week    `json:"weeks"`
	Rows  []TeamRow `json:"teamRows"`
}

// Empty reports whether there is nothing to render.
func (m Matrix) Empty() bool {
	return len(m.Weeks) == 0
}

// Row returns the row for teamID.
func (m Matrix) Row(teamID int) (TeamRow, bool) {
	for _, row := range m.Rows {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return TeamRow{}, false
}

// Build buckets games into contiguous Monday-start weeks and projects them onto one row per team.
// Games without a date cannot be placed and are skipped. Rows follow the order of teamList.
func Build(gameList []games.Game, teamList []teams.Team) Matrix {
	first, last, ok := games.DateRange(gameList)
	if !ok {
		return Matrix{Weeks: []Week{}, Rows: []TeamRow{}}
	}

	weeks := weekRange(first, last)
	byKey := make(map[string]int, len(weeks))
	for i, w := range weeks {
		byKey[w.Key] = i
	}
	for _, g := range gameList {
		if g.Date.IsZero() {
			continue
		}
		i := byKey[weekKey(g.Date)]
		weeks[i].Games = append(weeks[i].Games, g)
	}

	idx := teams.NewIndex(teamList)
	rows := make([]TeamRow, 0, len(teamList))
	for _, t := range teamList {
		rows = append(rows, buildRow(t, weeks, idx))
	}
	return Matrix{Weeks: weeks, Rows: rows}
}

func weekRange(first, last timeutil.Date) []Week {
	end := last.EndOfWeek()
	var weeks []Week
	for start := first.StartOfWeek(); !start.After(end); start = start.AddDays(7) {
		weeks = append(weeks, Week{
			Key:     start.String(),
			Start:   start,
			End:     start.EndOfWeek(),
			Label:   start.Format(timeutil.WeekLabelLayout),
			ISOWeek: start.ISOWeek(),
			Games:   []games.Game{},
		})
	}
	return weeks
}

func buildRow(t teams.Team, weeks []Week, idx teams.Index) TeamRow {
	row := TeamRow{
		TeamID:   t.TeamID,
		TeamName: t.Name,
		Cells:    make(map[string][]Cell, len(weeks)),
	}
	if row.TeamName == "" {
		row.TeamName = teams.PlaceholderLabel(t.TeamID)
	}
	for _, w := range weeks {
		cells := []Cell{}
		for _, g := range w.Games {
			if !g.Involves(t.TeamID) {
				continue
			}
			cells = append(cells, cellFor(g, t.TeamID, idx))
		}
		row.Cells[w.Key] = cells
	}
	return row
}

func cellFor(g games.Game, teamID int, idx teams.Index) Cell {
	opponentID, isHome := g.OpponentOf(teamID)
	return Cell{
		GameID:       g.ID,
		OpponentID:   opponentID,
		OpponentName: opponentLabel(idx, opponentID),
		IsHome:       isHome,
		Status:       g.Status,
		Time:         g.Time,
		Venue:        g.VenueName,
		Date:         g.Date,
	}
}

func opponentLabel(idx teams.Index, id int) string {
	if t, ok := idx[id]; ok && t.Label() != "" {
		return t.Label()
	}
	return teams.PlaceholderLabel(id)
}

func weekKey(d timeutil.Date) string {
	return d.StartOfWeek().String()
}
