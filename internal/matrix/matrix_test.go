package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

func game(id string, home, away int, date string) games.Game {
	return games.Game{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Date:       timeutil.MustDate(date),
		Time:       "19:00",
		Status:     games.StatusScheduled,
	}
}

func abcTeams() []teams.Team {
	return []teams.Team{
		{TeamID: 1, Name: "A"},
		{TeamID: 2, Name: "B"},
		{TeamID: 3, Name: "C"},
	}
}

func TestBuildTwoWeekExample(t *testing.T) {
	m := Build([]games.Game{
		game("g1", 1, 2, "2024-09-07"),
		game("g2", 3, 1, "2024-09-14"),
	}, abcTeams())

	require.Len(t, m.Weeks, 2)
	assert.Equal(t, "2024-09-02", m.Weeks[0].Key)
	assert.Equal(t, "2024-09-09", m.Weeks[1].Key)
	assert.Equal(t, "Sep 2", m.Weeks[0].Label)
	assert.Equal(t, 36, m.Weeks[0].ISOWeek)
	require.Len(t, m.Rows, 3)

	a, ok := m.Row(1)
	require.True(t, ok)
	week1 := a.Cells["2024-09-02"]
	require.Len(t, week1, 1)
	assert.True(t, week1[0].IsHome)
	assert.Equal(t, "B", week1[0].OpponentName)
	week2 := a.Cells["2024-09-09"]
	require.Len(t, week2, 1)
	assert.False(t, week2[0].IsHome)
	assert.Equal(t, "C", week2[0].OpponentName)

	for _, id := range []int{2, 3} {
		row, ok := m.Row(id)
		require.True(t, ok)
		total, empty := 0, 0
		for _, w := range m.Weeks {
			cells, present := row.Cells[w.Key]
			require.True(t, present, "team %d missing week %s", id, w.Key)
			total += len(cells)
			if len(cells) == 0 {
				empty++
			}
		}
		assert.Equal(t, 1, total)
		assert.Equal(t, 1, empty)
	}
}

func TestBuildEmptyGames(t *testing.T) {
	m := Build(nil, abcTeams())
	assert.True(t, m.Empty())
	assert.Empty(t, m.Weeks)
	assert.Empty(t, m.Rows)
	assert.NotNil(t, m.Weeks)
}

func TestBuildWeeksAreContiguousAndCoverRange(t *testing.T) {
	gs := []games.Game{
		game("late", 1, 2, "2024-11-30"),
		game("early", 2, 3, "2024-08-31"),
		game("mid", 3, 1, "2024-10-01"),
	}
	m := Build(gs, abcTeams())

	require.NotEmpty(t, m.Weeks)
	for i := 1; i < len(m.Weeks); i++ {
		assert.True(t, m.Weeks[i-1].Start.AddDays(7).Equal(m.Weeks[i].Start), "gap after %s", m.Weeks[i-1].Key)
	}
	first, last := m.Weeks[0], m.Weeks[len(m.Weeks)-1]
	assert.Equal(t, "2024-08-26", first.Key)
	assert.Equal(t, "2024-11-25", last.Key)
	assert.Equal(t, "2024-12-01", last.End.String())
	assert.Len(t, m.Weeks, 14)
}

func TestBuildRowCompleteness(t *testing.T) {
	gs := []games.Game{
		game("g1", 1, 2, "2024-09-07"),
		game("g2", 2, 3, "2024-10-05"),
	}
	m := Build(gs, abcTeams())
	require.Len(t, m.Rows, 3)
	for _, row := range m.Rows {
		assert.Len(t, row.Cells, len(m.Weeks))
		for _, w := range m.Weeks {
			cells, ok := row.Cells[w.Key]
			assert.True(t, ok)
			assert.NotNil(t, cells)
		}
	}
}

func TestBuildHomeAwayCorrectness(t *testing.T) {
	gs := []games.Game{
		game("g1", 1, 2, "2024-09-07"),
		game("g2", 2, 1, "2024-09-08"),
	}
	m := Build(gs, abcTeams())
	for _, row := range m.Rows {
		for _, cells := range row.Cells {
			for _, c := range cells {
				var g games.Game
				for _, candidate := range gs {
					if candidate.ID == c.GameID {
						g = candidate
					}
				}
				assert.Equal(t, g.HomeTeamID == row.TeamID, c.IsHome)
			}
		}
	}
}

func TestBuildSundayStaysInWeek(t *testing.T) {
	m := Build([]games.Game{
		game("sat", 1, 2, "2024-09-07"),
		game("sun", 1, 3, "2024-09-08"),
		game("mon", 2, 3, "2024-09-09"),
	}, abcTeams())

	require.Len(t, m.Weeks, 2)
	assert.Len(t, m.Weeks[0].Games, 2)
	assert.Len(t, m.Weeks[1].Games, 1)
	a, _ := m.Row(1)
	assert.Len(t, a.Cells["2024-09-02"], 2)
}

func TestBuildUnknownTeamUsesPlaceholder(t *testing.T) {
	m := Build([]games.Game{game("g1", 1, 99, "2024-09-07")}, abcTeams())
	a, ok := m.Row(1)
	require.True(t, ok)
	cells := a.Cells["2024-09-02"]
	require.Len(t, cells, 1)
	assert.Equal(t, "T99", cells[0].OpponentName)
	assert.Equal(t, 99, cells[0].OpponentID)

	_, ok = m.Row(99)
	assert.False(t, ok)
}

func TestBuildPrefersShortName(t *testing.T) {
	ts := []teams.Team{{TeamID: 1, Name: "Alpha"}, {TeamID: 2, Name: "Bravo State", ShortName: "BSU"}}
	m := Build([]games.Game{game("g1", 1, 2, "2024-09-07")}, ts)
	a, _ := m.Row(1)
	assert.Equal(t, "BSU", a.Cells["2024-09-02"][0].OpponentName)
	b, _ := m.Row(2)
	assert.Equal(t, "Bravo State", b.TeamName)
}

func TestBuildSkipsUndatedGames(t *testing.T) {
	m := Build([]games.Game{
		game("g1", 1, 2, "2024-09-07"),
		{ID: "tbd", HomeTeamID: 2, AwayTeamID: 3},
	}, abcTeams())
	require.Len(t, m.Weeks, 1)
	assert.Len(t, m.Weeks[0].Games, 1)

	assert.True(t, Build([]games.Game{{ID: "tbd"}}, abcTeams()).Empty())
}

func TestSummarize(t *testing.T) {
	m := Build([]games.Game{
		game("g1", 1, 2, "2024-09-07"),
		game("g2", 3, 1, "2024-09-14"),
	}, abcTeams())

	got := Summarize(m)
	require.Len(t, got, 3)
	assert.Equal(t, TeamSummary{TeamID: 1, TeamName: "A", Home: 1, Away: 1, Byes: 0}, got[0])
	assert.Equal(t, TeamSummary{TeamID: 2, TeamName: "B", Home: 0, Away: 1, Byes: 1}, got[1])
	assert.Equal(t, TeamSummary{TeamID: 3, TeamName: "C", Home: 1, Away: 0, Byes: 1}, got[2])
}
