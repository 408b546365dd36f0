package games

import (
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

func TestGameStatusValues(t *testing.T) {
	expected := map[Status]string{
		StatusScheduled: "scheduled",
		StatusConfirmed: "confirmed",
		StatusConflict:  "conflict",
		StatusTentative: "tentative",
		StatusCancelled: "cancelled",
	}

	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
	}
}

func TestStatusDecodingNormalizes(t *testing.T) {
	var g Game
	if err := json.Unmarshal([]byte(`{"id":"g1","status":"Canceled","date":"2024-09-07"}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", g.Status)
	}
	if err := json.Unmarshal([]byte(`{"id":"g1","status":"whatever"}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Status != StatusScheduled {
		t.Fatalf("expected unknown status to map to scheduled, got %s", g.Status)
	}
}

func TestOpponentOf(t *testing.T) {
	g := Game{HomeTeamID: 1, AwayTeamID: 2}
	if opp, home := g.OpponentOf(1); opp != 2 || !home {
		t.Fatalf("expected home vs 2, got %d %v", opp, home)
	}
	if opp, home := g.OpponentOf(2); opp != 1 || home {
		t.Fatalf("expected away vs 1, got %d %v", opp, home)
	}
	if g.Involves(3) {
		t.Fatalf("team 3 should not be involved")
	}
}

func TestDateRange(t *testing.T) {
	items := []Game{
		{ID: "a", Date: timeutil.MustDate("2024-09-14")},
		{ID: "b"},
		{ID: "c", Date: timeutil.MustDate("2024-09-07")},
		{ID: "d", Date: timeutil.MustDate("2024-10-01")},
	}
	min, max, ok := DateRange(items)
	if !ok || min.String() != "2024-09-07" || max.String() != "2024-10-01" {
		t.Fatalf("unexpected range %s..%s ok=%v", min, max, ok)
	}
	if _, _, ok := DateRange([]Game{{ID: "x"}}); ok {
		t.Fatalf("expected no range for undated games")
	}
}

func TestGameDecodesCamelAndSnakeKeys(t *testing.T) {
	var camel, snake Game
	if err := json.Unmarshal([]byte(`{"id":"g1","scheduleId":"s1","homeTeamId":1,"awayTeamId":2,"date":"2025-09-06","venueName":"Field","status":"confirmed"}`), &camel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":"g1","schedule_id":"s1","home_team_id":1,"away_team_id":2,"date":"2025-09-06","venue_name":"Field","status":"confirmed"}`), &snake); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if camel != snake {
		t.Fatalf("expected identical games, got %+v and %+v", camel, snake)
	}
	if camel.HomeTeamID != 1 || camel.AwayTeamID != 2 || camel.ScheduleID != "s1" || camel.VenueName != "Field" {
		t.Fatalf("unexpected game %+v", camel)
	}
	if camel.Status != StatusConfirmed || !camel.Date.Equal(timeutil.MustDate("2025-09-06")) {
		t.Fatalf("unexpected status or date %+v", camel)
	}
}

func TestGameEncodesCamelKeys(t *testing.T) {
	raw, err := json.Marshal(Game{ID: "g1", HomeTeamID: 1, AwayTeamID: 2, Status: StatusScheduled})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"homeTeamId", "awayTeamId"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected key %s in %s", key, raw)
		}
	}
	if _, ok := fields["home_team_id"]; ok {
		t.Fatalf("unexpected snake_case key in %s", raw)
	}
}
