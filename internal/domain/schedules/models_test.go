package schedules

import (
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
)

func TestCloneDoesNotShareGames(t *testing.T) {
	orig := Schedule{ID: "s1", Games: []games.Game{{ID: "g1"}}, Metrics: map[string]float64{"balance": 0.9}}
	cp := orig.Clone()
	cp.Games[0].ID = "changed"
	cp.Metrics["balance"] = 0
	if orig.Games[0].ID != "g1" || orig.Metrics["balance"] != 0.9 {
		t.Fatalf("clone mutated original: %+v", orig)
	}
}

func TestSummarizeCountsGames(t *testing.T) {
	s := Schedule{ID: "s1", Name: "Fall", Games: []games.Game{{ID: "a"}, {ID: "b"}}}
	if sum := s.Summarize(); sum.GameCount != 2 || sum.ID != "s1" {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if (Schedule{}).Persisted() {
		t.Fatalf("expected unsaved schedule")
	}
}

func TestExportFormatValid(t *testing.T) {
	for _, f := range []ExportFormat{FormatCSV, FormatPDF, FormatICS, FormatJSON, FormatXLSX} {
		if !f.Valid() {
			t.Fatalf("expected %s to be valid", f)
		}
	}
	if ExportFormat("docx").Valid() {
		t.Fatalf("expected docx to be rejected")
	}
}

func TestDefaultsForKnownAndUnknownSports(t *testing.T) {
	if d := DefaultsFor("Men's Basketball"); d.GameFormat != "double" || !d.EndsNextYear {
		t.Fatalf("unexpected basketball defaults %+v", d)
	}
	if d := DefaultsFor("curling"); d.Algorithm != fallbackDefaults.Algorithm {
		t.Fatalf("expected fallback defaults, got %+v", d)
	}
}

func TestSeasonWindow(t *testing.T) {
	start, end, ok := DefaultsFor("mens_basketball").SeasonWindow("2025-26")
	if !ok {
		t.Fatalf("expected window")
	}
	if start.String() != "2025-12-30" || end.String() != "2026-03-08" {
		t.Fatalf("unexpected window %s..%s", start, end)
	}
	if _, _, ok := DefaultsFor("football").SeasonWindow("fall"); ok {
		t.Fatalf("expected no window for label without year")
	}
}

func TestScheduleDecodesCamelAndSnakeKeys(t *testing.T) {
	var camel, snake Schedule
	if err := json.Unmarshal([]byte(`{"id":"s9","name":"Fall","startDate":"2025-08-30","endDate":"2025-11-29","games":[{"id":"g1","homeTeamId":1,"awayTeamId":2}]}`), &camel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"schedule_id":"s9","name":"Fall","start_date":"2025-08-30","end_date":"2025-11-29","games":[{"id":"g1","home_team_id":1,"away_team_id":2}]}`), &snake); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range []Schedule{camel, snake} {
		if s.ID != "s9" || !s.Persisted() {
			t.Fatalf("expected persisted id s9, got %+v", s)
		}
		if s.StartDate.String() != "2025-08-30" || s.EndDate.String() != "2025-11-29" {
			t.Fatalf("unexpected date range %s..%s", s.StartDate, s.EndDate)
		}
		if len(s.Games) != 1 || s.Games[0].HomeTeamID != 1 || s.Games[0].AwayTeamID != 2 {
			t.Fatalf("unexpected games %+v", s.Games)
		}
	}
}

func TestScheduleEncodesCamelKeys(t *testing.T) {
	raw, err := json.Marshal(Schedule{ID: "s1", Name: "Fall"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"id", "startDate", "endDate", "games"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected key %s in %s", key, raw)
		}
	}
}
