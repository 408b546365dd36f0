package schedules

import (
	"encoding/json"

	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// Status is the schedule's publication state as reported by the service.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusGenerated Status = "generated"
	StatusOptimized Status = "optimized"
	StatusPublished Status = "published"
)

// Schedule is a named collection of games for one sport/season/conference.
// An empty ID means the schedule has not been persisted yet.
type Schedule struct {
	ID         string             `json:"id,omitempty"`
	Name       string             `json:"name"`
	Sport      string             `json:"sport"`
	Season     string             `json:"season"`
	Conference string             `json:"conference,omitempty"`
	Status     Status             `json:"status,omitempty"`
	StartDate  timeutil.Date      `json:"startDate"`
	EndDate    timeutil.Date      `json:"endDate"`
	Games      []games.Game       `json:"games"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// UnmarshalJSON also accepts the snake_case keys older service builds emit.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	type plain Schedule
	var aux struct {
		plain
		LegacyID    string        `json:"schedule_id"`
		LegacyStart timeutil.Date `json:"start_date"`
		LegacyEnd   timeutil.Date `json:"end_date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Schedule(aux.plain)
	if s.ID == "" {
		s.ID = aux.LegacyID
	}
	if s.StartDate.IsZero() {
		s.StartDate = aux.LegacyStart
	}
	if s.EndDate.IsZero() {
		s.EndDate = aux.LegacyEnd
	}
	return nil
}

// Persisted reports whether the schedule has a server-assigned id.
func (s Schedule) Persisted() bool {
	return s.ID != ""
}

// Clone returns a copy whose slices and maps are not shared with s.
func (s Schedule) Clone() Schedule {
	out := s
	if s.Games != nil {
		out.Games = append([]games.Game(nil), s.Games...)
	}
	if s.Metrics != nil {
		out.Metrics = make(map[string]float64, len(s.Metrics))
		for k, v := range s.Metrics {
			out.Metrics[k] = v
		}
	}
	return out
}

// Summary is the lightweight view returned alongside orchestrator state.
type Summary struct {
	ID         string        `json:"id,omitempty"`
	Name       string        `json:"name"`
	Sport      string        `json:"sport"`
	Season     string        `json:"season"`
	Conference string        `json:"conference,omitempty"`
	Status     Status        `json:"status,omitempty"`
	StartDate  timeutil.Date `json:"startDate"`
	EndDate    timeutil.Date `json:"endDate"`
	GameCount  int           `json:"gameCount"`
}

// Summarize drops the game list.
func (s Schedule) Summarize() Summary {
	return Summary{
		ID:         s.ID,
		Name:       s.Name,
		Sport:      s.Sport,
		Season:     s.Season,
		Conference: s.Conference,
		Status:     s.Status,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		GameCount:  len(s.Games),
	}
}

// Filter narrows ListSchedules queries.
type Filter struct {
	Sport      string
	Season     string
	Conference string
	Status     Status
}

// GenerateRequest is the body posted to the generation endpoint.
type GenerateRequest struct {
	Sport                   string        `json:"sport"`
	Season                  string        `json:"season"`
	Teams                   []int         `json:"teams"`
	Algorithm               string        `json:"algorithm"`
	Constraints             []string      `json:"constraints"`
	StartDate               timeutil.Date `json:"startDate"`
	EndDate                 timeutil.Date `json:"endDate"`
	GameFormat              string        `json:"gameFormat"`
	RestDays                int           `json:"restDays"`
	HomeAwayBalance         bool          `json:"homeAwayBalance"`
	AvoidBackToBack         bool          `json:"avoidBackToBack"`
	RespectAcademicCalendar bool          `json:"respectAcademicCalendar"`
}

// ExportFormat names a downloadable representation of a schedule.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
	FormatICS  ExportFormat = "ics"
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
)

// Valid reports whether the format is one the service can export.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatCSV, FormatPDF, FormatICS, FormatJSON, FormatXLSX:
		return true
	}
	return false
}
