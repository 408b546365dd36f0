package orchestrator

import (
	"fmt"

	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/store"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// GenerateOptions overrides the sport defaults for one generation. Zero values and nil
// pointers mean "use the default".
type GenerateOptions struct {
	Name                    string        `json:"name,omitempty"`
	Season                  string        `json:"season,omitempty"`
	TeamIDs                 []int         `json:"teams,omitempty"`
	Algorithm               string        `json:"algorithm,omitempty"`
	StartDate               timeutil.Date `json:"startDate"`
	EndDate                 timeutil.Date `json:"endDate"`
	GameFormat              string        `json:"gameFormat,omitempty"`
	RestDays                *int          `json:"restDays,omitempty"`
	HomeAwayBalance         *bool         `json:"homeAwayBalance,omitempty"`
	AvoidBackToBack         *bool         `json:"avoidBackToBack,omitempty"`
	RespectAcademicCalendar *bool         `json:"respectAcademicCalendar,omitempty"`
}

// buildGenerateRequest merges options, sport defaults and the current catalog.
// Only active constraints are sent.
func buildGenerateRequest(st store.State, opts GenerateOptions) (schedules.GenerateRequest, error) {
	if st.Sport == "" {
		return schedules.GenerateRequest{}, ErrNoSport
	}
	teamIDs := opts.TeamIDs
	if len(teamIDs) == 0 {
		teamIDs = teams.IDs(st.Teams)
	}
	if len(teamIDs) == 0 {
		return schedules.GenerateRequest{}, ErrNoTeams
	}

	season := firstNonEmpty(opts.Season, st.Season)
	d := schedules.DefaultsFor(st.Sport)
	req := schedules.GenerateRequest{
		Sport:                   st.Sport,
		Season:                  season,
		Teams:                   append([]int{}, teamIDs...),
		Algorithm:               firstNonEmpty(opts.Algorithm, d.Algorithm),
		Constraints:             reconcile.ActiveIDs(st.Catalog.Constraints),
		StartDate:               opts.StartDate,
		EndDate:                 opts.EndDate,
		GameFormat:              firstNonEmpty(opts.GameFormat, d.GameFormat),
		RestDays:                d.RestDays,
		HomeAwayBalance:         d.HomeAwayBalance,
		AvoidBackToBack:         d.AvoidBackToBack,
		RespectAcademicCalendar: d.RespectAcademicCalendar,
	}
	if opts.RestDays != nil {
		req.RestDays = *opts.RestDays
	}
	if opts.HomeAwayBalance != nil {
		req.HomeAwayBalance = *opts.HomeAwayBalance
	}
	if opts.AvoidBackToBack != nil {
		req.AvoidBackToBack = *opts.AvoidBackToBack
	}
	if opts.RespectAcademicCalendar != nil {
		req.RespectAcademicCalendar = *opts.RespectAcademicCalendar
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		if start, end, ok := d.SeasonWindow(season); ok {
			if req.StartDate.IsZero() {
				req.StartDate = start
			}
			if req.EndDate.IsZero() {
				req.EndDate = end
			}
		}
	}
	return req, nil
}

// withSelection fills schedule fields the service left empty from the current selection.
func withSelection(s schedules.Schedule, st store.State) schedules.Schedule {
	s.Sport = firstNonEmpty(s.Sport, st.Sport)
	s.Conference = firstNonEmpty(s.Conference, st.Conference)
	s.Season = firstNonEmpty(s.Season, st.Season)
	if s.Name == "" {
		s.Name = defaultScheduleName(s)
	}
	return s
}

func defaultScheduleName(s schedules.Schedule) string {
	if s.Season == "" {
		return fmt.Sprintf("%s schedule", s.Sport)
	}
	return fmt.Sprintf("%s %s schedule", s.Sport, s.Season)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
