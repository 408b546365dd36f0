package schedules

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

// SportDefaults holds generation parameters that vary by sport.
type SportDefaults struct {
	Algorithm               string
	GameFormat              string
	RestDays                int
	AvoidBackToBack         bool
	HomeAwayBalance         bool
	RespectAcademicCalendar bool
	// Season window as month/day offsets relative to the season's start year.
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
	// EndsNextYear is set for sports whose season crosses January 1.
	EndsNextYear bool
}

var sportDefaults = map[string]SportDefaults{
	"football": {
		Algorithm: "round_robin", GameFormat: "single", RestDays: 6,
		AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.August, StartDay: 30, EndMonth: time.December, EndDay: 7,
	},
	"mens_basketball": {
		Algorithm: "round_robin", GameFormat: "double", RestDays: 1,
		AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.December, StartDay: 30, EndMonth: time.March, EndDay: 8, EndsNextYear: true,
	},
	"womens_basketball": {
		Algorithm: "round_robin", GameFormat: "double", RestDays: 1,
		AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.December, StartDay: 30, EndMonth: time.March, EndDay: 8, EndsNextYear: true,
	},
	"baseball": {
		Algorithm: "series", GameFormat: "series", RestDays: 0,
		AvoidBackToBack: false, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.March, StartDay: 7, EndMonth: time.May, EndDay: 18,
	},
	"softball": {
		Algorithm: "series", GameFormat: "series", RestDays: 0,
		AvoidBackToBack: false, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.March, StartDay: 7, EndMonth: time.May, EndDay: 10,
	},
	"volleyball": {
		Algorithm: "round_robin", GameFormat: "double", RestDays: 1,
		AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.September, StartDay: 20, EndMonth: time.November, EndDay: 30,
	},
	"soccer": {
		Algorithm: "round_robin", GameFormat: "single", RestDays: 2,
		AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
		StartMonth: time.September, StartDay: 20, EndMonth: time.November, EndDay: 2,
	},
}

var fallbackDefaults = SportDefaults{
	Algorithm: "round_robin", GameFormat: "single", RestDays: 1,
	AvoidBackToBack: true, HomeAwayBalance: true, RespectAcademicCalendar: true,
	StartMonth: time.September, StartDay: 1, EndMonth: time.November, EndDay: 30,
}

// DefaultsFor returns generation defaults for a sport, falling back to a generic profile.
func DefaultsFor(sport string) SportDefaults {
	if d, ok := sportDefaults[normalizeSport(sport)]; ok {
		return d
	}
	return fallbackDefaults
}

// SeasonWindow derives default start/end dates from a season label such as "2025-26" or "2025".
// ok is false when the label carries no recognizable year.
func (d SportDefaults) SeasonWindow(season string) (start, end timeutil.Date, ok bool) {
	year, ok := seasonStartYear(season)
	if !ok {
		return timeutil.Date{}, timeutil.Date{}, false
	}
	start = timeutil.NewDate(year, d.StartMonth, d.StartDay)
	endYear := year
	if d.EndsNextYear {
		endYear++
	}
	end = timeutil.NewDate(endYear, d.EndMonth, d.EndDay)
	return start, end, true
}

func seasonStartYear(season string) (int, bool) {
	season = strings.TrimSpace(season)
	if len(season) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(season[:4])
	if err != nil || year < 1900 {
		return 0, false
	}
	return year, true
}

func normalizeSport(sport string) string {
	s := strings.ToLower(strings.TrimSpace(sport))
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
