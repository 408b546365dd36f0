package remote

import "time"

const (
	defaultBaseURL     = "http://localhost:3001"
	defaultHTTPTimeout = 60 * time.Second
	maxErrorBodyBytes  = 512

	pathTeams       = "/api/teams"
	pathVenues      = "/api/venues"
	pathSchedules   = "/api/schedule/schedules"
	pathGames       = "/api/schedule/games"
	pathViolations  = "/api/violations"
	pathConstraints = "/api/scheduling-service/constraints"
)

// Operation names label errors, logs, and metrics.
const (
	OpListTeams        = "list_teams"
	OpListVenues       = "list_venues"
	OpListSchedules    = "list_schedules"
	OpGetSchedule      = "get_schedule"
	OpCreateSchedule   = "create_schedule"
	OpUpdateSchedule   = "update_schedule"
	OpDeleteSchedule   = "delete_schedule"
	OpListGames        = "list_games"
	OpCreateGame       = "create_game"
	OpUpdateGame       = "update_game"
	OpDeleteGame       = "delete_game"
	OpValidateGame     = "validate_game"
	OpListConstraints  = "list_constraints"
	OpListViolations   = "list_violations"
	OpFixViolation     = "fix_violation"
	OpGenerateSchedule = "generate_schedule"
	OpOptimizeSchedule = "optimize_schedule"
	OpExportSchedule   = "export_schedule"
)
