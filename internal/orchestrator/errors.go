package orchestrator

import "errors"

// User-visible failure messages, one per operation.
const (
	MsgLoadTeams        = "Failed to load teams"
	MsgLoadConstraints  = "Failed to load constraints"
	MsgLoadSchedule     = "Failed to load schedule"
	MsgCreateSchedule   = "Failed to create schedule"
	MsgGenerateSchedule = "Failed to generate schedule"
	MsgOptimizeSchedule = "Failed to optimize schedule"
	MsgSaveSchedule     = "Failed to save schedule"
	MsgExportSchedule   = "Failed to export schedule"
	MsgUpdateConstraint = "Failed to update constraint"
	MsgAutoFix          = "Failed to auto-fix violation"
	MsgLoadViolations   = "Failed to load violations"
)

var (
	// ErrNoSport is returned by operations that need a selected sport.
	ErrNoSport = errors.New("no sport selected")
	// ErrNoSchedule is returned by operations that need a current (or persisted) schedule.
	ErrNoSchedule = errors.New("no current schedule")
	// ErrNoTeams is returned when generation has no teams to schedule.
	ErrNoTeams = errors.New("no teams loaded")
	// ErrSuperseded is returned when a response arrived after its selection moved on and was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// OperationError pairs a stable user-facing message with the underlying cause.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// AsOperationError unwraps err into an OperationError when possible.
func AsOperationError(err error) (*OperationError, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr, true
	}
	return nil, false
}
