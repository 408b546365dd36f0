package orchestrator

// PhaseKind names the orchestrator's mutually exclusive activity states.
type PhaseKind string

const (
	PhaseIdle       PhaseKind = "idle"
	PhaseLoading    PhaseKind = "loading"
	PhaseOptimizing PhaseKind = "optimizing"
	PhaseSaving     PhaseKind = "saving"
	PhaseFailed     PhaseKind = "failed"
)

// Phase is the single tagged state replacing separate loading/optimizing/saving flags.
// Prev and Message are only set for PhaseFailed.
type Phase struct {
	Kind    PhaseKind `json:"kind"`
	Prev    PhaseKind `json:"prev,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Idle is the resting phase.
func Idle() Phase {
	return Phase{Kind: PhaseIdle}
}

// Failed records that the operation running in prev failed with message.
func Failed(prev PhaseKind, message string) Phase {
	if prev == PhaseFailed || prev == "" {
		prev = PhaseIdle
	}
	return Phase{Kind: PhaseFailed, Prev: prev, Message: message}
}

// Busy reports whether a long-running operation is in flight.
func (p Phase) Busy() bool {
	switch p.Kind {
	case PhaseLoading, PhaseOptimizing, PhaseSaving:
		return true
	}
	return false
}

// Error returns the user-visible failure message, or "".
func (p Phase) Error() string {
	if p.Kind != PhaseFailed {
		return ""
	}
	return p.Message
}
