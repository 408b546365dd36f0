package constraints

// Type distinguishes rules that must hold from rules that are preferred.
type Type string

const (
	TypeHard Type = "hard"
	TypeSoft Type = "soft"
)

// Constraint is a named scheduling rule scoped by sport. Active is user-toggleable.
type Constraint struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          Type     `json:"type"`
	Category      string   `json:"category"`
	Description   string   `json:"description,omitempty"`
	Weight        int      `json:"weight"`
	Active        bool     `json:"active"`
	SportSpecific []string `json:"sportSpecific,omitempty"`
}

// AppliesTo reports whether the constraint is visible for sport.
// Constraints without a sport list apply to every sport.
func (c Constraint) AppliesTo(sport string) bool {
	if len(c.SportSpecific) == 0 {
		return true
	}
	for _, s := range c.SportSpecific {
		if s == sport {
			return true
		}
	}
	return false
}

// ViolationType is the severity class of a violation.
type ViolationType string

const (
	ViolationError   ViolationType = "error"
	ViolationWarning ViolationType = "warning"
	ViolationInfo    ViolationType = "info"
)

// Violation is a server-detected breach of an active constraint for one schedule.
type Violation struct {
	ID           string        `json:"id"`
	ConstraintID string        `json:"constraintId"`
	GameID       string        `json:"gameId,omitempty"`
	Type         ViolationType `json:"type"`
	Severity     int           `json:"severity"`
	Message      string        `json:"message"`
	Suggestion   string        `json:"suggestion,omitempty"`
	AutoFixable  bool          `json:"autoFixable"`
}
