package reconcile

import (
	"sort"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
)

// FilterAll disables type filtering in FilterViolations.
const FilterAll = "all"

// FilterViolations returns the violations of the given type, or all of them for FilterAll or "".
func FilterViolations(vs []constraints.Violation, byType string) []constraints.Violation {
	out := make([]constraints.Violation, 0, len(vs))
	for _, v := range vs {
		if byType == FilterAll || byType == "" || string(v.Type) == byType {
			out = append(out, v)
		}
	}
	return out
}

// ViolationStats counts violations per type.
type ViolationStats struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Fixable  int `json:"autoFixable"`
}

// Stats recomputes the per-type counts from scratch.
func Stats(vs []constraints.Violation) ViolationStats {
	var s ViolationStats
	for _, v := range vs {
		s.Total++
		switch v.Type {
		case constraints.ViolationError:
			s.Errors++
		case constraints.ViolationWarning:
			s.Warnings++
		case constraints.ViolationInfo:
			s.Info++
		}
		if v.AutoFixable {
			s.Fixable++
		}
	}
	return s
}

// VisibleConstraints keeps the constraints that apply to sport, preserving order.
func VisibleConstraints(cs []constraints.Constraint, sport string) []constraints.Constraint {
	out := make([]constraints.Constraint, 0, len(cs))
	for _, c := range cs {
		if c.AppliesTo(sport) {
			out = append(out, c)
		}
	}
	return out
}

// ActiveIDs returns the ids of active constraints in catalog order.
func ActiveIDs(cs []constraints.Constraint) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Active {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Group is one category of constraints.
type Group struct {
	Category    string                   `json:"category"`
	Constraints []constraints.Constraint `json:"constraints"`
	Active      int                      `json:"active"`
}

// GroupByCategory buckets constraints by category, sorted by category name.
func GroupByCategory(cs []constraints.Constraint) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, c := range cs {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, Group{Category: c.Category})
		}
		groups[i].Constraints = append(groups[i].Constraints, c)
		if c.Active {
			groups[i].Active++
		}
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Category < groups[b].Category
	})
	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// ViolationsForGame returns the violations attached to one game.
func ViolationsForGame(vs []constraints.Violation, gameID string) []constraints.Violation {
	out := make([]constraints.Violation, 0)
	for _, v := range vs {
		if v.GameID != "" && v.GameID == gameID {
			out = append(out, v)
		}
	}
	return out
}

// Toggled returns a copy of c with Active flipped.
func Toggled(c constraints.Constraint) constraints.Constraint {
	out := c
	out.Active = !c.Active
	if c.SportSpecific != nil {
		out.SportSpecific = append([]string(nil), c.SportSpecific...)
	}
	return out
}

func replaceConstraint(cs []constraints.Constraint, updated constraints.Constraint) []constraints.Constraint {
	out := make([]constraints.Constraint, len(cs))
	copy(out, cs)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}

func findConstraint(cs []constraints.Constraint, id string) (constraints.Constraint, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return constraints.Constraint{}, false
}

func findViolation(vs []constraints.Violation, id string) (constraints.Violation, bool) {
	for _, v := range vs {
		if v.ID == id {
			return v, true
		}
	}
	return constraints.Violation{}, false
}
