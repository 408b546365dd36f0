package teams

import (
	"encoding/json"
	"fmt"
)

// Team represents a conference member as returned by the scheduling service.
// Identity is TeamID; a team set is immutable once loaded for a sport/conference.
type Team struct {
	TeamID    int    `json:"teamId"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
}

// UnmarshalJSON also accepts the snake_case keys older service builds emit.
func (t *Team) UnmarshalJSON(data []byte) error {
	type plain Team
	var aux struct {
		plain
		LegacyID    int    `json:"team_id"`
		LegacyShort string `json:"short_name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Team(aux.plain)
	if t.TeamID == 0 {
		t.TeamID = aux.LegacyID
	}
	if t.ShortName == "" {
		t.ShortName = aux.LegacyShort
	}
	return nil
}

// Label returns the short display name when present.
func (t Team) Label() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}

// PlaceholderLabel is shown for team ids missing from the loaded team set.
func PlaceholderLabel(id int) string {
	return fmt.Sprintf("T%d", id)
}

// Index maps team ids to teams for quick lookups.
type Index map[int]Team

// NewIndex builds an Index from a team slice. Later duplicates win.
func NewIndex(items []Team) Index {
	idx := make(Index, len(items))
	for _, t := range items {
		idx[t.TeamID] = t
	}
	return idx
}

// Name resolves a team id to its display name, falling back to a placeholder.
func (idx Index) Name(id int) string {
	if t, ok := idx[id]; ok && t.Name != "" {
		return t.Name
	}
	return PlaceholderLabel(id)
}

// IDs returns the team ids in input order.
func IDs(items []Team) []int {
	ids := make([]int, 0, len(items))
	for _, t := range items {
		ids = append(ids, t.TeamID)
	}
	return ids
}

// Venue is a playing site; the scheduling service scopes venues by sport and school.
type Venue struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	SchoolID int    `json:"schoolId,omitempty"`
}
