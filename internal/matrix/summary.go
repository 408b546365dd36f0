package matrix

// TeamSummary is the per-team totals column shown beside each matrix row.
type TeamSummary struct {
	TeamID   int    `json:"teamId"`
	TeamName string `json:"teamName"`
	Home     int    `json:"home"`
	Away     int    `json:"away"`
	Byes     int    `json:"byes"`
}

// Summarize counts home games, away games, and empty weeks per row.
func Summarize(m Matrix) []TeamSummary {
	out := make([]TeamSummary, 0, len(m.Rows))
	for _, row := range m.Rows {
		s := TeamSummary{TeamID: row.TeamID, TeamName: row.TeamName}
		for _, w := range m.Weeks {
			cells := row.Cells[w.Key]
			if len(cells) == 0 {
				s.Byes++
				continue
			}
			for _, c := range cells {
				if c.IsHome {
					s.Home++
				} else {
					s.Away++
				}
			}
		}
		out = append(out, s)
	}
	return out
}
