package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/matrix"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
)

const (
	teamWidth    = 16
	cellWidth    = 12
	summaryWidth = 9
	tagWidth     = 10
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	teamStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	statusStyles = map[games.Status]lipgloss.Style{
		games.StatusConfirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")),
		games.StatusConflict:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		games.StatusTentative: lipgloss.NewStyle().Foreground(lipgloss.Color("#F2C94C")),
		games.StatusCancelled: mutedStyle.Strikethrough(true),
	}
	violationStyles = map[constraints.ViolationType]lipgloss.Style{
		constraints.ViolationError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		constraints.ViolationWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F2C94C")),
		constraints.ViolationInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
	}
)

func renderMatrix(m matrix.Matrix, withSummary bool) string {
	if m.Empty() {
		return mutedStyle.Render("no games scheduled")
	}

	header := []string{headerStyle.Width(teamWidth).Render("Team")}
	for _, w := range m.Weeks {
		header = append(header, headerStyle.Width(cellWidth).Render(w.Label))
	}
	if withSummary {
		header = append(header, headerStyle.Width(summaryWidth).Render("H/A/Bye"))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	totals := map[int]matrix.TeamSummary{}
	if withSummary {
		for _, s := range matrix.Summarize(m) {
			totals[s.TeamID] = s
		}
	}

	for _, row := range m.Rows {
		cols := []string{teamStyle.Width(teamWidth).Render(truncate(row.TeamName, teamWidth-1))}
		for _, w := range m.Weeks {
			cols = append(cols, renderCells(row.Cells[w.Key]))
		}
		if withSummary {
			s := totals[row.TeamID]
			cols = append(cols, lipgloss.NewStyle().Width(summaryWidth).Render(fmt.Sprintf("%d/%d/%d", s.Home, s.Away, s.Byes)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderCells shows the first game of the week and counts the rest.
func renderCells(cells []matrix.Cell) string {
	if len(cells) == 0 {
		return mutedStyle.Width(cellWidth).Render("bye")
	}
	first := cells[0]
	prefix := "@ "
	if first.IsHome {
		prefix = "vs "
	}
	label := prefix + first.OpponentName
	if extra := len(cells) - 1; extra > 0 {
		suffix := fmt.Sprintf(" +%d", extra)
		label = truncate(label, cellWidth-1-len(suffix)) + suffix
	} else {
		label = truncate(label, cellWidth-1)
	}
	style, ok := statusStyles[first.Status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Width(cellWidth).Render(label)
}

func renderViolations(vs []constraints.Violation, stats reconcile.ViolationStats) string {
	lines := make([]string, 0, len(vs)*2+2)
	if len(vs) == 0 {
		lines = append(lines, mutedStyle.Render("no violations"))
	}
	for _, v := range vs {
		style, ok := violationStyles[v.Type]
		if !ok {
			style = lipgloss.NewStyle()
		}
		tag := style.Width(tagWidth).Render(strings.ToUpper(string(v.Type)))
		detail := v.Message
		if v.GameID != "" {
			detail += mutedStyle.Render(" (game " + v.GameID + ")")
		}
		if v.AutoFixable {
			detail += mutedStyle.Render(" [auto-fix " + v.ID + "]")
		}
		lines = append(lines, tag+detail)
		if v.Suggestion != "" {
			lines = append(lines, strings.Repeat(" ", tagWidth)+mutedStyle.Render(v.Suggestion))
		}
	}
	lines = append(lines, "", headerStyle.Render(fmt.Sprintf(
		"%d total: %d error, %d warning, %d info, %d auto-fixable",
		stats.Total, stats.Errors, stats.Warnings, stats.Info, stats.Fixable,
	)))
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
