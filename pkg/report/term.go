package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/cadence/pkg/types"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")).MarginTop(1)
	neglectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	levelStyles = map[string]lipgloss.Style{
		"P0":           lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"P1":           lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		"P2":           lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"TOOLING":      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"META":         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"OFF-PRIORITY": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func levelStyle(level string) lipgloss.Style {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return dimStyle
}

// TermDaily renders a compact colorized daily summary for the terminal.
func TermDaily(r *types.DailyReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Daily Report: %s", r.PeriodStart[:10])))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d turns across %d sessions", r.Breakdown.TotalUserTurns, r.TotalSessions)))
	b.WriteString("\n")

	writeTermNeglected(&b, r.Neglected)
	writeTermItems(&b, r.Breakdown.ByPriorityName)

	return b.String()
}

// TermWeekly renders a compact colorized weekly summary for the terminal.
func TermWeekly(r *types.WeeklyReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Weekly Summary: %s to %s", r.PeriodStart, r.PeriodEnd)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d days, %d turns", r.DaysCovered, r.Breakdown.TotalUserTurns)))
	b.WriteString("\n")

	writeTermNeglected(&b, r.Neglected)
	writeTermItems(&b, r.Breakdown.ByPriorityName)

	return b.String()
}

func writeTermNeglected(b *strings.Builder, neglected []string) {
	if len(neglected) == 0 {
		return
	}
	b.WriteString(headerStyle.Render("Neglected Priorities"))
	b.WriteString("\n")
	for _, name := range neglected {
		b.WriteString(neglectedStyle.Render("  ! " + name))
		b.WriteString("\n")
	}
}

func writeTermItems(b *strings.Builder, items []types.PriorityItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString(headerStyle.Render("Top Priority Items"))
	b.WriteString("\n")
	for i, item := range items {
		if i >= 10 {
			break
		}
		style := levelStyle(types.LevelOf(item.Name))
		b.WriteString(fmt.Sprintf("  %5.1f%% %s\n", item.Pct, style.Render(item.Name)))
	}
}
