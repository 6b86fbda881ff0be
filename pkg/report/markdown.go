package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/cadence/pkg/types"
)

// DailyBody renders the daily report as the markdown email body.
func DailyBody(r *types.DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report: %s\n\n", r.PeriodStart[:10])

	writeNeglected(&b, r.Neglected)

	b.WriteString("## Priority Breakdown (by turns)\n")
	writePctLines(&b, r.Breakdown.PercentageOfEffort)

	fmt.Fprintf(&b, "\n*%d turns across %d sessions*\n\n", r.Breakdown.TotalUserTurns, r.TotalSessions)

	b.WriteString("## Top Priority Items\n")
	for i, item := range r.Breakdown.ByPriorityName {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %.1f%% — %s\n", item.Pct, item.Name)
	}

	b.WriteString("\n---\n\n## Projects\n")
	for i, proj := range r.Projects {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "\n### %s (%d chars)\n", proj.Project, proj.Chars)
		for j, summary := range proj.Summaries {
			if j >= 2 {
				break
			}
			b.WriteString(summary)
			b.WriteString("\n")
		}
		for _, commit := range proj.Commits {
			fmt.Fprintf(&b, "- commit %s\n", commit)
		}
	}

	return b.String()
}

// WeeklyBody renders the weekly summary as the markdown email body.
func WeeklyBody(r *types.WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Summary: %s to %s\n", r.PeriodStart, r.PeriodEnd)
	fmt.Fprintf(&b, "*%d days, %d turns*\n\n", r.DaysCovered, r.Breakdown.TotalUserTurns)

	writeNeglected(&b, r.Neglected)

	b.WriteString("## Overall Priority Breakdown (by turns)\n")
	writePctLines(&b, r.Breakdown.PercentageOfEffort)

	b.WriteString("\n## Daily Trend\n")
	for _, day := range r.DailyTrend {
		top, pct := topOfDay(day.Pct)
		fmt.Fprintf(&b, "- %s: top=%s (%.1f%%), %d turns\n", day.Date, top, pct, day.TotalTurns)
	}

	b.WriteString("\n## Top Priority Items\n")
	for i, item := range r.Breakdown.ByPriorityName {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %.1f%% — %s\n", item.Pct, item.Name)
	}

	b.WriteString("\n## Top Projects\n")
	for i, proj := range r.TopProjects {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d chars\n", proj.Project, proj.Chars)
	}

	return b.String()
}

// writeNeglected lists neglected priorities at the top of the body, where
// they are hardest to ignore.
func writeNeglected(b *strings.Builder, neglected []string) {
	if len(neglected) == 0 {
		return
	}
	b.WriteString("## Neglected Priorities\n")
	for _, name := range neglected {
		fmt.Fprintf(b, "- **NEGLECTED**: %s — no activity this period\n", name)
	}
	b.WriteString("\n")
}

// writePctLines writes percentage lines sorted descending, zero entries
// omitted. Ties order by name for stable output.
func writePctLines(b *strings.Builder, pct map[string]float64) {
	type row struct {
		name string
		pct  float64
	}
	rows := make([]row, 0, len(pct))
	for name, v := range pct {
		if v > 0 {
			rows = append(rows, row{name, v})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].pct != rows[j].pct {
			return rows[i].pct > rows[j].pct
		}
		return rows[i].name < rows[j].name
	})
	for _, r := range rows {
		fmt.Fprintf(b, "- **%s**: %.1f%%\n", r.name, r.pct)
	}
}

func topOfDay(pct map[string]float64) (string, float64) {
	top, best := "?", 0.0
	names := make([]string, 0, len(pct))
	for name := range pct {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if pct[name] > best {
			top, best = name, pct[name]
		}
	}
	return top, best
}
