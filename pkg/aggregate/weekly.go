package aggregate

import (
	"sort"

	"github.com/entrhq/cadence/pkg/types"
)

// topPriorityNames caps the weekly ranked name list.
const topPriorityNames = 20

// topProjects caps the weekly project list.
const topProjects = 10

// BreakdownFromItems reconstructs a Breakdown from a report's ranked name
// list, the pre-consolidated per-day form fed into cross-day consolidation.
func BreakdownFromItems(items []types.PriorityItem) types.Breakdown {
	b := make(types.Breakdown, len(items))
	for _, item := range items {
		b.Add(item.Name, item.Turns, item.Chars)
	}
	return b
}

// BuildWeekly folds N daily reports and their cross-day consolidated
// breakdown into a weekly report. Coarse level maps are exact sums of the
// daily maps, so the weekly turn total equals the sum of daily totals.
func BuildWeekly(dailies []types.DailyReport, consolidated types.Breakdown, taxonomy []string) types.WeeklyReport {
	byTurns := make(map[string]int)
	byChars := make(map[string]int)
	byChunks := make(map[string]int)
	grandTurns := 0
	grandChars := 0

	trend := make([]types.DailyTrendEntry, 0, len(dailies))
	projectChars := make(map[string]int)
	projectTurns := make(map[string]int)

	for _, d := range dailies {
		bd := d.Breakdown
		for level, v := range bd.ByUserTurns {
			byTurns[level] += v
		}
		for level, v := range bd.ByUserChars {
			byChars[level] += v
		}
		for level, v := range bd.ByChunkCount {
			byChunks[level] += v
		}
		grandTurns += bd.TotalUserTurns
		grandChars += bd.TotalUserChars

		trend = append(trend, types.DailyTrendEntry{
			Date:       d.Date,
			Pct:        bd.PercentageOfEffort,
			TotalTurns: bd.TotalUserTurns,
			TotalChars: bd.TotalUserChars,
		})

		for _, proj := range d.Projects {
			projectChars[proj.Project] += proj.Chars
			projectTurns[proj.Project] += proj.Turns
		}
	}

	pct := make(map[string]float64, len(byTurns))
	for level, turns := range byTurns {
		pct[level] = Percentage(turns, grandTurns)
	}

	items := TopItems(consolidated, grandTurns)
	if len(items) > topPriorityNames {
		items = items[:topPriorityNames]
	}

	report := types.WeeklyReport{
		DaysCovered: len(dailies),
		Breakdown: types.PriorityBreakdown{
			ByUserTurns:        byTurns,
			ByUserChars:        byChars,
			ByChunkCount:       byChunks,
			PercentageOfEffort: pct,
			ByPriorityName:     items,
			TotalUserTurns:     grandTurns,
			TotalUserChars:     grandChars,
		},
		DailyTrend:  trend,
		TopProjects: rankProjects(projectChars, projectTurns),
		Neglected:   Neglected(taxonomy, consolidated),
	}

	if len(dailies) > 0 {
		report.PeriodStart = dailies[0].Date
		report.PeriodEnd = dailies[len(dailies)-1].Date
	}
	return report
}

func rankProjects(chars, turns map[string]int) []types.ProjectSummary {
	projects := make([]types.ProjectSummary, 0, len(chars))
	for name, c := range chars {
		projects = append(projects, types.ProjectSummary{
			Project: name,
			Chars:   c,
			Turns:   turns[name],
		})
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Chars != projects[j].Chars {
			return projects[i].Chars > projects[j].Chars
		}
		return projects[i].Project < projects[j].Project
	})
	if len(projects) > topProjects {
		projects = projects[:topProjects]
	}
	return projects
}
