package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cadence/pkg/types"
)

func TestDailyBody(t *testing.T) {
	r := &types.DailyReport{
		PeriodStart:   "2026-08-30T00:00:00Z",
		PeriodEnd:     "2026-08-31T00:00:00Z",
		TotalSessions: 3,
		Breakdown: types.PriorityBreakdown{
			PercentageOfEffort: map[string]float64{"P0": 60, "TOOLING": 40, "META": 0},
			ByPriorityName: []types.PriorityItem{
				{Name: "P0: billing migration", Turns: 12, Pct: 60},
				{Name: "TOOLING: CI speed", Turns: 8, Pct: 40},
			},
			TotalUserTurns: 20,
		},
		Projects: []types.ProjectSummary{
			{
				Project:   "code/api",
				Chars:     1500,
				Summaries: []string{"- migrated billing to the new API (P0)"},
				Commits:   []string{"ab12cd3 fix billing retries"},
			},
		},
		Neglected: []string{"P2: Documentation refresh"},
	}

	body := DailyBody(r)

	assert.Contains(t, body, "# Daily Report: 2026-08-30")
	assert.Contains(t, body, "**NEGLECTED**: P2: Documentation refresh")
	assert.Contains(t, body, "- **P0**: 60.0%")
	assert.Contains(t, body, "*20 turns across 3 sessions*")
	assert.Contains(t, body, "60.0% — P0: billing migration")
	assert.Contains(t, body, "### code/api (1500 chars)")
	assert.Contains(t, body, "- commit ab12cd3 fix billing retries")

	// Zero-percent levels are omitted
	assert.NotContains(t, body, "**META**")

	// Neglected section leads
	assert.Less(t, strings.Index(body, "NEGLECTED"), strings.Index(body, "Priority Breakdown"))
}

func TestDailyBody_PctSortedDescending(t *testing.T) {
	r := &types.DailyReport{
		PeriodStart: "2026-08-30T00:00:00Z",
		Breakdown: types.PriorityBreakdown{
			PercentageOfEffort: map[string]float64{"META": 10, "P0": 70, "TOOLING": 20},
		},
	}

	body := DailyBody(r)
	p0 := strings.Index(body, "**P0**")
	tooling := strings.Index(body, "**TOOLING**")
	meta := strings.Index(body, "**META**")
	require.True(t, p0 >= 0 && tooling >= 0 && meta >= 0)
	assert.Less(t, p0, tooling)
	assert.Less(t, tooling, meta)
}

func TestWeeklyBody(t *testing.T) {
	r := &types.WeeklyReport{
		PeriodStart: "2026-08-24",
		PeriodEnd:   "2026-08-30",
		DaysCovered: 7,
		Breakdown: types.PriorityBreakdown{
			PercentageOfEffort: map[string]float64{"P0": 55.5, "P1": 44.5},
			ByPriorityName: []types.PriorityItem{
				{Name: "P0: billing migration", Pct: 55.5},
			},
			TotalUserTurns: 200,
		},
		DailyTrend: []types.DailyTrendEntry{
			{Date: "2026-08-24", Pct: map[string]float64{"P0": 80}, TotalTurns: 40},
		},
		TopProjects: []types.ProjectSummary{
			{Project: "code/api", Chars: 9000},
		},
	}

	body := WeeklyBody(r)

	assert.Contains(t, body, "# Weekly Summary: 2026-08-24 to 2026-08-30")
	assert.Contains(t, body, "*7 days, 200 turns*")
	assert.Contains(t, body, "- 2026-08-24: top=P0 (80.0%), 40 turns")
	assert.Contains(t, body, "- 55.5% — P0: billing migration")
	assert.Contains(t, body, "- code/api: 9000 chars")
}

func TestTopOfDay(t *testing.T) {
	name, pct := topOfDay(map[string]float64{"P0": 30, "P1": 50, "META": 20})
	assert.Equal(t, "P1", name)
	assert.Equal(t, 50.0, pct)

	name, pct = topOfDay(nil)
	assert.Equal(t, "?", name)
	assert.Zero(t, pct)
}
