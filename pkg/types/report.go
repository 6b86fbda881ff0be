package types

// PriorityItem is one row of the ranked per-name breakdown.
type PriorityItem struct {
	Name  string  `json:"name"`
	Turns int     `json:"turns"`
	Chars int     `json:"chars"`
	Pct   float64 `json:"pct"`
}

// PriorityBreakdown is the aggregated classification section of a report.
// Coarse maps are keyed by priority level (P0, TOOLING, ...); ByPriorityName
// carries the full consolidated label names.
type PriorityBreakdown struct {
	ByUserTurns        map[string]int     `json:"by_user_turns"`
	ByUserChars        map[string]int     `json:"by_user_chars"`
	ByChunkCount       map[string]int     `json:"by_chunk_count"`
	PercentageOfEffort map[string]float64 `json:"percentage_of_effort"`
	ByPriorityName     []PriorityItem     `json:"by_priority_name"`
	TotalUserTurns     int                `json:"total_user_turns"`
	TotalUserChars     int                `json:"total_user_chars"`
}

// HourlyEntry records per-priority turn counts for one UTC hour.
type HourlyEntry struct {
	Hour       int            `json:"hour"`
	Priorities map[string]int `json:"priorities"`
}

// ProjectSummary is the per-project section of a daily report.
type ProjectSummary struct {
	Project   string   `json:"project"`
	Chars     int      `json:"chars"`
	Turns     int      `json:"turns"`
	Sessions  int      `json:"session_count"`
	Summaries []string `json:"summaries,omitempty"`
	Commits   []string `json:"commits,omitempty"`
}

// DailyReport is the persisted per-day document. Written once, never mutated.
type DailyReport struct {
	PeriodStart   string            `json:"period_start"`
	PeriodEnd     string            `json:"period_end"`
	TotalSessions int               `json:"total_sessions_with_activity"`
	Breakdown     PriorityBreakdown `json:"priority_breakdown"`
	Hourly        []HourlyEntry     `json:"hourly_breakdown"`
	Projects      []ProjectSummary  `json:"projects"`
	Neglected     []string          `json:"neglected_priorities,omitempty"`

	// Date is the report's calendar date (set from the filename when
	// loaded back for weekly aggregation; not serialized).
	Date string `json:"-"`
}

// DailyTrendEntry is one day's contribution to the weekly trend table.
type DailyTrendEntry struct {
	Date       string             `json:"date"`
	Pct        map[string]float64 `json:"pct"`
	TotalTurns int                `json:"total_turns"`
	TotalChars int                `json:"total_chars"`
}

// WeeklyReport aggregates N daily reports, with the breakdown
// re-consolidated across days under the same turn-sum invariant.
type WeeklyReport struct {
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	DaysCovered int               `json:"days_covered"`
	Breakdown   PriorityBreakdown `json:"priority_breakdown"`
	DailyTrend  []DailyTrendEntry `json:"daily_trend"`
	TopProjects []ProjectSummary  `json:"top_projects"`
	Neglected   []string          `json:"neglected_priorities,omitempty"`
}
