package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/cadence/pkg/aggregate"
	"github.com/entrhq/cadence/pkg/charts"
	"github.com/entrhq/cadence/pkg/email"
	"github.com/entrhq/cadence/pkg/priorities"
	"github.com/entrhq/cadence/pkg/report"
	"github.com/entrhq/cadence/pkg/types"
)

// Weekly folds the last days of saved daily reports into a weekly summary,
// re-consolidating priority names across days. The loaded dailies are
// returned alongside for chart rendering.
func (r *Runner) Weekly(ctx context.Context, days int, now time.Time) (*types.WeeklyReport, []types.DailyReport, error) {
	dailies, err := r.store.LoadDailies(days, now)
	if err != nil {
		return nil, nil, err
	}
	if len(dailies) == 0 {
		return nil, nil, fmt.Errorf("no daily reports found in the last %d days; run the daily report first", days)
	}
	r.log.Infof("aggregating %d daily reports", len(dailies))

	pri, err := priorities.Load(r.cfg.PrioritiesFile)
	if err != nil {
		return nil, nil, err
	}

	breakdowns := make([]types.Breakdown, 0, len(dailies))
	for _, d := range dailies {
		breakdowns = append(breakdowns, aggregate.BreakdownFromItems(d.Breakdown.ByPriorityName))
	}
	consolidated, err := r.consolidator.Consolidate(ctx, breakdowns...)
	if err != nil {
		return nil, nil, err
	}

	weekly := aggregate.BuildWeekly(dailies, consolidated, pri.Taxonomy)
	return &weekly, dailies, nil
}

// SaveWeekly persists the weekly summary JSON.
func (r *Runner) SaveWeekly(rep *types.WeeklyReport, date time.Time) (string, error) {
	return r.store.SaveWeekly(rep, date)
}

// EmailWeekly renders and delivers the weekly summary with its charts
// embedded inline.
func (r *Runner) EmailWeekly(ctx context.Context, rep *types.WeeklyReport, dailies []types.DailyReport, to string) error {
	images, err := charts.All(dailies, r.cfg.Location())
	if err != nil {
		r.log.Warnf("chart rendering failed, sending without charts: %v", err)
		images = nil
	}

	html, err := report.RenderHTML(report.WeeklyBody(rep), images)
	if err != nil {
		return err
	}

	sender, err := email.NewSender(r.cfg)
	if err != nil {
		return err
	}
	return sender.Send(ctx, &email.Message{
		To:      to,
		Subject: fmt.Sprintf("Weekly Cadence Summary: %s to %s", rep.PeriodStart, rep.PeriodEnd),
		HTML:    html,
		Images:  images,
	})
}
