// Package charts renders the report's PNG charts for email embedding.
package charts

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/entrhq/cadence/pkg/types"
)

// Priority colors, consistent across all charts.
var colors = map[string]drawing.Color{
	"P0":           drawing.ColorFromHex("2563eb"),
	"P1":           drawing.ColorFromHex("7c3aed"),
	"P2":           drawing.ColorFromHex("a855f7"),
	"TOOLING":      drawing.ColorFromHex("059669"),
	"META":         drawing.ColorFromHex("6b7280"),
	"OFF-PRIORITY": drawing.ColorFromHex("dc2626"),
	"UNCLEAR":      drawing.ColorFromHex("d1d5db"),
}

// displayOrder lists priorities most important first.
var displayOrder = []string{"P0", "P1", "P2", "TOOLING", "META", "OFF-PRIORITY", "UNCLEAR"}

var fallbackColor = drawing.ColorFromHex("999999")

func color(priority string) drawing.Color {
	if c, ok := colors[priority]; ok {
		return c
	}
	return fallbackColor
}

// orderedPriorities returns the present priorities in display order,
// followed by any extras sorted ascending.
func orderedPriorities(present map[string]bool) []string {
	var ordered []string
	listed := make(map[string]bool)
	for _, p := range displayOrder {
		listed[p] = true
		if present[p] {
			ordered = append(ordered, p)
		}
	}
	var extras []string
	for p := range present {
		if !listed[p] {
			extras = append(extras, p)
		}
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}

// utcHourToLocal converts a UTC hour on the given date to the local hour.
func utcHourToLocal(hour int, date string, loc *time.Location) int {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return hour
	}
	utc := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return utc.In(loc).Hour()
}

// HourOfDay renders a stacked bar chart of turns by local hour of day,
// aggregated across the given daily reports. Returns nil when there is no
// hourly data.
func HourOfDay(dailies []types.DailyReport, loc *time.Location) ([]byte, error) {
	hourTotals := make(map[int]map[string]int)
	present := make(map[string]bool)

	for _, d := range dailies {
		if d.Date == "" {
			continue
		}
		for _, entry := range d.Hourly {
			local := utcHourToLocal(entry.Hour, d.Date, loc)
			bucket := hourTotals[local]
			if bucket == nil {
				bucket = make(map[string]int)
				hourTotals[local] = bucket
			}
			for p, turns := range entry.Priorities {
				bucket[p] += turns
				present[p] = true
			}
		}
	}
	if len(hourTotals) == 0 {
		return nil, nil
	}

	priorities := orderedPriorities(present)

	var bars []chart.StackedBar
	for hour := 0; hour < 24; hour++ {
		bucket := hourTotals[hour]
		values := stackedValues(bucket, priorities)
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name:   fmt.Sprintf("%02d", hour),
			Width:  30,
			Values: values,
		})
	}

	sbc := chart.StackedBarChart{
		Title:      fmt.Sprintf("Activity by Hour of Day (%s)", loc.String()),
		Width:      1000,
		Height:     400,
		BarSpacing: 6,
		XAxis:      chart.Style{},
		YAxis:      chart.Style{},
		Bars:       bars,
	}

	return render(func(buf *bytes.Buffer) error { return sbc.Render(chart.PNG, buf) })
}

// ByDay renders a stacked bar chart of turns by day. Returns nil when no
// day has any turns.
func ByDay(dailies []types.DailyReport) ([]byte, error) {
	present := make(map[string]bool)
	type dayTurns struct {
		label string
		turns map[string]int
	}
	var days []dayTurns

	for _, d := range dailies {
		turns := d.Breakdown.ByUserTurns
		if len(turns) == 0 {
			continue
		}
		for p := range turns {
			present[p] = true
		}
		days = append(days, dayTurns{label: dayLabel(d.Date), turns: turns})
	}
	if len(days) == 0 {
		return nil, nil
	}

	priorities := orderedPriorities(present)

	var bars []chart.StackedBar
	for _, day := range days {
		values := stackedValues(day.turns, priorities)
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name:   day.label,
			Width:  60,
			Values: values,
		})
	}

	sbc := chart.StackedBarChart{
		Title:      "Activity by Day",
		Width:      1000,
		Height:     400,
		BarSpacing: 12,
		XAxis:      chart.Style{},
		YAxis:      chart.Style{},
		Bars:       bars,
	}

	return render(func(buf *bytes.Buffer) error { return sbc.Render(chart.PNG, buf) })
}

// TimeSeries renders turns per hour across the whole window as overlaid
// filled series, one per priority. Returns nil with fewer than two time
// points, which is below what a continuous series can draw.
func TimeSeries(dailies []types.DailyReport, loc *time.Location) ([]byte, error) {
	present := make(map[string]bool)
	type point struct {
		at         time.Time
		priorities map[string]int
	}
	var points []point

	for _, d := range dailies {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		for _, entry := range d.Hourly {
			at := time.Date(day.Year(), day.Month(), day.Day(), entry.Hour, 0, 0, 0, time.UTC).In(loc)
			for p := range entry.Priorities {
				present[p] = true
			}
			points = append(points, point{at: at, priorities: entry.Priorities})
		}
	}
	if len(points) < 2 {
		return nil, nil
	}

	sort.Slice(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })
	priorities := orderedPriorities(present)

	var series []chart.Series
	for _, p := range priorities {
		xs := make([]time.Time, len(points))
		ys := make([]float64, len(points))
		for i, pt := range points {
			xs[i] = pt.at
			ys[i] = float64(pt.priorities[p])
		}
		c := color(p)
		series = append(series, chart.TimeSeries{
			Name:    p,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				FillColor:   c.WithAlpha(80),
			},
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Activity Over Time (%s)", loc.String()),
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Mon 01-02"),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return render(func(buf *bytes.Buffer) error { return graph.Render(chart.PNG, buf) })
}

// All generates every chart that has data, keyed by chart name. The keys
// double as email content IDs.
func All(dailies []types.DailyReport, loc *time.Location) (map[string][]byte, error) {
	out := make(map[string][]byte)

	hourly, err := HourOfDay(dailies, loc)
	if err != nil {
		return nil, fmt.Errorf("hourly chart: %w", err)
	}
	if hourly != nil {
		out["hourly"] = hourly
	}

	daily, err := ByDay(dailies)
	if err != nil {
		return nil, fmt.Errorf("daily chart: %w", err)
	}
	if daily != nil {
		out["daily"] = daily
	}

	series, err := TimeSeries(dailies, loc)
	if err != nil {
		return nil, fmt.Errorf("timeseries chart: %w", err)
	}
	if series != nil {
		out["timeseries"] = series
	}

	return out, nil
}

// stackedValues builds the per-priority values of one stacked bar,
// skipping zero segments which the renderer rejects.
func stackedValues(bucket map[string]int, priorities []string) []chart.Value {
	var values []chart.Value
	for _, p := range priorities {
		turns := bucket[p]
		if turns <= 0 {
			continue
		}
		c := color(p)
		values = append(values, chart.Value{
			Value: float64(turns),
			Label: p,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	return values
}

// dayLabel formats a date as "Mon 02-13".
func dayLabel(date string) string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return day.Format("Mon 01-02")
}

func render(fn func(*bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
