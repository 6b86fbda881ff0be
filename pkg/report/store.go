// Package report persists and renders the aggregated digest reports.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/cadence/pkg/types"
)

const dateLayout = "2006-01-02"

// Store reads and writes report files under the configured reports dir.
// Daily files are immutable once written; the hourly timeseries is
// append-only.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// SaveDaily writes the daily report to daily/<date>.json. The write is
// atomic (temp file + rename) so an aborted run never leaves a partial
// report behind.
func (s *Store) SaveDaily(r *types.DailyReport, date time.Time) (string, error) {
	return s.save(filepath.Join("daily", date.Format(dateLayout)+".json"), r)
}

// SaveWeekly writes the weekly report to weekly/<date>.json.
func (s *Store) SaveWeekly(r *types.WeeklyReport, date time.Time) (string, error) {
	return s.save(filepath.Join("weekly", date.Format(dateLayout)+".json"), r)
}

func (s *Store) save(rel string, v interface{}) (string, error) {
	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize report: %w", err)
	}
	return path, nil
}

// AppendHourly appends the report's hourly rows to hourly/timeseries.jsonl,
// one line per hour with the date attached. The file accumulates across
// runs and feeds the weekly time-series charts.
func (s *Store) AppendHourly(r *types.DailyReport, date time.Time) error {
	if len(r.Hourly) == 0 {
		return nil
	}

	dir := filepath.Join(s.root, "hourly")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create hourly dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "timeseries.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open hourly timeseries: %w", err)
	}
	defer f.Close()

	dateStr := date.Format(dateLayout)
	enc := json.NewEncoder(f)
	for _, entry := range r.Hourly {
		row := hourlyRow{Date: dateStr, Hour: entry.Hour, Priorities: entry.Priorities}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to append hourly row: %w", err)
		}
	}
	return nil
}

type hourlyRow struct {
	Date       string         `json:"date"`
	Hour       int            `json:"hour"`
	Priorities map[string]int `json:"priorities"`
}

// LoadDailies returns the daily reports from the past N days, oldest first,
// each tagged with its calendar date from the filename. Files that fail to
// parse are skipped, not fatal: one corrupt day should not sink the week.
func (s *Store) LoadDailies(days int, now time.Time) ([]types.DailyReport, error) {
	dir := filepath.Join(s.root, "daily")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read daily reports dir: %w", err)
	}

	cutoff := now.AddDate(0, 0, -days)
	var reports []types.DailyReport

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		date, err := time.Parse(dateLayout, strings.TrimSuffix(name, ".json"))
		if err != nil || date.Before(cutoff) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var r types.DailyReport
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		r.Date = date.Format(dateLayout)
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Date < reports[j].Date })
	return reports, nil
}
