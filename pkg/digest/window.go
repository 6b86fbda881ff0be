package digest

import (
	"fmt"
	"time"
)

// WindowHours is the trailing window ending at now.
func WindowHours(now time.Time, hours int) (time.Time, time.Time) {
	end := now.UTC()
	return end.Add(-time.Duration(hours) * time.Hour), end
}

// WindowForDate is the calendar-day window for date (YYYY-MM-DD): local
// midnight to the next local midnight in loc, half-open. AddDate keeps the
// window correct across DST transitions.
func WindowForDate(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return start, start.AddDate(0, 0, 1), nil
}
