package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowForDate(t *testing.T) {
	pacific, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	start, end, err := WindowForDate("2026-01-15", pacific)
	require.NoError(t, err)

	// Local midnight to local midnight
	assert.Equal(t, "2026-01-15T00:00:00-08:00", start.Format(time.RFC3339))
	assert.Equal(t, "2026-01-16T00:00:00-08:00", end.Format(time.RFC3339))

	// A message at 23:30 local on the 15th is inside the window even
	// though it is already the 16th in UTC
	late := time.Date(2026, 1, 16, 7, 30, 0, 0, time.UTC)
	assert.False(t, late.Before(start))
	assert.True(t, late.Before(end))
}

func TestWindowForDate_UTC(t *testing.T) {
	start, end, err := WindowForDate("2026-08-30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, "2026-08-30T00:00:00Z", start.Format(time.RFC3339))
}

func TestWindowForDate_Invalid(t *testing.T) {
	_, _, err := WindowForDate("30/08/2026", time.UTC)
	assert.Error(t, err)

	_, _, err = WindowForDate("", time.UTC)
	assert.Error(t, err)
}

func TestWindowHours(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	start, end := WindowHours(now, 24)

	assert.Equal(t, now, end)
	assert.Equal(t, now.Add(-24*time.Hour), start)
}
