package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cadence/pkg/types"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func dailyWithHours(date string, hours map[int]map[string]int) types.DailyReport {
	levelTurns := make(map[string]int)
	var hourly []types.HourlyEntry
	for h, priorities := range hours {
		hourly = append(hourly, types.HourlyEntry{Hour: h, Priorities: priorities})
		for p, n := range priorities {
			levelTurns[p] += n
		}
	}
	return types.DailyReport{
		Date:      date,
		Hourly:    hourly,
		Breakdown: types.PriorityBreakdown{ByUserTurns: levelTurns},
	}
}

func sampleWeek() []types.DailyReport {
	return []types.DailyReport{
		dailyWithHours("2026-08-24", map[int]map[string]int{
			9:  {"P0": 5, "META": 1},
			14: {"P0": 3},
		}),
		dailyWithHours("2026-08-25", map[int]map[string]int{
			10: {"TOOLING": 4},
			22: {"P1": 2},
		}),
	}
}

func TestHourOfDay(t *testing.T) {
	png, err := HourOfDay(sampleWeek(), time.UTC)
	require.NoError(t, err)
	require.NotNil(t, png)
	assert.Equal(t, pngHeader, png[:4])
}

func TestHourOfDay_NoData(t *testing.T) {
	png, err := HourOfDay(nil, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, png)

	png, err = HourOfDay([]types.DailyReport{{Date: "2026-08-24"}}, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestByDay(t *testing.T) {
	png, err := ByDay(sampleWeek())
	require.NoError(t, err)
	require.NotNil(t, png)
	assert.Equal(t, pngHeader, png[:4])
}

func TestByDay_NoData(t *testing.T) {
	png, err := ByDay([]types.DailyReport{{Date: "2026-08-24"}})
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestTimeSeries(t *testing.T) {
	png, err := TimeSeries(sampleWeek(), time.UTC)
	require.NoError(t, err)
	require.NotNil(t, png)
	assert.Equal(t, pngHeader, png[:4])
}

func TestTimeSeries_SinglePointSkipped(t *testing.T) {
	dailies := []types.DailyReport{
		dailyWithHours("2026-08-24", map[int]map[string]int{9: {"P0": 5}}),
	}
	png, err := TimeSeries(dailies, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestAll(t *testing.T) {
	out, err := All(sampleWeek(), time.UTC)
	require.NoError(t, err)

	require.Contains(t, out, "hourly")
	require.Contains(t, out, "daily")
	require.Contains(t, out, "timeseries")
	for name, png := range out {
		assert.Equal(t, pngHeader, png[:4], name)
	}
}

func TestAll_Empty(t *testing.T) {
	out, err := All(nil, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUTCHourToLocal(t *testing.T) {
	pacific, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// PDT in August: UTC-7
	assert.Equal(t, 2, utcHourToLocal(9, "2026-08-24", pacific))
	// Wraps across midnight
	assert.Equal(t, 19, utcHourToLocal(2, "2026-08-24", pacific))
}

func TestOrderedPriorities(t *testing.T) {
	present := map[string]bool{
		"META":      true,
		"P0":        true,
		"CUSTOM: x": true,
		"UNCLEAR":   true,
	}
	assert.Equal(t, []string{"P0", "META", "UNCLEAR", "CUSTOM: x"}, orderedPriorities(present))
}
