// Package aggregate turns tagged chunks and daily reports into the
// deterministic report structures: summed counts, percentages, rankings,
// hourly histograms, and neglected-priority detection.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/entrhq/cadence/pkg/types"
)

// ChunkTag is the classification result for one chunk, ready to aggregate.
type ChunkTag struct {
	Project   string
	Hour      int // UTC hour of the chunk's median user turn, -1 if unknown
	Breakdown types.Breakdown
}

// round1 rounds to one decimal place, the precision reports are rendered at.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage returns 100*part/total rounded to one decimal, or 0 for an
// empty window.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(100 * float64(part) / float64(total))
}

// TopItems ranks the breakdown's labels by percentage descending, ties
// broken by label name ascending for determinism.
func TopItems(b types.Breakdown, total int) []types.PriorityItem {
	items := make([]types.PriorityItem, 0, len(b))
	for _, l := range b {
		items = append(items, types.PriorityItem{
			Name:  l.Name,
			Turns: l.Turns,
			Chars: l.Chars,
			Pct:   Percentage(l.Turns, total),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Pct != items[j].Pct {
			return items[i].Pct > items[j].Pct
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// Neglected returns the taxonomy entries with zero turns in the breakdown,
// in taxonomy declaration order. A label counts toward an entry when its
// name equals the entry or carries it after the level prefix.
func Neglected(taxonomy []string, b types.Breakdown) []string {
	var neglected []string
	for _, entry := range taxonomy {
		if activeTurns(entry, b) == 0 {
			neglected = append(neglected, entry)
		}
	}
	return neglected
}

func activeTurns(entry string, b types.Breakdown) int {
	entryLower := strings.ToLower(strings.TrimSpace(entry))
	turns := 0
	for _, l := range b {
		nameLower := strings.ToLower(l.Name)
		if nameLower == entryLower || strings.Contains(nameLower, entryLower) {
			turns += l.Turns
		}
	}
	return turns
}

// BuildBreakdown assembles the report breakdown section from per-chunk tags
// and the consolidated cross-chunk breakdown. Coarse maps aggregate by
// priority level; the ranked name list uses the consolidated full names.
func BuildBreakdown(tags []ChunkTag, consolidated types.Breakdown) types.PriorityBreakdown {
	byTurns := make(map[string]int)
	byChars := make(map[string]int)
	byChunks := make(map[string]int)
	totalTurns := 0
	totalChars := 0

	for _, tag := range tags {
		levels := make(map[string]bool)
		for _, l := range tag.Breakdown {
			level := types.LevelOf(l.Name)
			byTurns[level] += l.Turns
			byChars[level] += l.Chars
			levels[level] = true
			totalTurns += l.Turns
			totalChars += l.Chars
		}
		for level := range levels {
			byChunks[level]++
		}
	}

	pct := make(map[string]float64, len(byTurns))
	for level, turns := range byTurns {
		pct[level] = Percentage(turns, totalTurns)
	}

	return types.PriorityBreakdown{
		ByUserTurns:        byTurns,
		ByUserChars:        byChars,
		ByChunkCount:       byChunks,
		PercentageOfEffort: pct,
		ByPriorityName:     TopItems(consolidated, totalTurns),
		TotalUserTurns:     totalTurns,
		TotalUserChars:     totalChars,
	}
}

// Hourly buckets per-level turn counts by the chunks' UTC hours. Chunks
// without a resolvable hour are omitted. Entries are sorted by hour.
func Hourly(tags []ChunkTag) []types.HourlyEntry {
	buckets := make(map[int]map[string]int)
	for _, tag := range tags {
		if tag.Hour < 0 || tag.Hour > 23 {
			continue
		}
		bucket := buckets[tag.Hour]
		if bucket == nil {
			bucket = make(map[string]int)
			buckets[tag.Hour] = bucket
		}
		for _, l := range tag.Breakdown {
			bucket[types.LevelOf(l.Name)] += l.Turns
		}
	}

	hours := make([]int, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	entries := make([]types.HourlyEntry, 0, len(hours))
	for _, h := range hours {
		entries = append(entries, types.HourlyEntry{Hour: h, Priorities: buckets[h]})
	}
	return entries
}
