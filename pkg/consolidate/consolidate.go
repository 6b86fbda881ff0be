// Package consolidate merges independently classified breakdowns into one
// canonical breakdown, reconciling label-name drift via the grouping oracle.
//
// Unlike tagging, the counts here are exact integers under full local
// control, so turn conservation is verified as a hard invariant: a
// post-grouping mismatch indicates a consolidation bug and fails the run
// rather than being silently corrected.
package consolidate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/entrhq/cadence/pkg/logging"
	"github.com/entrhq/cadence/pkg/oracle"
	"github.com/entrhq/cadence/pkg/types"
)

// ErrTurnMismatch reports a post-grouping turn total that differs from the
// pre-grouping total. The run must abort without persisting anything.
var ErrTurnMismatch = errors.New("consolidation changed the total turn count")

// smallSetThreshold skips the grouping oracle for small label sets: with
// this few names there is nothing worth deduplicating and the oracle call
// costs more than it saves.
const smallSetThreshold = 5

// Consolidator merges breakdowns across chunks or across days. The
// granularity of the inputs is the caller's concern; the logic is identical.
type Consolidator struct {
	grouper oracle.Grouper
	log     *logging.Logger
}

// New creates a consolidator over the given grouping oracle.
func New(grouper oracle.Grouper, log *logging.Logger) *Consolidator {
	return &Consolidator{grouper: grouper, log: log}
}

// Consolidate merges the given breakdowns into one canonical breakdown.
//
// Names the oracle groups together are summed under a canonical name: the
// variant with the most turns, ties broken by name ascending. Consolidating
// an already-canonical breakdown (all names distinct, oracle returns
// singletons) yields the same breakdown.
func (c *Consolidator) Consolidate(ctx context.Context, breakdowns ...types.Breakdown) (types.Breakdown, error) {
	merged := make(types.Breakdown)
	for _, b := range breakdowns {
		merged.Merge(b)
	}

	totalBefore := merged.TotalTurns()
	names := merged.Names()

	if len(names) <= smallSetThreshold {
		return merged, nil
	}

	groups, err := c.grouper.Group(ctx, names)
	if err != nil {
		return nil, err
	}
	groups = repairPartition(names, groups)

	out := make(types.Breakdown)
	for _, group := range groups {
		canonical := canonicalName(group, merged)
		for _, name := range group {
			l := merged[name]
			out.Add(canonical, l.Turns, l.Chars)
		}
	}

	if got := out.TotalTurns(); got != totalBefore {
		return nil, fmt.Errorf("%w: %d before grouping, %d after", ErrTurnMismatch, totalBefore, got)
	}

	if c.log != nil && len(out) < len(merged) {
		c.log.Infof("consolidated %d labels into %d", len(merged), len(out))
	}
	return out, nil
}

// repairPartition coerces the oracle's output into a valid partition of
// names: every input name in exactly one group. Unknown names are dropped,
// duplicates keep their first occurrence, and names the oracle missed
// become singleton groups in input order.
func repairPartition(names []string, groups [][]string) [][]string {
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	seen := make(map[string]bool, len(names))
	var repaired [][]string
	for _, group := range groups {
		var kept []string
		for _, name := range group {
			if known[name] && !seen[name] {
				seen[name] = true
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			repaired = append(repaired, kept)
		}
	}

	for _, name := range names {
		if !seen[name] {
			repaired = append(repaired, []string{name})
		}
	}
	return repaired
}

// canonicalName picks the group member with the most turns as the group's
// merged name, tie-break by name ascending for determinism.
func canonicalName(group []string, merged types.Breakdown) string {
	sorted := make([]string, len(group))
	copy(sorted, group)
	sort.Strings(sorted)

	best := sorted[0]
	for _, name := range sorted[1:] {
		if merged[name].Turns > merged[best].Turns {
			best = name
		}
	}
	return best
}
