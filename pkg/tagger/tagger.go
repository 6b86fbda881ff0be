// Package tagger classifies transcript chunks against the priority taxonomy
// and enforces exact turn accounting on the classifier's output.
package tagger

import (
	"context"

	"github.com/entrhq/cadence/pkg/logging"
	"github.com/entrhq/cadence/pkg/oracle"
	"github.com/entrhq/cadence/pkg/types"
)

// Tagger wraps the classification oracle with sum validation and repair.
type Tagger struct {
	classifier oracle.Classifier
	log        *logging.Logger
}

// New creates a tagger over the given classifier.
func New(classifier oracle.Classifier, log *logging.Logger) *Tagger {
	return &Tagger{classifier: classifier, log: log}
}

// Tag classifies one chunk and returns a breakdown whose turn total equals
// the chunk's user-turn count exactly.
//
// The classifier is probabilistic and its output format unreliable, so the
// contract is enforced locally:
//   - an undercounting or empty response has the shortfall assigned to the
//     UNCLEAR catch-all label
//   - an overcounting response is clamped by reducing the largest labels
//     until the sum matches
//
// Both repairs are logged and recoverable. Only a classifier transport
// error propagates, aborting the run.
func (t *Tagger) Tag(ctx context.Context, chunk *types.Chunk, taxonomy []string) (types.Breakdown, error) {
	wantTurns := chunk.UserTurns()
	wantChars := chunk.UserChars()

	counts, err := t.classifier.Classify(ctx, chunk.Text(), taxonomy)
	if err != nil {
		return nil, err
	}

	breakdown := make(types.Breakdown)
	for _, c := range counts {
		breakdown.Add(c.Label, c.Turns, c.Chars)
	}

	t.repair(breakdown, wantTurns, wantChars)
	return breakdown, nil
}

// repair adjusts breakdown in place until its turn total equals wantTurns.
func (t *Tagger) repair(breakdown types.Breakdown, wantTurns, wantChars int) {
	got := breakdown.TotalTurns()

	switch {
	case got < wantTurns:
		missing := wantTurns - got
		missingChars := wantChars - breakdown.TotalChars()
		if missingChars < 0 {
			missingChars = 0
		}
		breakdown.Add(oracle.CatchAllLabel, missing, missingChars)
		if t.log != nil && got > 0 {
			t.log.Warnf("classifier undercounted: %d of %d turns unaccounted, assigned to %s",
				missing, wantTurns, oracle.CatchAllLabel)
		}

	case got > wantTurns:
		t.clamp(breakdown, got-wantTurns)
		if t.log != nil {
			t.log.Warnf("classifier overcounted: removed %d excess turns from largest labels", got-wantTurns)
		}
	}

	// Drop labels the repair emptied out
	for name, l := range breakdown {
		if l.Turns == 0 && l.Chars == 0 {
			delete(breakdown, name)
		}
	}
}

// clamp removes excess turns one at a time from the currently largest
// label, so small (likely precise) assignments survive. Ties break by name
// ascending for determinism.
func (t *Tagger) clamp(breakdown types.Breakdown, excess int) {
	labels := make([]*types.Label, 0, len(breakdown))
	for _, l := range breakdown {
		labels = append(labels, l)
	}

	for ; excess > 0; excess-- {
		var biggest *types.Label
		for _, l := range labels {
			if l.Turns == 0 {
				continue
			}
			if biggest == nil || l.Turns > biggest.Turns ||
				(l.Turns == biggest.Turns && l.Name < biggest.Name) {
				biggest = l
			}
		}
		if biggest == nil {
			return
		}
		biggest.Turns--
	}
}
