// Package chunker splits session transcripts into size-bounded chunks
// along turn boundaries.
package chunker

import (
	"sort"

	"github.com/entrhq/cadence/pkg/types"
)

// Tokenizer estimates token counts for chunk text. Optional.
type Tokenizer interface {
	Count(text string) int
}

// Split divides turns into contiguous, non-overlapping chunks of at most
// maxChars characters each, never splitting a turn across two chunks.
// Concatenating the returned chunks' turns in order reproduces the input
// exactly. A single turn larger than maxChars forms its own one-turn chunk
// with no truncation.
func Split(turns []types.Turn, maxChars int, tok Tokenizer) []types.Chunk {
	if len(turns) == 0 {
		return nil
	}

	var chunks []types.Chunk
	var current []types.Turn
	size := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, finalize(current, tok))
		current = nil
		size = 0
	}

	for _, turn := range turns {
		n := len(turn.Text)
		if size+n > maxChars && len(current) > 0 {
			flush()
		}
		current = append(current, turn)
		size += n
	}
	flush()

	return chunks
}

// finalize computes derived chunk fields: the UTC hour of the median user
// turn, and the estimated token count when a tokenizer is available.
func finalize(turns []types.Turn, tok Tokenizer) types.Chunk {
	chunk := types.Chunk{Turns: turns, Hour: -1}

	var userHours []int
	for _, t := range turns {
		if t.Role == types.RoleUser && !t.Timestamp.IsZero() {
			userHours = append(userHours, t.Timestamp.UTC().Hour())
		}
	}
	if len(userHours) > 0 {
		sort.Ints(userHours)
		chunk.Hour = userHours[len(userHours)/2]
	}

	if tok != nil {
		chunk.Tokens = tok.Count(chunk.Text())
	}

	return chunk
}
