// Package oracle defines the narrow boundary to the external generative
// classifier, plus the LLM-backed implementation of it.
//
// Classification is non-deterministic dispatch to an external service, so
// the deterministic arithmetic downstream (sum conservation, ranking,
// percentages) depends only on these interfaces and can be tested against
// fakes.
package oracle

import "context"

// LabelCount is one labeled segment of a classified chunk.
type LabelCount struct {
	Label string `json:"label"`
	Turns int    `json:"turns"`
	Chars int    `json:"chars"`
}

// Classifier assigns the turns of a chunk of conversation text to labels
// drawn from the taxonomy or the generic fallback categories.
//
// The output is treated as unreliable in format but not in intent: callers
// validate and repair count sums, but trust label semantics. A returned
// error means the service itself failed and the run should abort.
type Classifier interface {
	Classify(ctx context.Context, text string, taxonomy []string) ([]LabelCount, error)
}

// Grouper partitions label names into synonym groups: names in one group
// denote the same underlying priority despite textual drift. Every input
// name must appear in exactly one output group; callers repair malformed
// partitions before use.
type Grouper interface {
	Group(ctx context.Context, names []string) ([][]string, error)
}

// Summarizer condenses a project's session excerpts into a short
// plain-text digest.
type Summarizer interface {
	Summarize(ctx context.Context, project, text, priorities string) (string, error)
}
