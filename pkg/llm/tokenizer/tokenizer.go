// Package tokenizer wraps tiktoken for client-side token estimation.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer estimates token counts for chunk sizing and oracle budget logs.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer using the cl100k_base encoding, which is a close
// enough estimate across the chat model families Cadence talks to.
func New() (*Tokenizer, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Tokenizer{encoding: encoding}, nil
}

// Count returns the token count of text.
func (t *Tokenizer) Count(text string) int {
	if t == nil || t.encoding == nil {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}
