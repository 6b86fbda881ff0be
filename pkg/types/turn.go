// Package types defines the core data model shared across the Cadence
// pipeline: conversation turns, size-bounded chunks, label breakdowns,
// and the daily/weekly report documents that get persisted and emailed.
package types

import (
	"strings"
	"time"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a session transcript.
type Turn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// Chunk is a contiguous, turn-aligned slice of a session transcript.
// Splitting never breaks a turn across chunks, so concatenating a
// session's chunks in order reproduces the original turn sequence.
type Chunk struct {
	Turns []Turn

	// Hour is the UTC hour of the median user turn, or -1 when the
	// chunk contains no user turns.
	Hour int

	// Tokens is the tokenizer-estimated size of the chunk text. Zero
	// when no tokenizer was available.
	Tokens int
}

// UserTurns returns the number of user turns in the chunk.
func (c *Chunk) UserTurns() int {
	n := 0
	for _, t := range c.Turns {
		if t.Role == RoleUser {
			n++
		}
	}
	return n
}

// UserChars returns the total character count of user turns in the chunk.
func (c *Chunk) UserChars() int {
	n := 0
	for _, t := range c.Turns {
		if t.Role == RoleUser {
			n += len(t.Text)
		}
	}
	return n
}

// Text renders the chunk as readable conversation text for classification.
func (c *Chunk) Text() string {
	var b strings.Builder
	for _, t := range c.Turns {
		if t.Role == RoleUser {
			b.WriteString("USER: ")
		} else {
			b.WriteString("ASSISTANT: ")
		}
		b.WriteString(t.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
