// Package llm provides the narrow completion abstraction used by the
// classification oracle. Cadence runs are batch and synchronous, so the
// interface is a single blocking Complete call; streaming is deliberately
// absent.
package llm

import "context"

// MessageRole identifies the author of a prompt message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry of a completion prompt.
type Message struct {
	Role    MessageRole
	Content string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Provider defines the interface for LLM integrations.
//
// Providers handle API communication with LLM services and nothing else.
// The oracle layer is responsible for prompt construction, response parsing,
// and repair of malformed output, which keeps providers testable
// independently of classification logic.
type Provider interface {
	// Complete sends messages to the LLM and returns the full response text.
	// A transport or API failure returns an error; callers treat that as
	// fatal for the run.
	Complete(ctx context.Context, messages []Message) (string, error)

	// CloneWithModel returns a provider sharing credentials and transport
	// with the original but directing calls to the given model. Used to
	// derive the consolidator tier from the cheap tagger tier.
	CloneWithModel(model string) Provider

	// Model returns the model name being used.
	Model() string
}
