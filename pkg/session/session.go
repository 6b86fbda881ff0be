// Package session scans and parses AI pair-programming session transcripts.
//
// Transcripts are JSONL files, one message object per line. Only user
// prompts and assistant text responses are extracted; tool calls, tool
// results, and sidechain noise are skipped.
package session

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/entrhq/cadence/pkg/types"
)

// minUserTextLen filters out trivial user turns ("y", "ok", editor noise).
const minUserTextLen = 11

// transcriptLine is the subset of a transcript JSONL line we care about.
type transcriptLine struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
}

type messageBody struct {
	Content json.RawMessage `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Extract reads a transcript file and returns its conversation turns in
// order. A missing file yields an empty slice, not an error: sessions can
// vanish between scan and read.
func Extract(path string) ([]types.Turn, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var turns []types.Turn

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry transcriptLine
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		if entry.Type != "user" && entry.Type != "assistant" {
			continue
		}

		text := extractText(entry.Message)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if entry.Type == "user" {
			if strings.HasPrefix(text, "<shell-maker") || len(text) < minUserTextLen {
				continue
			}
		}

		turn := types.Turn{Text: text}
		if entry.Type == "user" {
			turn.Role = types.RoleUser
		} else {
			turn.Role = types.RoleAssistant
		}

		if entry.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
				turn.Timestamp = ts
			}
		}

		turns = append(turns, turn)
	}

	if err := scanner.Err(); err != nil {
		return turns, err
	}
	return turns, nil
}

// extractText pulls the text content out of a message body, which is either
// a plain string or a list of typed content parts.
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if len(body.Content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Content, &s); err == nil {
		return s
	}

	var parts []contentPart
	if err := json.Unmarshal(body.Content, &parts); err != nil {
		return ""
	}

	var texts []string
	for _, p := range parts {
		if p.Type == "text" && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// FilterWindow returns the turns whose timestamps fall within [start, end).
// Turns without a timestamp are excluded: they cannot be placed in a window.
func FilterWindow(turns []types.Turn, start, end time.Time) []types.Turn {
	var out []types.Turn
	for _, t := range turns {
		if t.Timestamp.IsZero() {
			continue
		}
		if !t.Timestamp.Before(start) && t.Timestamp.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

// CountUserTurns does a quick scan of a transcript counting user messages,
// without full content extraction.
func CountUserTurns(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 4*1024*1024)

	for scanner.Scan() {
		var entry struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if entry.Type == "user" {
			count++
		}
	}
	return count, scanner.Err()
}
