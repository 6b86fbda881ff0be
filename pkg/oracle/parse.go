package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a markdown code fence wrapper if present. Models
// routinely wrap JSON output in ```json blocks despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

func parseLabelCounts(resp string) ([]LabelCount, error) {
	cleaned := stripFences(resp)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var counts []LabelCount
	if err := json.Unmarshal([]byte(cleaned), &counts); err != nil {
		return nil, fmt.Errorf("failed to parse label counts: %w", err)
	}

	// Negative counts are classifier noise, not data
	out := counts[:0]
	for _, c := range counts {
		if strings.TrimSpace(c.Label) == "" {
			continue
		}
		if c.Turns < 0 {
			c.Turns = 0
		}
		if c.Chars < 0 {
			c.Chars = 0
		}
		c.Label = strings.TrimSpace(c.Label)
		out = append(out, c)
	}
	return out, nil
}

func parseGroups(resp string) ([][]string, error) {
	cleaned := stripFences(resp)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var groups [][]string
	if err := json.Unmarshal([]byte(cleaned), &groups); err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}

	out := groups[:0]
	for _, g := range groups {
		var cleaned []string
		for _, name := range g {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			out = append(out, cleaned)
		}
	}
	return out, nil
}
