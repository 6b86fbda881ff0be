package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `[{"label":"a"}]`, `[{"label":"a"}]`},
		{"fenced", "```\n[1,2]\n```", "[1,2]"},
		{"fenced with language", "```json\n[1,2]\n```", "[1,2]"},
		{"preamble before fence", "Here you go:\n```json\n[]\n```", "[]"},
		{"whitespace", "  [1]  ", "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseLabelCounts(t *testing.T) {
	counts, err := parseLabelCounts(`[
		{"label": "P0: billing", "turns": 5, "chars": 500},
		{"label": " TOOLING: CI ", "turns": 2, "chars": 200}
	]`)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "P0: billing", counts[0].Label)
	assert.Equal(t, 5, counts[0].Turns)
	assert.Equal(t, "TOOLING: CI", counts[1].Label)
}

func TestParseLabelCounts_Sanitizes(t *testing.T) {
	counts, err := parseLabelCounts(`[
		{"label": "P0: x", "turns": -3, "chars": -10},
		{"label": "  ", "turns": 4, "chars": 40}
	]`)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Zero(t, counts[0].Turns)
	assert.Zero(t, counts[0].Chars)
}

func TestParseLabelCounts_Malformed(t *testing.T) {
	_, err := parseLabelCounts("")
	assert.Error(t, err)

	_, err = parseLabelCounts("I could not classify this conversation.")
	assert.Error(t, err)
}

func TestParseGroups(t *testing.T) {
	groups, err := parseGroups("```json\n[[\"a\",\"b\"],[\" c \"],[]]\n```")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, groups)
}

func TestParseGroups_Malformed(t *testing.T) {
	_, err := parseGroups(`{"not": "an array"}`)
	assert.Error(t, err)
}
