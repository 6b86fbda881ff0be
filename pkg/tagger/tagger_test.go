package tagger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cadence/pkg/oracle"
	"github.com/entrhq/cadence/pkg/types"
)

// fakeClassifier returns canned oracle output.
type fakeClassifier struct {
	counts []oracle.LabelCount
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string, taxonomy []string) ([]oracle.LabelCount, error) {
	return f.counts, f.err
}

func chunkWithUserTurns(turns, charsPerTurn int) *types.Chunk {
	c := &types.Chunk{}
	for i := 0; i < turns; i++ {
		text := make([]byte, charsPerTurn)
		for j := range text {
			text[j] = 'x'
		}
		c.Turns = append(c.Turns, types.Turn{Role: types.RoleUser, Text: string(text)})
	}
	return c
}

func TestTag_ExactCountsPassThrough(t *testing.T) {
	chunk := chunkWithUserTurns(10, 100)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "P0: billing migration", Turns: 6, Chars: 600},
		{Label: "TOOLING: CI fixes", Turns: 4, Chars: 400},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, breakdown.TotalTurns())
	assert.Equal(t, 6, breakdown["P0: billing migration"].Turns)
	assert.Equal(t, 4, breakdown["TOOLING: CI fixes"].Turns)
}

func TestTag_UndercountGoesToUnclear(t *testing.T) {
	chunk := chunkWithUserTurns(10, 100)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "P1: search relevance", Turns: 7, Chars: 700},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, breakdown.TotalTurns())
	require.Contains(t, breakdown, oracle.CatchAllLabel)
	assert.Equal(t, 3, breakdown[oracle.CatchAllLabel].Turns)
	assert.Equal(t, 300, breakdown[oracle.CatchAllLabel].Chars)
}

func TestTag_EmptyResponseAllUnclear(t *testing.T) {
	chunk := chunkWithUserTurns(5, 50)
	classifier := &fakeClassifier{}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, breakdown.TotalTurns())
	assert.Equal(t, 5, breakdown[oracle.CatchAllLabel].Turns)
	assert.Equal(t, 250, breakdown[oracle.CatchAllLabel].Chars)
}

func TestTag_OvercountClampsLargestLabels(t *testing.T) {
	chunk := chunkWithUserTurns(10, 100)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "P0: billing migration", Turns: 9, Chars: 900},
		{Label: "META: planning", Turns: 4, Chars: 400},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, breakdown.TotalTurns())
	// Excess of 3 comes entirely off the largest label
	assert.Equal(t, 6, breakdown["P0: billing migration"].Turns)
	assert.Equal(t, 4, breakdown["META: planning"].Turns)
}

func TestTag_OvercountTieBreaksByName(t *testing.T) {
	chunk := chunkWithUserTurns(3, 10)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "BUGFIX: flaky test", Turns: 2, Chars: 10},
		{Label: "TOOLING: build cache", Turns: 2, Chars: 10},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, breakdown.TotalTurns())
	// The name-ascending label loses the tied decrement
	assert.Equal(t, 1, breakdown["BUGFIX: flaky test"].Turns)
	assert.Equal(t, 2, breakdown["TOOLING: build cache"].Turns)
}

func TestTag_RepeatedLabelsAccumulate(t *testing.T) {
	chunk := chunkWithUserTurns(6, 10)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "P2: docs refresh", Turns: 2, Chars: 20},
		{Label: "P2: docs refresh", Turns: 4, Chars: 40},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, breakdown.TotalTurns())
	assert.Equal(t, 6, breakdown["P2: docs refresh"].Turns)
}

func TestTag_TransportErrorPropagates(t *testing.T) {
	chunk := chunkWithUserTurns(3, 10)
	classifier := &fakeClassifier{err: errors.New("connection refused")}

	_, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	assert.Error(t, err)
}

func TestTag_ClampDropsEmptiedLabels(t *testing.T) {
	chunk := chunkWithUserTurns(1, 10)
	classifier := &fakeClassifier{counts: []oracle.LabelCount{
		{Label: "P0: one thing", Turns: 2, Chars: 0},
		{Label: "P1: another", Turns: 1, Chars: 5},
	}}

	breakdown, err := New(classifier, nil).Tag(context.Background(), chunk, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, breakdown.TotalTurns())
}
