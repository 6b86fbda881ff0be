package digest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cadence/pkg/types"
)

type fakeSummarizer struct {
	resp     string
	err      error
	projects []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, project, text, priorities string) (string, error) {
	f.projects = append(f.projects, project)
	return f.resp, f.err
}

func TestAppendExcerpt_UserTurnsOnly(t *testing.T) {
	var b strings.Builder
	appendExcerpt(&b, []types.Turn{
		{Role: types.RoleUser, Text: "fix the login bug"},
		{Role: types.RoleAssistant, Text: "assistant noise we do not want"},
		{Role: types.RoleUser, Text: "now add a regression test"},
	})

	out := b.String()
	assert.Contains(t, out, "fix the login bug")
	assert.Contains(t, out, "now add a regression test")
	assert.NotContains(t, out, "assistant noise")
}

func TestAppendExcerpt_CapsLength(t *testing.T) {
	var b strings.Builder
	long := strings.Repeat("x", maxExcerptChars)
	appendExcerpt(&b, []types.Turn{
		{Role: types.RoleUser, Text: long},
		{Role: types.RoleUser, Text: "this should be cut off entirely"},
	})

	assert.LessOrEqual(t, b.Len(), maxExcerptChars+2)
	assert.NotContains(t, b.String(), "cut off")
}

func TestProjectSummaries_RanksAndCaps(t *testing.T) {
	projects := make(map[string]*projectActivity)
	for i, name := range []string{"small", "big", "medium"} {
		a := &projectActivity{chars: (i%3 + 1) * 100, turns: i + 1, sessions: 1}
		a.excerpt.WriteString("some substantive work on " + name)
		projects[name] = a
	}
	projects["big"].chars = 900
	projects["medium"].chars = 500
	projects["small"].chars = 100

	sum := &fakeSummarizer{resp: "- did the thing"}
	r := &Runner{summarizer: sum}

	out := r.projectSummaries(context.Background(), projects, "")
	require.Len(t, out, 3)

	assert.Equal(t, "big", out[0].Project)
	assert.Equal(t, "medium", out[1].Project)
	assert.Equal(t, "small", out[2].Project)
	assert.Equal(t, []string{"- did the thing"}, out[0].Summaries)
	assert.Equal(t, []string{"big", "medium", "small"}, sum.projects)
}

func TestProjectSummaries_FailureIsNotFatal(t *testing.T) {
	projects := map[string]*projectActivity{}
	a := &projectActivity{chars: 100, turns: 1, sessions: 1}
	a.excerpt.WriteString("work happened")
	projects["proj"] = a

	r := &Runner{summarizer: &fakeSummarizer{err: errors.New("rate limited")}}

	out := r.projectSummaries(context.Background(), projects, "")
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Summaries)
	assert.Equal(t, 100, out[0].Chars)
}

func TestProjectSummaries_EmptyExcerptSkipsOracle(t *testing.T) {
	projects := map[string]*projectActivity{
		"proj": {chars: 100, turns: 1, sessions: 1},
	}
	sum := &fakeSummarizer{resp: "- something"}
	r := &Runner{summarizer: sum}

	out := r.projectSummaries(context.Background(), projects, "")
	require.Len(t, out, 1)
	assert.Empty(t, sum.projects)
	assert.Empty(t, out[0].Summaries)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "api", baseName("/home/elle/code/api"))
	assert.Equal(t, "api", baseName("/home/elle/code/api/"))
	assert.Equal(t, "api", baseName("api"))
}
