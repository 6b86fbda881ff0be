package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, root, rel string, userTurns int, padding int) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))

	var b strings.Builder
	for i := 0; i < userTurns; i++ {
		b.WriteString(`{"type":"user","message":{"content":"a sufficiently long user prompt"}}` + "\n")
	}
	if padding > 0 {
		b.WriteString(`{"type":"assistant","message":{"content":"` + strings.Repeat("p", padding) + `"}}` + "\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestScan_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "acme-api/b.jsonl", 5, 2000)
	writeSession(t, root, "acme-api/a.jsonl", 5, 2000)
	writeSession(t, root, "acme-api/tiny.jsonl", 5, 0)     // under min size
	writeSession(t, root, "acme-api/sparse.jsonl", 1, 2000) // under min turns
	writeSession(t, root, "acme-api/notes.txt", 5, 2000)    // not a transcript

	s, err := NewScanner(root, 3, 500, nil)
	require.NoError(t, err)

	infos, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.True(t, strings.HasSuffix(infos[0].Path, "a.jsonl"))
	assert.True(t, strings.HasSuffix(infos[1].Path, "b.jsonl"))
	assert.Equal(t, "acme/api", infos[0].Project)
}

func TestScan_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "proj/main.jsonl", 5, 2000)
	writeSession(t, root, "proj/subagents/side.jsonl", 5, 2000)

	s, err := NewScanner(root, 3, 500, []string{"**/subagents/**"})
	require.NoError(t, err)

	infos, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, strings.HasSuffix(infos[0].Path, "main.jsonl"))
}

func TestScan_InvalidPattern(t *testing.T) {
	_, err := NewScanner(t.TempDir(), 3, 500, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestScan_MissingRoot(t *testing.T) {
	s, err := NewScanner(filepath.Join(t.TempDir(), "nope"), 3, 500, nil)
	require.NoError(t, err)

	infos, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestProjectName(t *testing.T) {
	root := "/sessions"

	tests := []struct {
		name string
		path string
		want string
	}{
		{"dashes become slashes", "/sessions/code-acme-api/s.jsonl", "code/acme/api"},
		{"leading dashes trimmed", "/sessions/-code-web/s.jsonl", "code/web"},
		{"plain name", "/sessions/scratch/s.jsonl", "scratch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectName(tt.path, root))
		})
	}
}
