package session

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Info describes one discovered session transcript.
type Info struct {
	Path    string
	Project string
	SizeKB  int64
}

// Scanner walks a sessions directory for transcripts worth classifying.
type Scanner struct {
	root     string
	minTurns int
	minSize  int64
	excludes []glob.Glob
}

// NewScanner builds a scanner over root. Exclude patterns are compiled as
// path globs; an invalid pattern is a configuration error.
func NewScanner(root string, minTurns int, minSize int64, excludePatterns []string) (*Scanner, error) {
	var excludes []glob.Glob
	for _, pat := range excludePatterns {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
		excludes = append(excludes, g)
	}

	return &Scanner{
		root:     root,
		minTurns: minTurns,
		minSize:  minSize,
		excludes: excludes,
	}, nil
}

// Scan returns qualifying sessions sorted by path for determinism.
// A missing sessions directory yields no sessions, not an error.
func (s *Scanner) Scan() ([]Info, error) {
	var sessions []Info

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		if s.excluded(path) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if fi.Size() < s.minSize {
			return nil
		}

		turns, err := CountUserTurns(path)
		if err != nil || turns < s.minTurns {
			return nil
		}

		sessions = append(sessions, Info{
			Path:    path,
			Project: ProjectName(path, s.root),
			SizeKB:  fi.Size() / 1024,
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan sessions dir %s: %w", s.root, err)
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Path < sessions[j].Path })
	return sessions, nil
}

func (s *Scanner) excluded(path string) bool {
	for _, g := range s.excludes {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// ProjectName derives a readable project name from a transcript path.
// Session stores encode workspace paths as directory names like
// -Users-elle-code-project; the home prefix is stripped and dashes become
// path separators.
func ProjectName(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	project := strings.Split(filepath.ToSlash(rel), "/")[0]

	if home, err := os.UserHomeDir(); err == nil {
		homePrefix := strings.ReplaceAll(home, "/", "-")
		if strings.HasPrefix(project, homePrefix) {
			project = project[len(homePrefix):]
		}
	}

	return strings.ReplaceAll(strings.Trim(project, "-"), "-", "/")
}
