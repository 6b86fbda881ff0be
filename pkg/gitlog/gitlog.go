// Package gitlog retrieves commit activity for configured project repos.
package gitlog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Commit is one log entry in the report window.
type Commit struct {
	Hash    string
	Subject string
}

// Commits returns the commits made in repoDir within [start, end). A
// directory that is missing or not a git repo yields no commits, not an
// error: git activity is optional context.
func Commits(ctx context.Context, repoDir string, start, end time.Time) ([]Commit, error) {
	if _, err := os.Stat(filepath.Join(repoDir, ".git")); err != nil {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, "git", "log",
		"--since", start.Format(time.RFC3339),
		"--until", end.Format(time.RFC3339),
		"--pretty=format:%h\x1f%s")
	cmd.Dir = repoDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// An empty repo or detached state is not worth failing a report over
		return nil, nil
	}

	return parseLog(stdout.String()), nil
}

// parseLog splits the delimited git log output into commits.
func parseLog(out string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\x1f", 2)
		c := Commit{Hash: parts[0]}
		if len(parts) == 2 {
			c.Subject = parts[1]
		}
		commits = append(commits, c)
	}
	return commits
}

// Describe formats commits for a report's project section.
func Describe(commits []Commit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, fmt.Sprintf("%s %s", c.Hash, c.Subject))
	}
	return out
}
