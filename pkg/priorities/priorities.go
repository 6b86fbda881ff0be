// Package priorities loads the user's priority taxonomy and nearby TODO
// context files.
package priorities

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Priorities holds the raw priorities file text plus the parsed taxonomy.
type Priorities struct {
	// Raw is the file content verbatim, passed to summarization prompts
	// for project context.
	Raw string

	// Taxonomy is the ordered list of priority entries used for
	// classification. Empty when no file is configured.
	Taxonomy []string
}

// Load reads the priorities file at path. A missing or unconfigured file is
// an empty taxonomy, not an error; the generic fallback categories apply
// downstream.
func Load(path string) (*Priorities, error) {
	if path == "" {
		return &Priorities{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Priorities{}, nil
		}
		return nil, err
	}

	raw := string(data)
	return &Priorities{
		Raw:      raw,
		Taxonomy: parseTaxonomy(raw),
	}, nil
}

// parseTaxonomy extracts ordered priority entries from the file. Bullet
// lines become entries; a section header naming a priority level (P0, P1,
// P2) prefixes the entries under it, so "- Migrate billing" under "# P0"
// becomes "P0: Migrate billing".
func parseTaxonomy(raw string) []string {
	var taxonomy []string
	level := ""

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			level = headerLevel(line)
			continue
		}

		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			entry := strings.TrimSpace(line[2:])
			if entry == "" {
				continue
			}
			if level != "" {
				entry = level + ": " + entry
			}
			taxonomy = append(taxonomy, entry)
		}
	}
	return taxonomy
}

// headerLevel returns the priority level named by a header line, or "".
func headerLevel(line string) string {
	text := strings.ToUpper(strings.TrimSpace(strings.TrimLeft(line, "# ")))
	for _, level := range []string{"P0", "P1", "P2"} {
		if strings.HasPrefix(text, level) {
			return level
		}
	}
	return ""
}

// FindTodos probes each project directory for the configured TODO
// filenames and returns the contents found, keyed by file path. Missing
// files and directories are skipped silently.
func FindTodos(projectDirs, filenames []string) map[string]string {
	todos := make(map[string]string)
	for _, dir := range projectDirs {
		for _, name := range filenames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			todos[path] = string(data)
		}
	}
	return todos
}
