// Package config loads the Cadence YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full Cadence configuration.
type Config struct {
	// Email is the default destination for digest reports.
	Email string `yaml:"email"`

	// EmailMethod selects the delivery backend: "gmail" or "smtp".
	EmailMethod string `yaml:"email_method"`

	// SMTP settings, required when EmailMethod is "smtp".
	SMTP *SMTPConfig `yaml:"smtp"`

	// Gmail API credential paths, used when EmailMethod is "gmail".
	Gmail *GmailConfig `yaml:"gmail"`

	// PrioritiesFile is the user's priority taxonomy file. Optional;
	// when absent the generic fallback categories apply.
	PrioritiesFile string `yaml:"priorities_file"`

	// ReportsDir is where daily/weekly JSON reports and the hourly
	// timeseries are written.
	ReportsDir string `yaml:"reports_dir"`

	// SessionsDir is the root directory scanned for session transcripts.
	SessionsDir string `yaml:"sessions_dir"`

	// Timezone is the IANA zone used for --date windows and chart axes.
	Timezone string `yaml:"timezone"`

	// TodoFilenames are filenames probed in each project dir for TODO context.
	TodoFilenames []string `yaml:"todo_filenames"`

	// Projects are local repo paths scanned for git activity and TODO files.
	Projects []string `yaml:"projects"`

	// ExcludePatterns are glob patterns for session paths to skip.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	Models   ModelConfig         `yaml:"models"`
	Chunking ChunkingConfig      `yaml:"chunking"`
	Sessions SessionFilterConfig `yaml:"sessions"`
}

// SMTPConfig holds SMTP delivery settings. The password is never stored in
// the config file; it is read from the environment variable named by
// PasswordEnv.
type SMTPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// GmailConfig holds paths to the OAuth client credentials and cached token.
type GmailConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
}

// ModelConfig names the two oracle tiers.
type ModelConfig struct {
	// Tagger is the cheap model used for per-chunk classification.
	Tagger string `yaml:"tagger"`
	// Consolidator is the stronger model used for label-name grouping
	// and project summary consolidation.
	Consolidator string `yaml:"consolidator"`
}

// ChunkingConfig bounds transcript chunk sizes.
type ChunkingConfig struct {
	MaxChars int `yaml:"max_chars"`
}

// SessionFilterConfig filters which transcripts are worth classifying.
type SessionFilterConfig struct {
	MinTurns     int `yaml:"min_turns"`
	MinSizeBytes int `yaml:"min_size_bytes"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "cadence", "config.yaml")
}

// DefaultConfig returns a configuration with sensible defaults applied.
func DefaultConfig() *Config {
	return &Config{
		EmailMethod: "smtp",
		ReportsDir:  "~/notes/cadence_reports",
		SessionsDir: "~/.claude/projects",
		Timezone:    "UTC",
		TodoFilenames: []string{
			"todos.org",
			"TODO.md",
			"todo.md",
		},
		ExcludePatterns: []string{"**/subagents/**"},
		Models: ModelConfig{
			Tagger:       "gpt-4o-mini",
			Consolidator: "gpt-4o",
		},
		Chunking: ChunkingConfig{MaxChars: 20000},
		Sessions: SessionFilterConfig{
			MinTurns:     3,
			MinSizeBytes: 5000,
		},
	}
}

// Load reads and validates the config file at path. Missing optional inputs
// (priorities file, todo files) are not validated here; their absence is
// handled downstream as empty, not as an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.EmailMethod {
	case "gmail", "smtp":
	default:
		return fmt.Errorf("invalid email_method: %q (must be 'gmail' or 'smtp')", c.EmailMethod)
	}

	if c.EmailMethod == "smtp" && c.Email != "" {
		if c.SMTP == nil || c.SMTP.Host == "" || c.SMTP.Username == "" {
			return fmt.Errorf("smtp host and username are required for email_method: smtp")
		}
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	if c.Chunking.MaxChars <= 0 {
		return fmt.Errorf("chunking max_chars must be positive")
	}

	if c.Sessions.MinTurns < 0 || c.Sessions.MinSizeBytes < 0 {
		return fmt.Errorf("session filters cannot be negative")
	}

	return nil
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) expandPaths() {
	c.PrioritiesFile = expandUser(c.PrioritiesFile)
	c.ReportsDir = expandUser(c.ReportsDir)
	c.SessionsDir = expandUser(c.SessionsDir)
	for i, p := range c.Projects {
		c.Projects[i] = expandUser(p)
	}
	if c.Gmail != nil {
		c.Gmail.CredentialsFile = expandUser(c.Gmail.CredentialsFile)
		c.Gmail.TokenFile = expandUser(c.Gmail.TokenFile)
	}
}

func expandUser(p string) string {
	if p == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
