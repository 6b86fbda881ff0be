// Package main generates the Cadence daily activity report: it classifies
// the window's AI pair-programming sessions against the user's priorities,
// saves the report JSON, and optionally emails the digest.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/cadence/pkg/config"
	"github.com/entrhq/cadence/pkg/digest"
	"github.com/entrhq/cadence/pkg/logging"
	"github.com/entrhq/cadence/pkg/report"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Hours       int
	Date        string
	Email       string
	NoSave      bool
	ConfigFile  string
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("Cadence v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		cancel()
		log.Fatalf("Report failed: %v", err)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.IntVar(&cli.Hours, "hours", 24, "Hours to look back")
	flag.StringVar(&cli.Date, "date", "", "Report a calendar day (YYYY-MM-DD, configured timezone; overrides -hours)")
	flag.StringVar(&cli.Email, "email", "", "Email address to send the report to (overrides config)")
	flag.BoolVar(&cli.NoSave, "no-save", false, "Don't save the report to the reports directory")
	flag.StringVar(&cli.ConfigFile, "config", config.DefaultPath(), "Path to configuration file (YAML)")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Cadence - Daily activity report from AI pair-programming sessions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cadence [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Last 24 hours, save only\n")
		fmt.Fprintf(os.Stderr, "  cadence\n\n")
		fmt.Fprintf(os.Stderr, "  # A specific calendar day, emailed\n")
		fmt.Fprintf(os.Stderr, "  cadence -date 2026-08-30 -email me@example.com\n\n")
	}

	flag.Parse()
	return cli
}

// run executes the daily pipeline
func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}

	logger, logErr := logging.NewLogger("cadence")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	runner, err := digest.NewRunner(cfg, logger)
	if err != nil {
		return err
	}

	var start, end time.Time
	if cli.Date != "" {
		start, end, err = digest.WindowForDate(cli.Date, cfg.Location())
		if err != nil {
			return err
		}
	} else {
		start, end = digest.WindowHours(time.Now(), cli.Hours)
	}

	rep, err := runner.Daily(ctx, start, end)
	if err != nil {
		return err
	}

	if !cli.NoSave {
		path, err := runner.SaveDaily(rep, end)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
	}

	to := cli.Email
	if to == "" {
		to = cfg.Email
	}
	if to != "" {
		if err := runner.EmailDaily(ctx, rep, to); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Emailed to %s\n", to)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))
	fmt.Fprint(os.Stderr, report.TermDaily(rep))

	return nil
}
