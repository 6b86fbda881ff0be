// Package main generates the Cadence weekly summary from saved daily
// reports, re-consolidating priority names across the week, and optionally
// emails the digest with charts embedded.
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
	Days        int
	Email       string
	NoSave      bool
	ConfigFile  string
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("Cadence Weekly v%s\n", version)
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
		log.Fatalf("Summary failed: %v", err)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.IntVar(&cli.Days, "days", 7, "Days of daily reports to aggregate")
	flag.StringVar(&cli.Email, "email", "", "Email address to send the summary to (overrides config)")
	flag.BoolVar(&cli.NoSave, "no-save", false, "Don't save the summary to the reports directory")
	flag.StringVar(&cli.ConfigFile, "config", config.DefaultPath(), "Path to configuration file (YAML)")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Cadence Weekly - Weekly summary aggregated from daily reports\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cadence-weekly [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Last 7 days, emailed with charts\n")
		fmt.Fprintf(os.Stderr, "  cadence-weekly -email me@example.com\n\n")
	}

	flag.Parse()
	return cli
}

// run executes the weekly pipeline
func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}

	logger, logErr := logging.NewLogger("cadence-weekly")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	runner, err := digest.NewRunner(cfg, logger)
	if err != nil {
		return err
	}

	rep, dailies, err := runner.Weekly(ctx, cli.Days, time.Now())
	if err != nil {
		return err
	}

	if !cli.NoSave {
		path, err := runner.SaveWeekly(rep, time.Now())
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
		if err := runner.EmailWeekly(ctx, rep, dailies, to); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Emailed to %s\n", to)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Println(string(out))
	fmt.Fprint(os.Stderr, report.TermWeekly(rep))

	return nil
}
