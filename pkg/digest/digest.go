// Package digest runs the end-to-end report pipeline: scan sessions,
// extract and chunk the window's turns, classify each chunk, consolidate
// label names, aggregate into a report document, then persist and deliver.
package digest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/cadence/pkg/aggregate"
	"github.com/entrhq/cadence/pkg/chunker"
	"github.com/entrhq/cadence/pkg/config"
	"github.com/entrhq/cadence/pkg/consolidate"
	"github.com/entrhq/cadence/pkg/email"
	"github.com/entrhq/cadence/pkg/gitlog"
	"github.com/entrhq/cadence/pkg/llm/openai"
	"github.com/entrhq/cadence/pkg/llm/tokenizer"
	"github.com/entrhq/cadence/pkg/logging"
	"github.com/entrhq/cadence/pkg/oracle"
	"github.com/entrhq/cadence/pkg/priorities"
	"github.com/entrhq/cadence/pkg/report"
	"github.com/entrhq/cadence/pkg/session"
	"github.com/entrhq/cadence/pkg/tagger"
	"github.com/entrhq/cadence/pkg/types"
)

const (
	// maxProjectSummaries bounds the number of consolidator calls per run.
	maxProjectSummaries = 10

	// maxExcerptChars caps the per-project transcript excerpt fed to the
	// summarizer.
	maxExcerptChars = 24000
)

// Runner holds the wired pipeline stages for one invocation.
type Runner struct {
	cfg          *config.Config
	log          *logging.Logger
	tagger       *tagger.Tagger
	consolidator *consolidate.Consolidator
	summarizer   oracle.Summarizer
	tok          chunker.Tokenizer
	store        *report.Store
}

// NewRunner wires the pipeline from configuration. The OpenAI API key is
// taken from the environment.
func NewRunner(cfg *config.Config, log *logging.Logger) (*Runner, error) {
	provider, err := openai.NewProvider("", openai.WithModel(cfg.Models.Tagger))
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	o := oracle.New(provider, cfg.Models.Consolidator, log)

	r := &Runner{
		cfg:          cfg,
		log:          log,
		tagger:       tagger.New(o, log),
		consolidator: consolidate.New(o, log),
		summarizer:   o,
		store:        report.NewStore(cfg.ReportsDir),
	}

	if tok, err := tokenizer.New(); err != nil {
		log.Warnf("tokenizer unavailable, skipping token estimates: %v", err)
	} else {
		r.tok = tok
	}

	return r, nil
}

// projectActivity accumulates per-project totals while sessions stream
// through the pipeline.
type projectActivity struct {
	chars    int
	turns    int
	sessions int
	excerpt  strings.Builder
}

// Daily generates the report for the [start, end) window.
func (r *Runner) Daily(ctx context.Context, start, end time.Time) (*types.DailyReport, error) {
	pri, err := priorities.Load(r.cfg.PrioritiesFile)
	if err != nil {
		return nil, err
	}
	if len(pri.Taxonomy) == 0 {
		r.log.Warnf("no priorities file configured, using fallback categories")
	}

	scanner, err := session.NewScanner(
		r.cfg.SessionsDir,
		r.cfg.Sessions.MinTurns,
		int64(r.cfg.Sessions.MinSizeBytes),
		r.cfg.ExcludePatterns,
	)
	if err != nil {
		return nil, err
	}
	infos, err := scanner.Scan()
	if err != nil {
		return nil, err
	}
	r.log.Infof("scanning %d sessions for activity between %s and %s",
		len(infos), start.Format(time.RFC3339), end.Format(time.RFC3339))

	var tags []aggregate.ChunkTag
	projects := make(map[string]*projectActivity)
	activeSessions := 0

	for _, info := range infos {
		turns, err := session.Extract(info.Path)
		if err != nil {
			r.log.Warnf("skipping unreadable session %s: %v", info.Path, err)
			continue
		}
		turns = session.FilterWindow(turns, start, end)
		if len(turns) == 0 {
			continue
		}

		sessionTurns, sessionChars := 0, 0
		for _, chunk := range chunker.Split(turns, r.cfg.Chunking.MaxChars, r.tok) {
			if chunk.UserTurns() == 0 {
				continue
			}
			breakdown, err := r.tagger.Tag(ctx, &chunk, pri.Taxonomy)
			if err != nil {
				return nil, err
			}
			tags = append(tags, aggregate.ChunkTag{
				Project:   info.Project,
				Hour:      chunk.Hour,
				Breakdown: breakdown,
			})
			sessionTurns += chunk.UserTurns()
			sessionChars += chunk.UserChars()
		}
		if sessionTurns == 0 {
			continue
		}

		activeSessions++
		activity := projects[info.Project]
		if activity == nil {
			activity = &projectActivity{}
			projects[info.Project] = activity
		}
		activity.sessions++
		activity.turns += sessionTurns
		activity.chars += sessionChars
		appendExcerpt(&activity.excerpt, turns)

		r.log.Debugf("session %s: %d user turns, %d chars", info.Path, sessionTurns, sessionChars)
	}

	breakdowns := make([]types.Breakdown, 0, len(tags))
	for _, tag := range tags {
		breakdowns = append(breakdowns, tag.Breakdown)
	}
	consolidated, err := r.consolidator.Consolidate(ctx, breakdowns...)
	if err != nil {
		return nil, err
	}

	summaries := r.projectSummaries(ctx, projects, r.summaryContext(pri))
	r.attachCommits(ctx, summaries, start, end)

	return &types.DailyReport{
		PeriodStart:   start.Format(time.RFC3339),
		PeriodEnd:     end.Format(time.RFC3339),
		TotalSessions: activeSessions,
		Breakdown:     aggregate.BuildBreakdown(tags, consolidated),
		Hourly:        aggregate.Hourly(tags),
		Projects:      summaries,
		Neglected:     aggregate.Neglected(pri.Taxonomy, consolidated),
	}, nil
}

// appendExcerpt folds the window's user prompts into the project excerpt,
// up to the summarizer cap.
func appendExcerpt(b *strings.Builder, turns []types.Turn) {
	for _, t := range turns {
		if t.Role != types.RoleUser {
			continue
		}
		if b.Len() >= maxExcerptChars {
			return
		}
		text := t.Text
		if remaining := maxExcerptChars - b.Len(); len(text) > remaining {
			text = text[:remaining]
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
}

// summaryContext combines the priorities file with any TODO files found in
// the configured project directories, giving the summarizer grounding for
// what the user meant to be working on.
func (r *Runner) summaryContext(pri *priorities.Priorities) string {
	todos := priorities.FindTodos(r.cfg.Projects, r.cfg.TodoFilenames)
	if len(todos) == 0 {
		return pri.Raw
	}

	paths := make([]string, 0, len(todos))
	for path := range todos {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString(pri.Raw)
	for _, path := range paths {
		fmt.Fprintf(&b, "\n\n## TODOs (%s)\n%s", path, todos[path])
	}
	return b.String()
}

// projectSummaries ranks projects by chars descending and asks the
// consolidator model for a bullet summary of the top ones. A failed summary
// is logged and skipped, never fatal.
func (r *Runner) projectSummaries(ctx context.Context, projects map[string]*projectActivity, priorityContext string) []types.ProjectSummary {
	summaries := make([]types.ProjectSummary, 0, len(projects))
	for name, activity := range projects {
		summaries = append(summaries, types.ProjectSummary{
			Project:  name,
			Chars:    activity.chars,
			Turns:    activity.turns,
			Sessions: activity.sessions,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Chars != summaries[j].Chars {
			return summaries[i].Chars > summaries[j].Chars
		}
		return summaries[i].Project < summaries[j].Project
	})

	for i := range summaries {
		if i >= maxProjectSummaries {
			break
		}
		excerpt := projects[summaries[i].Project].excerpt.String()
		if strings.TrimSpace(excerpt) == "" {
			continue
		}
		summary, err := r.summarizer.Summarize(ctx, summaries[i].Project, excerpt, priorityContext)
		if err != nil {
			r.log.Warnf("summary failed for %s: %v", summaries[i].Project, err)
			continue
		}
		if summary != "" {
			summaries[i].Summaries = []string{summary}
		}
	}

	return summaries
}

// attachCommits folds window git activity from the configured repos into the
// matching project sections. Repos without a session match get their own
// section so commit activity is never silently dropped.
func (r *Runner) attachCommits(ctx context.Context, summaries []types.ProjectSummary, start, end time.Time) {
	for _, repoDir := range r.cfg.Projects {
		commits, err := gitlog.Commits(ctx, repoDir, start, end)
		if err != nil || len(commits) == 0 {
			continue
		}
		described := gitlog.Describe(commits)

		matched := false
		base := baseName(repoDir)
		for i := range summaries {
			if summaries[i].Project == base || strings.HasSuffix(summaries[i].Project, "/"+base) {
				summaries[i].Commits = described
				matched = true
				break
			}
		}
		if !matched {
			r.log.Debugf("commits in %s without session activity", repoDir)
		}
	}
}

func baseName(dir string) string {
	dir = strings.TrimRight(dir, "/")
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		return dir[i+1:]
	}
	return dir
}

// SaveDaily persists the report JSON and appends its hourly rows to the
// timeseries log.
func (r *Runner) SaveDaily(rep *types.DailyReport, date time.Time) (string, error) {
	path, err := r.store.SaveDaily(rep, date)
	if err != nil {
		return "", err
	}
	if err := r.store.AppendHourly(rep, date); err != nil {
		return "", err
	}
	return path, nil
}

// EmailDaily renders and delivers the daily report.
func (r *Runner) EmailDaily(ctx context.Context, rep *types.DailyReport, to string) error {
	html, err := report.RenderHTML(report.DailyBody(rep), nil)
	if err != nil {
		return err
	}

	sender, err := email.NewSender(r.cfg)
	if err != nil {
		return err
	}
	return sender.Send(ctx, &email.Message{
		To:      to,
		Subject: fmt.Sprintf("Daily Cadence Report: %s", rep.PeriodEnd[:10]),
		HTML:    html,
	})
}
