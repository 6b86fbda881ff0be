package oracle

import (
	"context"
	"fmt"

	"github.com/entrhq/cadence/pkg/llm"
	"github.com/entrhq/cadence/pkg/llm/tokenizer"
	"github.com/entrhq/cadence/pkg/logging"
)

// LLMOracle implements Classifier, Grouper, and Summarizer on top of a
// two-tier LLM cascade: a cheap tagger model for per-chunk classification
// and a stronger consolidator model for grouping and summary consolidation.
type LLMOracle struct {
	tagger       llm.Provider
	consolidator llm.Provider
	tok          *tokenizer.Tokenizer
	log          *logging.Logger
}

// New builds an oracle from a base provider. The consolidator tier is a
// cheap clone of the same provider pointed at consolidatorModel.
func New(base llm.Provider, consolidatorModel string, log *logging.Logger) *LLMOracle {
	o := &LLMOracle{
		tagger:       base,
		consolidator: base.CloneWithModel(consolidatorModel),
		log:          log,
	}

	// Token estimation is best-effort; classification works without it
	if tok, err := tokenizer.New(); err == nil {
		o.tok = tok
	} else if log != nil {
		log.Warnf("tokenizer unavailable, skipping token budget logs: %v", err)
	}

	return o
}

// Classify tags one chunk of conversation text against the taxonomy.
//
// Malformed responses are not fatal: whatever parses is returned, and the
// tagging layer repairs count sums. A transport error aborts the run.
func (o *LLMOracle) Classify(ctx context.Context, text string, taxonomy []string) ([]LabelCount, error) {
	if o.log != nil && o.tok != nil {
		o.log.Debugf("classify: %d prompt tokens (%s)", o.tok.Count(text), o.tagger.Model())
	}

	resp, err := o.tagger.Complete(ctx, []llm.Message{
		llm.SystemMessage(classifySystemPrompt),
		llm.UserMessage(classifyPrompt(text, taxonomy)),
	})
	if err != nil {
		return nil, fmt.Errorf("classifier call failed: %w", err)
	}

	counts, err := parseLabelCounts(resp)
	if err != nil {
		if o.log != nil {
			o.log.Warnf("classifier response malformed, tagger will repair: %v", err)
		}
		return nil, nil
	}
	return counts, nil
}

// Group partitions label names into synonym groups.
//
// A malformed response degrades to the identity partition (every name its
// own group) rather than failing the run; consolidation then simply applies
// no merging. A transport error aborts the run.
func (o *LLMOracle) Group(ctx context.Context, names []string) ([][]string, error) {
	resp, err := o.consolidator.Complete(ctx, []llm.Message{
		llm.SystemMessage(groupSystemPrompt),
		llm.UserMessage(groupPrompt(names)),
	})
	if err != nil {
		return nil, fmt.Errorf("grouping call failed: %w", err)
	}

	groups, err := parseGroups(resp)
	if err != nil {
		if o.log != nil {
			o.log.Warnf("grouping response malformed, falling back to identity partition: %v", err)
		}
		groups = make([][]string, 0, len(names))
		for _, name := range names {
			groups = append(groups, []string{name})
		}
	}
	return groups, nil
}

// Summarize condenses session excerpts for one project into bullets.
func (o *LLMOracle) Summarize(ctx context.Context, project, text, priorities string) (string, error) {
	resp, err := o.consolidator.Complete(ctx, []llm.Message{
		llm.SystemMessage(summarizeSystemPrompt),
		llm.UserMessage(summarizePrompt(project, text, priorities)),
	})
	if err != nil {
		return "", fmt.Errorf("summary call failed: %w", err)
	}
	return resp, nil
}
