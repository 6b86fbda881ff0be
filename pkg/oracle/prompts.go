package oracle

import (
	"fmt"
	"strings"
)

const classifySystemPrompt = `You classify AI pair-programming conversation chunks against a user's priority list. Reply with JSON only: an array of objects with "label", "turns", and "chars" fields. Each USER turn in the conversation must be assigned to exactly one label, so the "turns" values must sum to the number of USER turns. Be conservative - only match a priority if the work clearly fits it. Do NOT stretch to fit.`

// classifyPrompt builds the per-chunk tagging prompt. When the taxonomy is
// empty the generic fallback categories apply.
func classifyPrompt(text string, taxonomy []string) string {
	var b strings.Builder

	if len(taxonomy) > 0 {
		b.WriteString("Assign each USER turn to one of these priorities (use the priority text verbatim as the label):\n")
		for _, entry := range taxonomy {
			fmt.Fprintf(&b, "- %s\n", entry)
		}
		b.WriteString("\nFor work that does not clearly fit a priority, use one of the fallback labels: ")
	} else {
		b.WriteString("No priority list is configured. Assign each USER turn to one of the fallback labels: ")
	}
	b.WriteString(strings.Join(FallbackLabels, ", "))
	b.WriteString(", each optionally suffixed with a short description, e.g. \"TOOLING: CI pipeline\".\n")

	b.WriteString("\n## Conversation\n")
	b.WriteString(text)
	b.WriteString("\nReply with the JSON array only.")
	return b.String()
}

const groupSystemPrompt = `You deduplicate priority label names from independently classified work chunks. Many names are variations of the same underlying priority. Reply with JSON only: an array of arrays, where each inner array contains names that denote the same priority. Every input name must appear in exactly one group. Group aggressively - similar work should be grouped even if descriptions differ slightly.`

func groupPrompt(names []string) string {
	var b strings.Builder
	b.WriteString("Label names to group:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\nReply with the JSON array of groups only, using each name verbatim.")
	return b.String()
}

const summarizeSystemPrompt = `You summarize excerpts of AI pair-programming sessions for a daily activity report. Write 3-5 plain text bullet points of the substantive work done. Start immediately with bullets. Use plain text only: no markdown headers, no bold. Focus on actual accomplishments and progress, not setup or initialization. If work relates to a priority, note which one in parentheses. If the excerpts are mostly empty, write a single bullet: "No substantive work captured".`

func summarizePrompt(project, text, priorities string) string {
	var b strings.Builder
	if priorities != "" {
		b.WriteString("## Priorities Reference\n")
		b.WriteString(priorities)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "## Project: %s\n\n## Session Excerpts\n%s\n", project, text)
	return b.String()
}
