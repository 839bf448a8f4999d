package output

import (
	"fmt"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
)

type traceSection struct {
	Title string
	Lines []string
}

// traceSections lists the stages a run reached, in pipeline order.
func traceSections(trace *namesearch.Trace) []traceSection {
	if trace == nil {
		return nil
	}

	sections := []traceSection{
		{Title: "Canonical", Lines: []string{trace.Canonical}},
		{Title: "Normalized", Lines: []string{trace.Normalized}},
	}
	add := func(title string, lines []string) {
		if len(lines) > 0 {
			sections = append(sections, traceSection{Title: title, Lines: lines})
		}
	}

	add("Legal variants", trace.LegalVariants)
	add("Search variants", trace.SearchVariants)

	checks := make([]string, 0, len(trace.Validation))
	for _, c := range trace.Validation {
		if c.Valid {
			checks = append(checks, fmt.Sprintf("%s: ok", c.Candidate))
		} else {
			checks = append(checks, fmt.Sprintf("%s: %s", c.Candidate, c.Reason))
		}
	}
	add("Validation", checks)
	add("Humanized", trace.Humanized)
	add("Enriched", trace.Enriched)

	scored := make([]string, 0, len(trace.Scored))
	for _, s := range trace.Scored {
		scored = append(scored, fmt.Sprintf("%3d  %s", s.Score, s.Query))
	}
	add("Scored", scored)
	add("Deduplicated", trace.Deduplicated)

	if trace.Rejection != "" {
		add("Rejection", []string{trace.Rejection})
	}
	return sections
}

func renderSections(sections []traceSection, markdown bool) string {
	if len(sections) == 0 {
		return ""
	}

	var sb strings.Builder
	if markdown {
		sb.WriteString("\n### Trace\n")
	} else {
		sb.WriteString("\n\nTrace:")
	}
	for _, section := range sections {
		if markdown {
			sb.WriteString(fmt.Sprintf("\n**%s**\n", section.Title))
			for _, line := range section.Lines {
				sb.WriteString(fmt.Sprintf("- %s\n", escapeMarkdownCell(line)))
			}
		} else {
			sb.WriteString(fmt.Sprintf("\n  %s:\n", section.Title))
			for _, line := range section.Lines {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
		}
	}
	return sb.String()
}
