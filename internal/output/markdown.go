package output

import (
	"fmt"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatBatch renders one result as Markdown.
func (f *MarkdownFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(result.CanonicalName)))
	sb.WriteString(fmt.Sprintf("Company number: `%s`\n\n", result.CompanyNumber))

	if result.Rejected {
		sb.WriteString(fmt.Sprintf("**Rejected**: %s\n", escapeMarkdownCell(result.Reason())))
	} else {
		sb.WriteString("| # | Search Query |\n")
		sb.WriteString("|---|--------------|\n")
		for i, q := range result.SearchQueries {
			sb.WriteString(fmt.Sprintf("| %d | %s |\n", i+1, escapeMarkdownCell(q)))
		}
	}

	sb.WriteString(renderSections(traceSections(result.Trace), true))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
