package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatBatch renders one result as a ranked query table.
func (f *TableFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("%s (%s)", result.CanonicalName, result.CompanyNumber))
	t.AppendHeader(table.Row{"#", "Search Query"})
	for i, q := range result.SearchQueries {
		t.AppendRow(table.Row{i + 1, q})
	}
	t.AppendFooter(table.Row{"", statusLabel(result)})

	rendered := t.Render()
	rendered += renderSections(traceSections(result.Trace), false)
	return rendered, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	// footers carry status text, which must keep its case
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderTable(t table.Writer, format Format) string {
	if format == FormatMarkdown {
		return t.RenderMarkdown()
	}
	return t.Render()
}

func statusLabel(result *core.BatchResult) string {
	if result == nil {
		return ""
	}
	if result.Rejected {
		return "rejected: " + result.Reason()
	}
	switch n := len(result.SearchQueries); n {
	case 1:
		return "1 query"
	default:
		return fmt.Sprintf("%d queries", n)
	}
}

// queriesCell joins queries for a list cell. Markdown cells cannot hold
// newlines, so they are joined with a separator instead.
func queriesCell(result *core.BatchResult, format Format) string {
	if format == FormatMarkdown {
		return strings.Join(result.SearchQueries, "; ")
	}
	return strings.Join(result.SearchQueries, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
