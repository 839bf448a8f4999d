package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// Formatter renders a single pipeline result.
type Formatter interface {
	FormatBatch(result *core.BatchResult) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON, FormatYAML:
		return &EncodedFormatter{Format: format}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// FormatBatchList renders many results as one table, or as a document for
// the structured formats.
func FormatBatchList(format Format, results []*core.BatchResult) (string, error) {
	if results == nil {
		results = []*core.BatchResult{}
	}
	if encoded, ok, err := encode(format, results); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Number", "Canonical Name", "Status", "Search Queries"})
	for _, res := range results {
		if res == nil {
			continue
		}
		t.AppendRow(table.Row{res.CompanyNumber, res.CanonicalName, statusLabel(res), queriesCell(res, format)})
	}
	return renderTable(t, format), nil
}

// FormatSummary renders batch totals.
func FormatSummary(format Format, summary core.BatchSummary) (string, error) {
	if encoded, ok, err := encode(format, summary); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"processed", summary.Processed},
		{"accepted", summary.Accepted},
		{"rejected", summary.Rejected},
		{"queries", summary.Queries},
		{"duration", fmt.Sprintf("%dms", summary.DurationMs)},
	})
	for _, reason := range sortedKeys(summary.ByReason) {
		t.AppendRow(table.Row{"rejected: " + reason, summary.ByReason[reason]})
	}
	return renderTable(t, format), nil
}

// FormatStoredResults renders persisted results.
func FormatStoredResults(format Format, results []core.StoredResult) (string, error) {
	if results == nil {
		results = []core.StoredResult{}
	}
	if encoded, ok, err := encode(format, results); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Number", "Canonical Name", "Status", "Search Queries", "Stored"})
	for _, res := range results {
		wrapped := &core.BatchResult{ResultMap: res.ResultMap}
		t.AppendRow(table.Row{
			res.CompanyNumber,
			res.CanonicalName,
			statusLabel(wrapped),
			queriesCell(wrapped, format),
			res.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return renderTable(t, format), nil
}

// FormatStats renders aggregate counts over persisted results.
func FormatStats(format Format, stats *core.ResultStats) (string, error) {
	if stats == nil {
		stats = &core.ResultStats{}
	}
	if encoded, ok, err := encode(format, stats); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"total", stats.Total},
		{"accepted", stats.Accepted},
		{"rejected", stats.Rejected},
	})
	for _, reason := range sortedKeys(stats.ByReason) {
		t.AppendRow(table.Row{"rejected: " + reason, stats.ByReason[reason]})
	}
	return renderTable(t, format), nil
}

// FormatVariants renders stored name variants.
func FormatVariants(format Format, variants []core.NameVariant) (string, error) {
	if variants == nil {
		variants = []core.NameVariant{}
	}
	if encoded, ok, err := encode(format, variants); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Number", "Name", "Type", "Source", "Confidence"})
	for _, v := range variants {
		t.AppendRow(table.Row{v.CompanyNumber, v.Name, string(v.Type), v.Source, fmt.Sprintf("%.2f", v.Confidence)})
	}
	return renderTable(t, format), nil
}

// FormatResolution renders the queries resolved for one company.
func FormatResolution(format Format, res *engine.Resolution) (string, error) {
	if res == nil {
		return "", nil
	}
	if encoded, ok, err := encode(format, res); ok {
		return encoded, err
	}

	t := newTable()
	t.AppendHeader(table.Row{"#", "Search Query"})
	for i, q := range res.Queries {
		t.AppendRow(table.Row{i + 1, q})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%s via %s", res.CompanyNumber, res.Source)})
	return renderTable(t, format), nil
}

// encode handles the structured formats. ok is false for table and markdown.
func encode(format Format, v any) (string, bool, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", true, err
		}
		return string(data), true, nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", true, err
		}
		return strings.TrimRight(string(data), "\n"), true, nil
	default:
		return "", false, nil
	}
}
