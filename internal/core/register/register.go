// Package register reads company register extracts (Companies House bulk CSV,
// spreadsheets, JSON Lines or plain name lists) into core.Company values.
package register

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// Format identifies a register file layout.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatJSONL Format = "jsonl"
	FormatText  Format = "text"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	case FormatJSONL, "ndjson":
		return FormatJSONL, nil
	case FormatText, "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported register format: %s", value)
	}
}

// DetectFormat picks a format from the file extension; unknown extensions are
// read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatText
	}
}

// ReadFile reads every company from path. FormatAuto detects by extension.
func ReadFile(path string, format Format) ([]core.Company, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("register path is required")
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}

	if format == FormatXLSX {
		return ReadXLSX(path)
	}

	file, err := os.Open(path) // #nosec G304 -- user-selected register file
	if err != nil {
		return nil, err
	}
	defer file.Close() // nolint:errcheck // best-effort cleanup on read-only file

	switch format {
	case FormatCSV:
		return ReadCSV(file)
	case FormatJSONL:
		return ReadJSONL(file)
	case FormatText:
		return ReadText(file)
	default:
		return nil, fmt.Errorf("unsupported register format: %s", format)
	}
}

// ActiveOnly keeps companies whose status is Active or a qualified Active form.
func ActiveOnly(companies []core.Company) []core.Company {
	filtered := make([]core.Company, 0, len(companies))
	for _, c := range companies {
		if c.IsActive() {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
