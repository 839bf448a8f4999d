package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

type outputSink struct {
	writer io.Writer
	close  func() error
	path   string
}

// openSink returns stdout for "" or "-", otherwise creates the file and its
// parent directories.
func openSink(path string, stdout io.Writer) (*outputSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return &outputSink{writer: stdout, close: func() error { return nil }, path: "-"}, nil
	}

	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(trimmed)
	if err != nil {
		return nil, err
	}
	return &outputSink{writer: file, close: file.Close, path: trimmed}, nil
}

// writeOutput writes rendered text to the sink, ending it with a newline.
func writeOutput(sink *outputSink, rendered string) error {
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err := io.WriteString(sink.writer, rendered)
	return err
}

func resolveOutputFormat(cmd *cobra.Command) (output.Format, error) {
	value, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return output.ParseFormat(value)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "output format: table, json, markdown, yaml")
}
