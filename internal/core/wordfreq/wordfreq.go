// Package wordfreq provides Zipf-scale word frequencies for judging whether a
// token is a common word.
package wordfreq

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mozillazg/go-unidecode"
)

//go:embed data/en_zipf.tsv
var embeddedTSV []byte

// Table maps folded words to their Zipf score. A Table is read-only after
// loading and safe for concurrent use.
type Table struct {
	scores map[string]float64
}

// Zipf returns the score for word, or 0 when unknown. Lookups are case and
// accent insensitive.
func (t *Table) Zipf(word string) float64 {
	if t == nil {
		return 0
	}
	return t.scores[fold(word)]
}

// Available reports whether the table holds any words.
func (t *Table) Available() bool {
	return t != nil && len(t.scores) > 0
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scores)
}

var (
	embeddedOnce  sync.Once
	embeddedTable *Table
)

// Embedded returns the built-in English table, parsed on first use.
func Embedded() *Table {
	embeddedOnce.Do(func() {
		t, err := Load(bytes.NewReader(embeddedTSV))
		if err != nil {
			panic(fmt.Sprintf("wordfreq: embedded table: %v", err))
		}
		embeddedTable = t
	})
	return embeddedTable
}

// LoadFile reads a table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided frequency table
	if err != nil {
		return nil, fmt.Errorf("open frequency table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load parses "word<TAB>zipf" lines. Blank lines and lines starting with '#'
// are skipped. Later duplicates keep the higher score.
func Load(r io.Reader) (*Table, error) {
	scores := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected word and zipf score", line)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid zipf score %q", line, fields[1])
		}
		if score < 0 {
			return nil, fmt.Errorf("line %d: negative zipf score", line)
		}
		word := fold(fields[0])
		if word == "" {
			continue
		}
		if existing, ok := scores[word]; !ok || score > existing {
			scores[word] = score
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frequency table: %w", err)
	}
	return &Table{scores: scores}, nil
}

func fold(word string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(word)))
}
