package wordfreq

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedTable(t *testing.T) {
	table := Embedded()
	require.True(t, table.Available())
	require.Greater(t, table.Len(), 500)

	require.GreaterOrEqual(t, table.Zipf("company"), 2.0)
	require.GreaterOrEqual(t, table.Zipf("Management"), 2.0)
	require.GreaterOrEqual(t, table.Zipf("LONDON"), 2.0)
	require.Zero(t, table.Zipf("xqzvbk"))
	require.Same(t, table, Embedded())
}

func TestLoad(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"Café\t3.5",
		"alpha 4.1",
		"alpha\t2.0",
	}, "\n")

	table, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	require.InDelta(t, 3.5, table.Zipf("cafe"), 0.001)
	require.InDelta(t, 3.5, table.Zipf("CAFÉ"), 0.001)
	require.InDelta(t, 4.1, table.Zipf("alpha"), 0.001)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("word\n"))
	require.ErrorContains(t, err, "line 1")

	_, err = Load(strings.NewReader("# header\nword\tabc\n"))
	require.ErrorContains(t, err, "line 2")

	_, err = Load(strings.NewReader("word\t-1\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freq.tsv")
	require.NoError(t, os.WriteFile(path, []byte("vanguard\t3.2\n"), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.InDelta(t, 3.2, table.Zipf("Vanguard"), 0.001)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
}

func TestEmptyTable(t *testing.T) {
	var table *Table
	require.False(t, table.Available())
	require.Zero(t, table.Zipf("company"))

	empty, err := Load(strings.NewReader("# nothing\n"))
	require.NoError(t, err)
	require.False(t, empty.Available())
}
