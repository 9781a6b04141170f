package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile_CommaDelimited(t *testing.T) {
	path := writeTemp(t, "name,amount\nalpha,12.50\nbeta,-3.99\n")

	table, err := ReadFile(path, nil, 0)

	require.NoError(t, err)
	assert.Equal(t, ',', int32(table.Delimiter))
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "alpha", table.Rows[0]["name"])
	assert.Equal(t, "-3.99", table.Rows[1]["amount"])
}

func TestReadFile_SniffsSemicolon(t *testing.T) {
	path := writeTemp(t, "Umsatz in Euro;Buchungstext\n12,50;Rechnung 4037561\n")

	table, err := ReadFile(path, nil, 0)

	require.NoError(t, err)
	assert.Equal(t, ';', int32(table.Delimiter))
	assert.Equal(t, "Rechnung 4037561", table.Rows[0]["Buchungstext"])
}

func TestReadFile_SkipRowsWithFixedSchema(t *testing.T) {
	// Marketplace payout reports carry metadata lines above the data.
	content := strings.Join([]string{
		"report for store X",
		"period 2023-07",
		"date/time,type,total",
		"3 Jul 2023,Order,12.50",
	}, "\n")
	path := writeTemp(t, content)

	table, err := ReadFile(path, []string{"date/time", "type", "total"}, 3)

	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Order", table.Rows[0]["type"])
}

func TestReadFile_EmptyFile(t *testing.T) {
	_, err := ReadFile(writeTemp(t, ""), nil, 0)
	assert.Error(t, err)
}

func TestReadFile_HeaderOnly(t *testing.T) {
	_, err := ReadFile(writeTemp(t, "name,amount\n"), nil, 0)
	assert.Error(t, err)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), nil, 0)
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.csv")
	w := NewWriter(nil)

	rows := []map[string]string{
		{"Beleg1": "REC-2023-07000001", "Umsatz in Euro": "12,50", "ignored": "x"},
		{"Beleg1": "REC-2023-07000002"},
	}
	require.NoError(t, w.WriteFile(out, []string{"Umsatz in Euro", "Beleg1"}, rows))

	table, err := ReadFile(out, nil, 0)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "12,50", table.Rows[0]["Umsatz in Euro"])
	assert.Equal(t, "REC-2023-07000002", table.Rows[1]["Beleg1"])
	assert.Equal(t, "", table.Rows[1]["Umsatz in Euro"])
}

func TestWriteFile_EmptyRowsStillWritesHeader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.csv")
	w := NewWriter(nil)

	require.NoError(t, w.WriteFile(out, []string{"a", "b"}, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", string(data))
}
