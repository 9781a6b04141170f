// Package csvio reads ledger export files and writes result tables.
// Exports arrive with either ';' or ',' delimiters depending on the
// source's locale, so the reader sniffs the delimiter before parsing.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a parsed delimited file: ordered rows of field -> value.
type Table struct {
	Rows      []map[string]string
	Delimiter rune
}

// ReadFile parses a delimited export. When fields is nil the first
// row (after skipRows) is taken as the header; otherwise fields names
// the columns and every remaining row is data. skipRows drops leading
// metadata lines some marketplace reports carry above the header.
// Empty or malformed files are errors; the caller decides whether to
// skip the file or abort.
func ReadFile(path string, fields []string, skipRows int) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ledger source %s: %w", path, err)
	}

	delimiter := sniffDelimiter(data, skipRows)

	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ledger source %s: %w", path, err)
	}
	if len(records) <= skipRows {
		return nil, fmt.Errorf("ledger source %s is empty", path)
	}
	records = records[skipRows:]

	header := fields
	if header == nil {
		header = records[0]
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger source %s has no data rows", path)
	}

	table := &Table{Delimiter: delimiter, Rows: make([]map[string]string, 0, len(records))}
	for _, record := range records {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// sniffDelimiter counts ';' against ',' on the first relevant line.
func sniffDelimiter(data []byte, skipRows int) rune {
	lines := strings.Split(string(data), "\n")
	if skipRows >= len(lines) {
		return ','
	}
	line := lines[skipRows]
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
