package csvio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
)

// Writer persists result tables in the ';'-delimited form the
// bookkeeping import expects.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a result writer. A nil logger falls back to the
// default.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WriteFile writes rows in the given field order, header first.
// Columns absent from a row stay empty; row keys outside fieldOrder
// are ignored. An empty row set still produces a header-only file,
// with a warning.
func (w *Writer) WriteFile(path string, fieldOrder []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = ';'
	defer cw.Flush()

	if err := cw.Write(fieldOrder); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}

	if len(rows) == 0 {
		w.logger.Warn("Resulting file is empty", "path", path)
	}

	record := make([]string, len(fieldOrder))
	for _, row := range rows {
		for i, field := range fieldOrder {
			record[i] = row[field]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteText writes a plain text report file.
func (w *Writer) WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
