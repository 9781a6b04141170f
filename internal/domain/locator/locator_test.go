package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/cue"
)

func lineSet(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Text: text, Position: i}
	}
	return lines
}

func TestLocate_FindsExactLine(t *testing.T) {
	entries := []cue.Entry{{Parameter: "date", Cueline: "invoice date"}}
	lines := lineSet(
		"some unrelated header text",
		"invoice date 03.01.2018",
		"total 12,50 eur",
	)

	results := Locate(entries, lines)

	require.Len(t, results, 1)
	assert.Equal(t, "date", results[0].Entry.Parameter)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, 100, results[0].Similarity)
}

func TestLocate_ShortLinesNeverQualify(t *testing.T) {
	entries := []cue.Entry{{Parameter: "amount", Cueline: "total amount due"}}
	// Every line is shorter than the cueline, so the entry must be
	// absent from the result, not present with a zero score.
	lines := lineSet("total", "amount", "due now")

	results := Locate(entries, lines)

	assert.Empty(t, results)
}

func TestLocate_KeepsBestPerEntry(t *testing.T) {
	entries := []cue.Entry{{Parameter: "date", Cueline: "invoice date"}}
	lines := lineSet(
		"involved data handling notice",
		"invoice date 2018",
	)

	results := Locate(entries, lines)

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Position)
}

func TestLocate_TieKeepsFirstOccurrence(t *testing.T) {
	entries := []cue.Entry{{Parameter: "date", Cueline: "invoice date"}}
	lines := lineSet(
		"invoice date 03.01.2018",
		"invoice date 04.01.2018",
	)

	results := Locate(entries, lines)

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Position)
}

func TestLocate_OneCandidatePerEntry(t *testing.T) {
	entries := []cue.Entry{
		{Parameter: "date", Cueline: "invoice date"},
		{Parameter: "amount", Cueline: "grand total"},
	}
	lines := lineSet(
		"invoice date 03.01.2018",
		"grand total 119,00 eur",
	)

	results := Locate(entries, lines)

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Position)
	assert.Equal(t, 1, results[1].Position)
}
