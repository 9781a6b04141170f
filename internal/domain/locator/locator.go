// Package locator finds, for each cueline in the catalog, the document
// line most similar to it. Similarity is an order-insensitive token-set
// ratio (0-100), so "rechnungsdatum: 03.01.2018" still scores high
// against the cueline "rechnungsdatum".
package locator

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/cue"
)

// Line is one normalized document line with its 0-based position in
// the document's top-to-bottom order.
type Line struct {
	Text     string
	Position int
}

// Candidate is the best-scoring line for one catalog entry.
type Candidate struct {
	Entry      cue.Entry
	Line       string
	Similarity int
	Position   int
}

// Locate scans every document line for every catalog entry and keeps
// the single best candidate per entry. A line qualifies only when it is
// at least as long as the cueline; shorter lines cannot contain a
// meaningful match and only add noise. Entries with no qualifying line
// are absent from the result. Ties keep the first occurrence.
//
// O(entries x lines), which is fine: documents run to a few hundred
// lines and catalogs to a few dozen phrases.
func Locate(entries []cue.Entry, lines []Line) []Candidate {
	results := make([]Candidate, 0, len(entries))

	for _, entry := range entries {
		best := Candidate{Similarity: -1}
		for _, line := range lines {
			if len(line.Text) < len(entry.Cueline) {
				continue
			}
			similarity := fuzzy.TokenSetRatio(entry.Cueline, line.Text)
			if similarity > best.Similarity {
				best = Candidate{
					Entry:      entry,
					Line:       line.Text,
					Similarity: similarity,
					Position:   line.Position,
				}
			}
		}
		if best.Similarity >= 0 {
			results = append(results, best)
		}
	}

	return results
}
