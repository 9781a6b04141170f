// Package pdftext extracts and normalizes text lines from receipt
// PDFs via MuPDF. Normalization matters more than extraction quality
// here: the fuzzy locator works on lowercase, whitespace-collapsed
// lines, and very short fragments only add similarity noise.
package pdftext

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locator"
)

// ErrCorrupted marks a document MuPDF could not open or render. The
// pipeline skips such documents and keeps going.
var ErrCorrupted = errors.New("corrupted document")

// DefaultMinLineLength drops lines shorter than this many characters.
const DefaultMinLineLength = 5

// Document is the extracted, normalized text of one PDF.
type Document struct {
	Lines     []locator.Line
	PageCount int
}

// Provider turns PDF files into normalized line sets.
type Provider struct {
	minLineLength int
}

// NewProvider creates a provider. minLineLength <= 0 selects the
// default.
func NewProvider(minLineLength int) *Provider {
	if minLineLength <= 0 {
		minLineLength = DefaultMinLineLength
	}
	return &Provider{minLineLength: minLineLength}
}

// Extract opens the PDF and returns its normalized lines in top-to-
// bottom order, positions continuing across page breaks. Failures wrap
// ErrCorrupted.
func (p *Provider) Extract(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, path, err)
	}
	defer doc.Close()

	result := &Document{PageCount: doc.NumPage()}
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %v", ErrCorrupted, path, page, err)
		}
		for _, line := range NormalizeText(text, p.minLineLength) {
			result.Lines = append(result.Lines, locator.Line{
				Text:     line,
				Position: len(result.Lines),
			})
		}
	}
	return result, nil
}
