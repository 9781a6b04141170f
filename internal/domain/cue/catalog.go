// Package cue loads the cueline catalog: reference phrases describing
// how labeled fields ("date", "amount", "invoice number") and payment
// type categories are worded on source documents. The catalog is the
// fuzzy-matching target set for the line locator.
package cue

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry pairs one reference phrase with the field it identifies.
type Entry struct {
	Parameter string
	Cueline   string
}

// Catalog is the loaded cueline set. Read-only after Load.
type Catalog struct {
	phrases map[string][]string
	entries []Entry
}

type catalogFile struct {
	Cues []struct {
		Parameter string   `json:"parameter"`
		Cuelines  []string `json:"cuelines"`
	} `json:"cues"`
}

// Load reads the catalog from a JSON file of the shape
// {"cues": [{"parameter": ..., "cuelines": [...]}]}. The catalog is
// mandatory; a missing or malformed file is an error the caller treats
// as fatal.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cueline catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON. Split from Load so tests can feed
// literals.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cueline catalog is not valid JSON: %w", err)
	}

	c := &Catalog{phrases: make(map[string][]string, len(file.Cues))}
	for _, cue := range file.Cues {
		c.phrases[cue.Parameter] = append(c.phrases[cue.Parameter], cue.Cuelines...)
		for _, line := range cue.Cuelines {
			c.entries = append(c.entries, Entry{Parameter: cue.Parameter, Cueline: line})
		}
	}
	return c, nil
}

// Phrases returns the reference phrases registered for a parameter, in
// catalog order.
func (c *Catalog) Phrases(parameter string) []string {
	return c.phrases[parameter]
}

// Entries returns every (parameter, cueline) pair in catalog order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Contains reports whether value appears among the phrases of a
// parameter. Used for payment-type category membership ("Payouts",
// "Fees", "Refund" hold the marketplace's type strings).
func (c *Catalog) Contains(parameter, value string) bool {
	for _, phrase := range c.phrases[parameter] {
		if strings.EqualFold(phrase, value) {
			return true
		}
	}
	return false
}
