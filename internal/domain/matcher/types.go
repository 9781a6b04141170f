package matcher

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
)

// Config holds the matcher thresholds.
type Config struct {
	// SupplierCutoff is the minimum fuzzy score for the supplier-name
	// signal.
	SupplierCutoff int
	// MinNameLength skips the supplier signal entirely for candidate
	// names shorter than this; short names match everything.
	MinNameLength int
	// MinSignals is how many positive signals a record needs before it
	// can be selected at all.
	MinSignals int
	// TagCutoff is the minimum fuzzy score for account-tag
	// classification.
	TagCutoff int
	// MinTagLength skips tags shorter than this as too noisy.
	MinTagLength int
}

// DefaultConfig returns the thresholds the reconciliation pipeline has
// been tuned with.
func DefaultConfig() Config {
	return Config{
		SupplierCutoff: 55,
		MinNameLength:  5,
		MinSignals:     2,
		TagCutoff:      70,
		MinTagLength:   3,
	}
}

// Extracted carries everything a document yielded for scoring: the
// structured field values (each with a presence flag) and the full
// normalized line set for supplier-name comparison.
type Extracted struct {
	Document  string
	HasDate   bool
	Date      time.Time
	HasAmount bool
	Amount    decimal.Decimal
	Invoice   string
	Lines     []string
}

// Result is a confirmed match with its supporting evidence.
type Result struct {
	Record  *ledger.Record
	Signals []ledger.Signal
}

// Account is one row of the account list used for tag classification.
type Account struct {
	Code string
	Tags string
	Raw  map[string]string
}

// AccountMatch is the winning account for a classification query.
type AccountMatch struct {
	Account    *Account
	Tag        string
	Similarity int
}
