// Package ledger defines the normalized transaction model shared by
// every ledger source (bank transfer exports, payment-processor
// activity, marketplace payout reports) plus the outcome records the
// reconciliation pass produces. Records stay immutable as loaded;
// results live in separate MatchOutcome values that reference a record
// by index, so nothing mutates under an alias.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies which kind of export a record was loaded from.
// The matcher's direct-hint shortcut only scans non-bank sources; bank
// rows never carry processor correlation tokens.
type SourceType int

const (
	SourceBank SourceType = iota
	SourceProcessor
	SourceMarketplace
)

func (s SourceType) String() string {
	switch s {
	case SourceBank:
		return "bank"
	case SourceProcessor:
		return "processor"
	case SourceMarketplace:
		return "marketplace"
	default:
		return "unknown"
	}
}

// Record is one normalized ledger row. Raw keeps the original CSV
// columns for result output.
type Record struct {
	Index        int
	Source       SourceType
	File         string
	Amount       decimal.Decimal
	Purpose      string
	Counterparty string
	Timestamp    time.Time
	// Hint is a pre-existing correlation key, e.g. the processor's
	// note field carrying a marketplace order number.
	Hint string
	Raw  map[string]string
}

// Signal names one piece of evidence that a document belongs to a
// record.
type Signal string

const (
	SignalSupplier Signal = "supplier"
	SignalDate     Signal = "date"
	SignalAmount   Signal = "amount"
	SignalInvoice  Signal = "invoice_number"
)

// MatchOutcome pairs a confirmed document with the ledger record it
// was reconciled to.
type MatchOutcome struct {
	RecordIndex int
	Document    string
	Signals     []Signal
	ReceiptID   string
	// ByHint marks matches confirmed through the correlation-hint
	// shortcut, outside the signal scoring system.
	ByHint  bool
	Account string
}

// SignalNames renders the signal list for reports and logs.
func (o MatchOutcome) SignalNames() []string {
	names := make([]string, len(o.Signals))
	for i, s := range o.Signals {
		names[i] = string(s)
	}
	return names
}
