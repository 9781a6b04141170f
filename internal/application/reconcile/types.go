package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/pdftext"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/storage"
)

// Options control one reconciliation run.
type Options struct {
	// DryRun runs the full pipeline but writes no result files and
	// records no history.
	DryRun bool
}

// Result is the final tally of one run.
type Result struct {
	RunID          string
	LedgerFiles    int
	SkippedFiles   int
	LedgerRows     int
	Documents      int
	Assigned       int
	Unassigned     int
	UnassignedDocs []string
	Outcomes       []ledger.MatchOutcome

	// Marketplace category totals for the report.
	TotalSales          decimal.Decimal
	TotalReimbursements decimal.Decimal
	TotalPayouts        decimal.Decimal
	TotalFees           decimal.Decimal
}

// TextProvider supplies normalized document text. *pdftext.Provider is
// the production implementation; tests substitute an in-memory one.
type TextProvider interface {
	Extract(path string) (*pdftext.Document, error)
}

// RunStore records run history. *storage.Storage is the production
// implementation.
type RunStore interface {
	SaveRun(*storage.RunRecord) error
	SaveMatch(*storage.MatchRecord) error
}
