package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locale"
)

// resultFields is the bookkeeping import schema, in column order.
var resultFields = []string{
	"Umsatz in Euro", "Gegenkonto", "Beleg1", "Beleg2",
	"Datum", "Konto", "Buchungstext", "Zusatzinformation",
}

const bookingDateLayout = "02.01.2006 15:04:05"

// saveResults is the final pass: the booking table, the unassigned
// list and the category report all land in the output directory.
func (o *Orchestrator) saveResults() error {
	dir := o.outputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}

	rows := make([]map[string]string, 0, len(o.outcomes))
	for i := range o.outcomes {
		rows = append(rows, o.bookingRow(&o.outcomes[i]))
	}
	if err := o.writer.WriteFile(filepath.Join(dir, "result.csv"), resultFields, rows); err != nil {
		return err
	}

	unassigned := make([]map[string]string, 0, len(o.unassigned))
	for _, name := range o.unassigned {
		unassigned = append(unassigned, map[string]string{"Document": name})
	}
	if err := o.writer.WriteFile(filepath.Join(dir, "result_unassigned.csv"), []string{"Document"}, unassigned); err != nil {
		return err
	}

	if err := o.writer.WriteText(filepath.Join(dir, "result_report.txt"), o.categoryReport()); err != nil {
		return err
	}

	o.logger.Info("Results written", "path", dir)
	return nil
}

// bookingRow renders one confirmed match in the import schema. The
// amount and date keep the ledger's locale conventions; the import
// side expects them that way.
func (o *Orchestrator) bookingRow(outcome *ledger.MatchOutcome) map[string]string {
	record := &o.records[outcome.RecordIndex]

	konto := o.cfg.Accounts.Bank
	if record.Source == ledger.SourceMarketplace || record.Source == ledger.SourceProcessor {
		konto = o.cfg.Accounts.Marketplace
	}

	return map[string]string{
		"Umsatz in Euro":    locale.FormatDecimal(record.Amount),
		"Gegenkonto":        outcome.Account,
		"Beleg1":            outcome.ReceiptID,
		"Beleg2":            record.Hint,
		"Datum":             record.Timestamp.Format(bookingDateLayout),
		"Konto":             konto,
		"Buchungstext":      record.Purpose,
		"Zusatzinformation": outcome.Document,
	}
}

// categoryReport summarizes the marketplace rows by payment-type
// category, one "label;amount" line each.
func (o *Orchestrator) categoryReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sales;%s\n", locale.FormatDecimal(o.result.TotalSales))
	fmt.Fprintf(&b, "Reimbursements;%s\n", locale.FormatDecimal(o.result.TotalReimbursements))
	fmt.Fprintf(&b, "Payouts;%s\n", locale.FormatDecimal(o.result.TotalPayouts))
	fmt.Fprintf(&b, "Fees;%s\n", locale.FormatDecimal(o.result.TotalFees))
	return b.String()
}

// outputDir resolves the configured output location, defaulting to a
// results directory next to the ledger files.
func (o *Orchestrator) outputDir() string {
	if o.cfg.Paths.OutputDir != "" {
		return o.cfg.Paths.OutputDir
	}
	return filepath.Join(o.cfg.Paths.PaymentSource, "results")
}
