package reconcile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locale"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/csvio"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/files"
)

// marketplaceSchema is the fixed column set of marketplace payout
// reports, which hide it below several metadata lines instead of
// carrying a usable header row.
var marketplaceSchema = []string{
	"date/time", "settlement id", "type", "order id", "sku", "description",
	"quantity", "marketplace", "fulfilment", "order city", "order state",
	"order postal", "tax collection model", "product sales",
	"product sales tax", "postage credits", "shipping credits tax",
	"gift wrap credits", "giftwrap credits tax", "promotional rebates",
	"promotional rebates tax", "marketplace withheld tax", "selling fees",
	"fba fees", "other transaction fees", "other", "total",
}

// resultFilePattern skips our own output files when the output
// directory overlaps the source directory.
var resultFilePattern = regexp.MustCompile(`^result.*\.csv$`)

// columnAliases maps normalized record fields to the column names the
// different export dialects use, in priority order.
var columnAliases = map[string][]string{
	"amount":       {"amount", "total", "gross", "brutto", "betrag", "umsatz in euro"},
	"purpose":      {"purpose", "description", "subject", "betreff", "verwendungszweck", "buchungstext"},
	"counterparty": {"counterparty", "name", "payee", "auftraggeber/empfaenger", "beguenstigter/zahlungspflichtiger"},
	"timestamp":    {"date/time", "date", "datum", "buchungstag"},
	"hint":         {"note", "order id", "zusatzinformation", "reference"},
}

// loadLedger is the first pass: enumerate and normalize every ledger
// CSV under the payment source. Unreadable files are skipped with a
// log line; having no usable ledger rows at all is fatal.
func (o *Orchestrator) loadLedger() error {
	paths, err := files.WithExtension(o.cfg.Paths.PaymentSource, ".csv")
	if err != nil {
		return fmt.Errorf("payment source: %w", err)
	}

	for _, path := range paths {
		name := filepath.Base(path)
		if resultFilePattern.MatchString(name) {
			o.logger.Debug("Skipping result file", "file", name)
			continue
		}

		table, source, err := o.readLedgerFile(path)
		if err != nil {
			o.logger.Warn("Skipping unreadable ledger file", "file", name, "error", err)
			o.result.SkippedFiles++
			continue
		}

		loaded := 0
		for _, row := range table.Rows {
			record, err := o.normalizeRow(row, source, path)
			if err != nil {
				o.logger.Debug("Skipping ledger row", "file", name, "error", err)
				continue
			}
			o.records = append(o.records, record)
			loaded++
		}

		o.result.LedgerFiles++
		o.logger.Info("Loaded ledger file", "file", name, "source", source.String(), "rows", loaded)
	}

	if len(o.records) == 0 {
		return fmt.Errorf("no usable ledger rows found under %s", o.cfg.Paths.PaymentSource)
	}
	return nil
}

// readLedgerFile parses one export and classifies its source type.
// Files whose header is unrecognizable are re-read as marketplace
// payout reports, which bury their header under metadata lines.
func (o *Orchestrator) readLedgerFile(path string) (*csvio.Table, ledger.SourceType, error) {
	table, err := csvio.ReadFile(path, nil, 0)
	if err == nil {
		if source, ok := classifySource(table.Rows[0]); ok {
			return table, source, nil
		}
	}

	table, retryErr := csvio.ReadFile(path, marketplaceSchema, o.cfg.Matching.SkipRows)
	if retryErr != nil {
		if err != nil {
			return nil, 0, err
		}
		return nil, 0, retryErr
	}
	return table, ledger.SourceMarketplace, nil
}

// classifySource inspects which columns a row carries.
func classifySource(row map[string]string) (ledger.SourceType, bool) {
	has := func(key string) bool {
		for k := range row {
			if strings.EqualFold(strings.TrimSpace(k), key) {
				return true
			}
		}
		return false
	}

	switch {
	case has("order id") && has("date/time"):
		return ledger.SourceMarketplace, true
	case has("gross") || has("brutto") || has("note"):
		return ledger.SourceProcessor, true
	case has("amount") || has("betrag") || has("verwendungszweck"):
		return ledger.SourceBank, true
	default:
		return 0, false
	}
}

// normalizeRow converts a raw export row into a ledger record. A
// missing amount column skips the row; an unparseable amount or date
// degrades to the safe default with a warning.
func (o *Orchestrator) normalizeRow(row map[string]string, source ledger.SourceType, path string) (ledger.Record, error) {
	amountRaw, ok := lookupAlias(row, "amount")
	if !ok || strings.TrimSpace(amountRaw) == "" {
		return ledger.Record{}, fmt.Errorf("row has no amount column")
	}
	amount, parsed := locale.ParseDecimal(amountRaw)
	if !parsed {
		o.logger.Warn("Can't parse amount, using zero", "file", filepath.Base(path), "value", amountRaw)
		amount = decimal.Zero
	}

	timestamp := locale.Sentinel
	if raw, ok := lookupAlias(row, "timestamp"); ok {
		ts, parsed := locale.ParseDateTime(raw)
		if !parsed {
			o.logger.Warn("Can't parse timestamp, using sentinel", "file", filepath.Base(path), "value", raw)
		}
		timestamp = ts
	}

	purpose, _ := lookupAlias(row, "purpose")
	counterparty, _ := lookupAlias(row, "counterparty")
	hint, _ := lookupAlias(row, "hint")

	record := ledger.Record{
		Index:        len(o.records),
		Source:       source,
		File:         filepath.Base(path),
		Amount:       amount,
		Purpose:      purpose,
		Counterparty: counterparty,
		Timestamp:    timestamp,
		Hint:         hint,
		Raw:          row,
	}

	o.tallyMarketplaceRow(record)
	return record, nil
}

// lookupAlias finds the first aliased column present in the row,
// case-insensitively.
func lookupAlias(row map[string]string, field string) (string, bool) {
	for _, alias := range columnAliases[field] {
		for key, value := range row {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return strings.TrimSpace(value), true
			}
		}
	}
	return "", false
}

// tallyMarketplaceRow accumulates the report totals by payment-type
// category. Categories live in the cue catalog next to the field
// cuelines.
func (o *Orchestrator) tallyMarketplaceRow(record ledger.Record) {
	if record.Source != ledger.SourceMarketplace {
		return
	}
	paymentType := record.Raw["type"]

	switch {
	case o.catalog.Contains("Payouts", paymentType):
		o.result.TotalPayouts = o.result.TotalPayouts.Add(record.Amount)
	case o.catalog.Contains("Fees", paymentType):
		o.result.TotalFees = o.result.TotalFees.Add(record.Amount)
	case o.catalog.Contains("Refund", paymentType):
		o.result.TotalReimbursements = o.result.TotalReimbursements.Add(record.Amount)
	default:
		o.result.TotalSales = o.result.TotalSales.Add(record.Amount)
	}
}
