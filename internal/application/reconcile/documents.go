package reconcile

import (
	"path/filepath"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/extract"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locator"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/matcher"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/files"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/pdftext"
)

// processDocuments is the second pass: every receipt either claims a
// ledger record or lands on the unassigned list. A corrupted PDF is
// logged and counted unassigned; it never aborts the batch.
func (o *Orchestrator) processDocuments(paths []string) {
	for _, path := range paths {
		name := filepath.Base(path)
		o.result.Documents++

		doc, err := o.texts.Extract(path)
		if err != nil {
			o.logger.Warn("Skipping unreadable document", "document", name, "error", err)
			o.unassigned = append(o.unassigned, name)
			continue
		}

		if o.matchByHint(name) {
			continue
		}

		extracted := o.extractFields(name, doc)
		result := o.matcher.FindMatch(extracted, o.records, o.used)
		if result == nil {
			o.logger.Info("No qualifying ledger record", "document", name)
			o.unassigned = append(o.unassigned, name)
			continue
		}

		o.confirm(name, result.Record, result.Signals, false)
	}
}

// matchByHint tries the correlation-token shortcut. A filename-embedded
// order number that equals a processor or marketplace record's hint
// settles the match without any scoring.
func (o *Orchestrator) matchByHint(name string) bool {
	token := files.CorrelationHint(name)
	if token == "" {
		return false
	}
	record := o.matcher.FindByHint(token, o.records)
	if record == nil || o.used[record.Index] {
		return false
	}
	o.logger.Debug("Matched by correlation hint", "document", name, "hint", token)
	o.confirm(name, record, nil, true)
	return true
}

// extractFields locates each catalog cueline in the document and pulls
// structured values from a two-line window at every trusted location.
// Catalog entries without an extractor (the payment-type categories)
// are carried by the locator but yield no values here.
func (o *Orchestrator) extractFields(name string, doc *pdftext.Document) matcher.Extracted {
	extracted := matcher.Extracted{Document: name}
	for _, line := range doc.Lines {
		extracted.Lines = append(extracted.Lines, line.Text)
	}

	for _, candidate := range locator.Locate(o.catalog.Entries(), doc.Lines) {
		if candidate.Similarity < o.cfg.Matching.TrustThreshold {
			o.logger.Debug("Cue location below trust threshold",
				"document", name,
				"cueline", candidate.Entry.Cueline,
				"similarity", candidate.Similarity,
			)
			continue
		}
		kind, ok := extract.KindFor(candidate.Entry.Parameter)
		if !ok {
			continue
		}

		value, ok := extract.Extract(kind, o.window(doc, candidate.Position))
		if !ok {
			o.logger.Debug("Cue located but value not extractable",
				"document", name, "field", kind.String(), "line", candidate.Line)
			continue
		}

		switch value.Kind {
		case extract.KindDate:
			extracted.HasDate = true
			extracted.Date = value.Date
		case extract.KindAmount:
			extracted.HasAmount = true
			extracted.Amount = value.Amount
		case extract.KindInvoiceNumber:
			extracted.Invoice = value.Invoice
		}
	}

	return extracted
}

// window returns the located line plus its successor. Labels and
// values are frequently split across adjacent lines by the PDF text
// layer, so one line alone misses too many values.
func (o *Orchestrator) window(doc *pdftext.Document, position int) []string {
	window := []string{doc.Lines[position].Text}
	if position+1 < len(doc.Lines) {
		window = append(window, doc.Lines[position+1].Text)
	}
	return window
}

// confirm claims the record for the document, allocates its receipt
// identifier and records the outcome. Claimed records are excluded
// from every later document's candidate set.
func (o *Orchestrator) confirm(name string, record *ledger.Record, signals []ledger.Signal, byHint bool) {
	receiptID := o.allocator.Next(o.cfg.Matching.IDPrefix, record.Timestamp)
	o.used[record.Index] = true
	o.outcomes = append(o.outcomes, ledger.MatchOutcome{
		RecordIndex: record.Index,
		Document:    name,
		Signals:     signals,
		ReceiptID:   receiptID,
		ByHint:      byHint,
	})
	o.logger.Info("Matched document",
		"document", name,
		"receipt_id", receiptID,
		"signals", len(signals),
		"by_hint", byHint,
	)
}
