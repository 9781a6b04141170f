// Package reconcile drives the reconciliation pipeline: ledger loading,
// document matching, account classification and result output.
//
// Matching is greedy and per-document: each document claims the best
// qualifying ledger record still unclaimed, in input-enumeration order.
// No attempt is made at a globally optimal assignment across the whole
// batch; this is a known limitation, accepted for predictability.
package reconcile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/cue"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/matcher"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/receiptid"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/csvio"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/files"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/storage"
)

// Orchestrator owns the state of one reconciliation run.
type Orchestrator struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *cue.Catalog
	matcher   *matcher.Matcher
	allocator *receiptid.Allocator
	texts     TextProvider
	writer    *csvio.Writer
	store     RunStore

	records    []ledger.Record
	used       map[int]bool
	outcomes   []ledger.MatchOutcome
	accounts   []matcher.Account
	unassigned []string
	result     Result
}

// New wires an orchestrator. store may be nil when no history database
// is configured.
func New(cfg *config.Config, logger *slog.Logger, catalog *cue.Catalog, texts TextProvider, store RunStore) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		matcher: matcher.NewMatcher(matcher.Config{
			SupplierCutoff: cfg.Matching.SupplierCutoff,
			MinNameLength:  matcher.DefaultConfig().MinNameLength,
			MinSignals:     cfg.Matching.MinSignals,
			TagCutoff:      cfg.Matching.AccountCutoff,
			MinTagLength:   matcher.DefaultConfig().MinTagLength,
		}),
		allocator: receiptid.NewAllocator(),
		texts:     texts,
		writer:    csvio.NewWriter(logger),
		store:     store,
		used:      make(map[int]bool),
	}
}

// Run executes the full pipeline and returns the tally. Only
// configuration-level failures (no ledger source at all) are returned
// as errors; per-document and per-file problems are logged and
// skipped.
func (o *Orchestrator) Run(opts Options) (*Result, error) {
	started := time.Now()
	o.result.RunID = uuid.NewString()

	o.logger.Info("Starting reconciliation", "run_id", o.result.RunID, "dry_run", opts.DryRun)

	if err := o.loadLedger(); err != nil {
		return nil, err
	}

	pdfs, err := files.WithExtension(o.cfg.Paths.ReceiptDir, ".pdf")
	if err != nil {
		return nil, fmt.Errorf("receipt directory: %w", err)
	}
	if len(pdfs) == 0 {
		o.logger.Warn("Receipt directory contains no PDF files", "path", o.cfg.Paths.ReceiptDir)
	}
	o.processDocuments(pdfs)

	o.classifyAccounts()

	if !opts.DryRun {
		if err := o.saveResults(); err != nil {
			return nil, err
		}
	}

	o.finishResult()
	o.recordHistory(started, opts)

	o.logger.Info("Reconciliation finished",
		"documents", o.result.Documents,
		"assigned", o.result.Assigned,
		"unassigned", o.result.Unassigned,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return &o.result, nil
}

func (o *Orchestrator) finishResult() {
	o.result.LedgerRows = len(o.records)
	o.result.Assigned = len(o.outcomes)
	o.result.Unassigned = len(o.unassigned)
	o.result.UnassignedDocs = o.unassigned
	o.result.Outcomes = o.outcomes
}

// recordHistory persists the run for later inspection. History is
// informational; failures only warn.
func (o *Orchestrator) recordHistory(started time.Time, opts Options) {
	if o.store == nil || opts.DryRun {
		return
	}

	run := &storage.RunRecord{
		RunID:      o.result.RunID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		LedgerRows: o.result.LedgerRows,
		Documents:  o.result.Documents,
		Assigned:   o.result.Assigned,
		Unassigned: o.result.Unassigned,
		Status:     "success",
	}
	if err := o.store.SaveRun(run); err != nil {
		o.logger.Warn("Failed to record run history", "error", err)
		return
	}
	for _, outcome := range o.outcomes {
		err := o.store.SaveMatch(&storage.MatchRecord{
			RunID:       o.result.RunID,
			Document:    outcome.Document,
			ReceiptID:   outcome.ReceiptID,
			LedgerIndex: outcome.RecordIndex,
			Signals:     outcome.SignalNames(),
			ByHint:      outcome.ByHint,
		})
		if err != nil {
			o.logger.Warn("Failed to record match history", "document", outcome.Document, "error", err)
		}
	}
}
