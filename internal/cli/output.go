package cli

import (
	"fmt"
	"strings"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/application/reconcile"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/storage"
)

// PrintHeader prints the application header
func PrintHeader(dryRun bool) {
	mode := "PRODUCTION"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("reconcile: document-to-ledger matching (%s mode)\n", mode)
}

// PrintConfiguration echoes the effective input locations.
func PrintConfiguration(cfg *config.Config) {
	fmt.Printf("Payments: %s | Receipts: %s", cfg.Paths.PaymentSource, cfg.Paths.ReceiptDir)
	if cfg.Paths.AccountList != "" {
		fmt.Printf(" | Accounts: %s", cfg.Paths.AccountList)
	}
	fmt.Print("\n\n")
}

// PrintSummary prints the run result summary.
func PrintSummary(result *reconcile.Result, store *storage.Storage, dryRun bool) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Documents=%d Assigned=%d Unassigned=%d LedgerRows=%d\n",
		result.Documents,
		result.Assigned,
		result.Unassigned,
		result.LedgerRows)

	fmt.Printf("Marketplace totals: Sales=%s Reimbursements=%s Payouts=%s Fees=%s\n",
		result.TotalSales.StringFixed(2),
		result.TotalReimbursements.StringFixed(2),
		result.TotalPayouts.StringFixed(2),
		result.TotalFees.StringFixed(2))

	if len(result.UnassignedDocs) > 0 {
		fmt.Println("\nUnassigned documents:")
		for _, name := range result.UnassignedDocs {
			fmt.Printf("  - %s\n", name)
		}
	}

	// All-time totals from the history database.
	if store != nil {
		stats, _ := store.GetStats()
		if stats != nil && stats.TotalRuns > 0 {
			assignRate := 0.0
			if stats.TotalDocuments > 0 {
				assignRate = float64(stats.TotalAssigned) / float64(stats.TotalDocuments) * 100
			}
			fmt.Printf("\nAll-Time Stats: Runs=%d Documents=%d Assigned=%d Rate=%.1f%%\n",
				stats.TotalRuns,
				stats.TotalDocuments,
				stats.TotalAssigned,
				assignRate)
		}
	}

	if !dryRun && result.Assigned > 0 {
		fmt.Println("\nReconciliation completed successfully.")
	}
}
