package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/storage"
)

func main() {
	var (
		dbPath     string
		configFile string
		runID      string
		limit      int
	)
	flag.StringVar(&dbPath, "db", "", "Path to history database (uses config if not specified)")
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.StringVar(&runID, "run", "", "Show the assignments of one run")
	flag.IntVar(&limit, "limit", 10, "Number of recent runs to show")
	flag.Parse()

	if dbPath == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			log.Printf("Warning: Failed to load config: %v", err)
			dbPath = "reconcile.db"
		} else {
			dbPath = cfg.Paths.DatabasePath
			if dbPath == "" {
				dbPath = "reconcile.db"
			}
		}
	}

	store, err := storage.NewStorage(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	fmt.Println("RECONCILIATION RUN HISTORY")
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Printf("Database: %s\n", dbPath)
	fmt.Printf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	if runID != "" {
		printRun(store, runID)
		return
	}

	printStats(store)
	printRecentRuns(store, limit)
}

func printStats(store *storage.Storage) {
	stats, err := store.GetStats()
	if err != nil {
		log.Printf("Error getting stats: %v", err)
		return
	}

	assignRate := 0.0
	if stats.TotalDocuments > 0 {
		assignRate = float64(stats.TotalAssigned) / float64(stats.TotalDocuments) * 100
	}

	fmt.Println("OVERALL STATISTICS")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Total Runs: %d\n", stats.TotalRuns)
	fmt.Printf("Documents Processed: %d\n", stats.TotalDocuments)
	fmt.Printf("Assigned: %d (%.1f%%)\n", stats.TotalAssigned, assignRate)
	fmt.Printf("Unassigned: %d\n", stats.TotalUnassigned)
	fmt.Println()
}

func printRecentRuns(store *storage.Storage, limit int) {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		log.Printf("Error listing runs: %v", err)
		return
	}

	fmt.Println("RECENT RUNS")
	fmt.Println(strings.Repeat("-", 40))
	for _, run := range runs {
		fmt.Printf("%s  %s  docs=%d assigned=%d unassigned=%d (%s)\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.RunID,
			run.Documents,
			run.Assigned,
			run.Unassigned,
			run.Status,
		)
	}
}

func printRun(store *storage.Storage, runID string) {
	matches, err := store.MatchesForRun(runID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("ASSIGNMENTS FOR RUN %s\n", runID)
	fmt.Println(strings.Repeat("-", 40))
	if len(matches) == 0 {
		fmt.Println("No assignments recorded.")
		return
	}
	for _, m := range matches {
		via := strings.Join(m.Signals, ",")
		if m.ByHint {
			via = "hint"
		}
		fmt.Printf("%s  %s  ledger_row=%d via=%s\n", m.ReceiptID, m.Document, m.LedgerIndex, via)
	}
}
