package cli

import (
	"flag"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
)

// Flags are the command-line options of the reconcile command.
type Flags struct {
	ConfigFile string
	Payments   string
	Receipts   string
	Accounts   string
	Cuelines   string
	Output     string
	Database   string
	DryRun     bool
	Verbose    bool
}

// ParseFlags parses the command line.
func ParseFlags() Flags {
	var flags Flags
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Payments, "payments", "", "Ledger export directory or file")
	flag.StringVar(&flags.Receipts, "receipts", "", "Receipt PDF directory or file")
	flag.StringVar(&flags.Accounts, "accounts", "", "Account list CSV")
	flag.StringVar(&flags.Cuelines, "cuelines", "", "Cueline catalog JSON")
	flag.StringVar(&flags.Output, "output", "", "Result output directory")
	flag.StringVar(&flags.Database, "database", "", "Run history database path")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Run without writing results")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// Apply overlays non-empty flag values onto the configuration. Flags
// win over the config file.
func (f Flags) Apply(cfg *config.Config) {
	if f.Payments != "" {
		cfg.Paths.PaymentSource = f.Payments
	}
	if f.Receipts != "" {
		cfg.Paths.ReceiptDir = f.Receipts
	}
	if f.Accounts != "" {
		cfg.Paths.AccountList = f.Accounts
	}
	if f.Cuelines != "" {
		cfg.Paths.Cuelines = f.Cuelines
	}
	if f.Output != "" {
		cfg.Paths.OutputDir = f.Output
	}
	if f.Database != "" {
		cfg.Paths.DatabasePath = f.Database
	}
	if f.Verbose {
		cfg.Logging.Level = "debug"
	}
}
