// Package config provides centralized configuration management.
//
// Configuration is loaded from a YAML or JSON file; command-line flags
// override individual paths afterwards. Account codes map ledger
// categories (sales, fees, payouts) and storefront languages to the
// bookkeeping accounts the results are posted against.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" json:"paths"`
	Accounts AccountsConfig `yaml:"accounts" json:"accounts"`
	Matching MatchingConfig `yaml:"matching" json:"matching"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// PathsConfig holds every input and output location.
type PathsConfig struct {
	PaymentSource string `yaml:"payment_source" json:"payment_source"`
	ReceiptDir    string `yaml:"receipt_dir" json:"receipt_dir"`
	AccountList   string `yaml:"account_list" json:"account_list"`
	Cuelines      string `yaml:"cuelines" json:"cuelines"`
	OutputDir     string `yaml:"output_dir" json:"output_dir"`
	DatabasePath  string `yaml:"database_path" json:"database_path"`
}

// AccountsConfig maps ledger categories and storefront languages to
// bookkeeping account codes.
type AccountsConfig struct {
	Bank        string            `yaml:"bank" json:"bank"`
	Marketplace string            `yaml:"marketplace" json:"marketplace"`
	Sales       string            `yaml:"sales" json:"sales"`
	ByLanguage  map[string]string `yaml:"by_language" json:"by_language"`
}

// MatchingConfig holds the reconciliation thresholds.
type MatchingConfig struct {
	// TrustThreshold is the minimum locator similarity before a cue
	// candidate drives field extraction.
	TrustThreshold int `yaml:"trust_threshold" json:"trust_threshold"`
	SupplierCutoff int `yaml:"supplier_cutoff" json:"supplier_cutoff"`
	MinSignals     int `yaml:"min_signals" json:"min_signals"`
	AccountCutoff  int `yaml:"account_cutoff" json:"account_cutoff"`
	MinLineLength  int `yaml:"min_line_length" json:"min_line_length"`
	// SkipRows drops metadata lines above marketplace report headers.
	SkipRows int `yaml:"skip_rows" json:"skip_rows"`
	// IDPrefix is stamped onto allocated receipt identifiers.
	IDPrefix string `yaml:"id_prefix" json:"id_prefix"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns a configuration with every threshold at its tuned
// value and no paths set.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			TrustThreshold: 90,
			SupplierCutoff: 55,
			MinSignals:     2,
			AccountCutoff:  70,
			MinLineLength:  5,
			SkipRows:       8,
			IDPrefix:       "REC",
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML (or JSON; YAML is a superset) configuration file
// over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the mandatory inputs are configured.
func (c *Config) Validate() error {
	if c.Paths.PaymentSource == "" {
		return fmt.Errorf("payment_source is required")
	}
	if c.Paths.ReceiptDir == "" {
		return fmt.Errorf("receipt_dir is required")
	}
	if c.Paths.Cuelines == "" {
		return fmt.Errorf("cuelines is required")
	}
	return nil
}

// AccountForLanguage returns the per-storefront account code, falling
// back to the sales account for unknown languages.
func (c *Config) AccountForLanguage(lang string) string {
	if code, ok := c.Accounts.ByLanguage[lang]; ok {
		return code
	}
	return c.Accounts.Sales
}
