package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	content := `
paths:
  payment_source: ./payments
  receipt_dir: ./receipts
  cuelines: ./cuelines.json
accounts:
  bank: "1200"
  sales: "8400"
  by_language:
    DE: "8401"
matching:
  trust_threshold: 85
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "./payments", cfg.Paths.PaymentSource)
	assert.Equal(t, 85, cfg.Matching.TrustThreshold)
	// Unset thresholds keep their defaults.
	assert.Equal(t, 2, cfg.Matching.MinSignals)
	assert.Equal(t, "REC", cfg.Matching.IDPrefix)
	assert.Equal(t, "8401", cfg.AccountForLanguage("DE"))
	assert.Equal(t, "8400", cfg.AccountForLanguage("XX"))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
	content := `{"paths": {"payment_source": "p", "receipt_dir": "r", "cuelines": "c"}}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "p", cfg.Paths.PaymentSource)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_MissingPaths(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.Paths.PaymentSource = "p"
	assert.Error(t, cfg.Validate())

	cfg.Paths.ReceiptDir = "r"
	cfg.Paths.Cuelines = "c"
	assert.NoError(t, cfg.Validate())
}
