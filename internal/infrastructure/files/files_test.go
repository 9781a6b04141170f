package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"payments-DE_2023.csv", "DE"},
		{"payments_fr.csv", "FR"},
		{"2023-07-payments-ES.report.csv", "ES"},
		{"payments.csv", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LanguageCode(tt.name), tt.name)
	}
}

func TestCorrelationHint(t *testing.T) {
	assert.Equal(t, "302-1234567-7654321", CorrelationHint("receipt_302-1234567-7654321.pdf"))
	assert.Equal(t, "", CorrelationHint("receipt-july.pdf"))
	// Partial patterns must not match.
	assert.Equal(t, "", CorrelationHint("receipt_302-12345.pdf"))
}

func TestAccountNumber(t *testing.T) {
	assert.Equal(t, "12345", AccountNumber("export-acc12345.csv"))
	assert.Equal(t, "0123", AccountNumber("Account_0123-july.csv"))
	assert.Equal(t, "", AccountNumber("export.csv"))
}

func TestWithExtension_Directory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.csv", "b.txt", filepath.Join("nested", "c.csv")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	found, err := WithExtension(dir, ".csv")

	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestWithExtension_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	found, err := WithExtension(path, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, found)

	_, err = WithExtension(path, ".pdf")
	assert.Error(t, err)
}

func TestWithExtension_Missing(t *testing.T) {
	_, err := WithExtension(filepath.Join(t.TempDir(), "nope"), ".csv")
	assert.Error(t, err)
}
