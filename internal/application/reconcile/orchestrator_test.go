package reconcile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/cue"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locator"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/pdftext"
)

const testCatalog = `{
	"cues": [
		{"parameter": "date", "cuelines": ["rechnungsdatum", "invoice date"]},
		{"parameter": "amount", "cuelines": ["gesamtbetrag", "grand total"]},
		{"parameter": "invoice number", "cuelines": ["rechnungsnummer", "invoice number"]},
		{"parameter": "Payouts", "cuelines": ["Transfer"]},
		{"parameter": "Fees", "cuelines": ["Service Fee"]},
		{"parameter": "Refund", "cuelines": ["Refund"]}
	]
}`

// fakeTexts serves canned document text by base filename.
type fakeTexts struct {
	docs map[string]*pdftext.Document
}

func (f *fakeTexts) Extract(path string) (*pdftext.Document, error) {
	doc, ok := f.docs[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pdftext.ErrCorrupted, path)
	}
	return doc, nil
}

func docOf(lines ...string) *pdftext.Document {
	doc := &pdftext.Document{PageCount: 1}
	for i, text := range lines {
		doc.Lines = append(doc.Lines, locator.Line{Text: text, Position: i})
	}
	return doc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setup lays out a payment source directory, a receipt directory with
// placeholder PDF files, and a config pointing at them.
func setup(t *testing.T, ledgerCSV string, pdfNames ...string) *config.Config {
	t.Helper()
	root := t.TempDir()

	payments := filepath.Join(root, "payments")
	receipts := filepath.Join(root, "receipts")
	require.NoError(t, os.MkdirAll(payments, 0o755))
	require.NoError(t, os.MkdirAll(receipts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(payments, "processor-export.csv"), []byte(ledgerCSV), 0o644))
	for _, name := range pdfNames {
		require.NoError(t, os.WriteFile(filepath.Join(receipts, name), []byte("%PDF"), 0o644))
	}

	cfg := config.Default()
	cfg.Paths.PaymentSource = payments
	cfg.Paths.ReceiptDir = receipts
	cfg.Accounts.Bank = "1200"
	cfg.Accounts.Marketplace = "1210"
	cfg.Accounts.Sales = "8400"
	return cfg
}

const processorLedger = "Name;Gross;Date;Purpose;Note\n" +
	"ACME GmbH;123,45;03.01.2018 09:41:31 UTC;Zahlung RE20180103 Bestellung;\n" +
	"Other Corp;999,99;07.06.2019 10:00:00 UTC;Unrelated payment;\n"

func TestRunMatchesDocumentOnMultipleSignals(t *testing.T) {
	cfg := setup(t, processorLedger, "scan001.pdf")

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	texts := &fakeTexts{docs: map[string]*pdftext.Document{
		"scan001.pdf": docOf(
			"acme gmbh berlin",
			"rechnungsdatum 03.01.2018",
			"gesamtbetrag 123,45",
			"rechnungsnummer re20180103",
		),
	}}

	o := New(cfg, testLogger(), catalog, texts, nil)
	result, err := o.Run(Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.LedgerFiles)
	assert.Equal(t, 2, result.LedgerRows)
	assert.Equal(t, 1, result.Documents)
	require.Equal(t, 1, result.Assigned)
	assert.Empty(t, result.UnassignedDocs)

	outcome := result.Outcomes[0]
	assert.Equal(t, "scan001.pdf", outcome.Document)
	assert.Equal(t, "REC-2018-01000001", outcome.ReceiptID)
	assert.False(t, outcome.ByHint)
	assert.GreaterOrEqual(t, len(outcome.Signals), 3)

	// The booking table lands next to the ledger files by default.
	_, err = os.Stat(filepath.Join(cfg.Paths.PaymentSource, "results", "result.csv"))
	assert.NoError(t, err)
}

func TestRunLeavesNonMatchingDocumentUnassigned(t *testing.T) {
	cfg := setup(t, processorLedger, "scan002.pdf")

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	texts := &fakeTexts{docs: map[string]*pdftext.Document{
		"scan002.pdf": docOf(
			"somebody else entirely",
			"rechnungsdatum 24.12.2020",
			"gesamtbetrag 1,00",
		),
	}}

	o := New(cfg, testLogger(), catalog, texts, nil)
	result, err := o.Run(Options{})
	require.NoError(t, err)

	assert.Zero(t, result.Assigned)
	assert.Equal(t, []string{"scan002.pdf"}, result.UnassignedDocs)
}

func TestRunSkipsCorruptedDocuments(t *testing.T) {
	cfg := setup(t, processorLedger, "broken.pdf")

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	// No entry for broken.pdf, so extraction fails.
	o := New(cfg, testLogger(), catalog, &fakeTexts{docs: map[string]*pdftext.Document{}}, nil)
	result, err := o.Run(Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Documents)
	assert.Zero(t, result.Assigned)
	assert.Equal(t, []string{"broken.pdf"}, result.UnassignedDocs)
}

func TestRunMatchesByCorrelationHint(t *testing.T) {
	ledgerCSV := "Name;Gross;Date;Purpose;Note\n" +
		"Marketplace Settlement;55,00;15.03.2021 08:00:00 UTC;Order payout;123-4567890-1234567\n"
	cfg := setup(t, ledgerCSV, "receipt-123-4567890-1234567.pdf")

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	// The document text is empty; the filename token alone settles it.
	texts := &fakeTexts{docs: map[string]*pdftext.Document{
		"receipt-123-4567890-1234567.pdf": docOf(),
	}}

	o := New(cfg, testLogger(), catalog, texts, nil)
	result, err := o.Run(Options{})
	require.NoError(t, err)

	require.Equal(t, 1, result.Assigned)
	assert.True(t, result.Outcomes[0].ByHint)
	assert.Empty(t, result.Outcomes[0].Signals)
	assert.Equal(t, "REC-2021-03000001", result.Outcomes[0].ReceiptID)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := setup(t, processorLedger, "scan003.pdf")

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	texts := &fakeTexts{docs: map[string]*pdftext.Document{
		"scan003.pdf": docOf(
			"acme gmbh berlin",
			"rechnungsdatum 03.01.2018",
			"gesamtbetrag 123,45",
		),
	}}

	o := New(cfg, testLogger(), catalog, texts, nil)
	result, err := o.Run(Options{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Assigned)

	_, err = os.Stat(filepath.Join(cfg.Paths.PaymentSource, "results"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunClassifiesAccountsFromTagList(t *testing.T) {
	cfg := setup(t, processorLedger, "scan004.pdf")

	accountList := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, os.WriteFile(accountList,
		[]byte("code;tags\n4400;acme, hosting\n4600;shipping\n"), 0o644))
	cfg.Paths.AccountList = accountList

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	texts := &fakeTexts{docs: map[string]*pdftext.Document{
		"scan004.pdf": docOf(
			"acme gmbh berlin",
			"rechnungsdatum 03.01.2018",
			"gesamtbetrag 123,45",
			"rechnungsnummer re20180103",
		),
	}}

	o := New(cfg, testLogger(), catalog, texts, nil)
	result, err := o.Run(Options{})
	require.NoError(t, err)

	require.Equal(t, 1, result.Assigned)
	assert.Equal(t, "4400", result.Outcomes[0].Account)
}

func TestRunFailsWithoutLedgerRows(t *testing.T) {
	root := t.TempDir()
	payments := filepath.Join(root, "payments")
	require.NoError(t, os.MkdirAll(payments, 0o755))

	cfg := config.Default()
	cfg.Paths.PaymentSource = payments
	cfg.Paths.ReceiptDir = payments

	catalog, err := cue.Parse([]byte(testCatalog))
	require.NoError(t, err)

	o := New(cfg, testLogger(), catalog, &fakeTexts{}, nil)
	_, err = o.Run(Options{})
	assert.Error(t, err)
}
