// Package extract pulls structured values out of the text surrounding
// a located cue field. Extraction works on a two-line window (the
// matched line plus its successor) because labels and values are
// frequently split across lines by the PDF text layer.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/locale"
)

// Kind enumerates the extractable field kinds. Dispatch is an explicit
// table from catalog parameter names, built once at package init.
type Kind int

const (
	KindDate Kind = iota
	KindAmount
	KindInvoiceNumber
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindAmount:
		return "amount"
	case KindInvoiceNumber:
		return "invoice number"
	default:
		return "unknown"
	}
}

var kindByParameter = map[string]Kind{
	"date":           KindDate,
	"amount":         KindAmount,
	"invoice number": KindInvoiceNumber,
}

// KindFor maps a cue catalog parameter name to its field kind. Catalog
// parameters with no extractor (the payment-type categories) report
// false.
func KindFor(parameter string) (Kind, bool) {
	k, ok := kindByParameter[strings.ToLower(parameter)]
	return k, ok
}

// Value is one extracted field, tagged by kind.
type Value struct {
	Kind    Kind
	Date    time.Time
	Amount  decimal.Decimal
	Invoice string
}

type extractor func(line string) (Value, bool)

var extractors = map[Kind]extractor{
	KindDate:          extractDate,
	KindAmount:        extractAmount,
	KindInvoiceNumber: extractInvoice,
}

// Extract applies the kind's pattern rules to each window line in
// order and returns the first hit. Absent values are reported with
// false, never an error; a field that cannot be read simply does not
// participate in scoring.
func Extract(kind Kind, window []string) (Value, bool) {
	run := extractors[kind]
	for _, line := range window {
		if v, ok := run(line); ok {
			return v, true
		}
	}
	return Value{}, false
}

var numericDatePattern = regexp.MustCompile(`(\d{1,4})[.\-/](\d{1,2})[.\-/](\d{1,4})`)

// extractDate scans for D.M.Y-style patterns. A two-digit first group
// reads as day-month-year, anything else as year-month-day. Calendar
// validation rejects normalized overflow, in which case scanning
// continues with the next occurrence.
func extractDate(line string) (Value, bool) {
	for _, m := range numericDatePattern.FindAllStringSubmatch(line, -1) {
		var year, month, day int
		if len(m[1]) == 2 {
			day, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
		} else {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		}
		if month < 1 || month > 12 || day < 1 {
			continue
		}
		ts := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if ts.Day() != day || ts.Month() != time.Month(month) || ts.Year() != year {
			continue
		}
		return Value{Kind: KindDate, Date: ts}, true
	}
	return Value{}, false
}

var amountPattern = regexp.MustCompile(`(-?\d[\d.,]*[.,]\d{2})\b`)

// extractAmount scans for a signed number with exactly two fraction
// digits and normalizes it through the locale decimal parser, so both
// "1.234,56" and "1,234.56" come out exact.
func extractAmount(line string) (Value, bool) {
	for _, m := range amountPattern.FindAllStringSubmatch(line, -1) {
		if amount, ok := locale.ParseDecimal(m[1]); ok {
			return Value{Kind: KindAmount, Amount: amount}, true
		}
	}
	return Value{}, false
}

var invoicePattern = regexp.MustCompile(`\b([a-zA-Z]{0,2}\d[\w-]{3,})`)

// extractInvoice scans for an alphanumeric token of at least five
// characters, optionally prefixed by one or two letters, and trims
// trailing non-digit noise (punctuation the text layer glued on).
func extractInvoice(line string) (Value, bool) {
	for _, m := range invoicePattern.FindAllStringSubmatch(line, -1) {
		token := strings.TrimRightFunc(m[1], func(r rune) bool {
			return r < '0' || r > '9'
		})
		if len(token) >= 5 {
			return Value{Kind: KindInvoiceNumber, Invoice: token}, true
		}
	}
	return Value{}, false
}
