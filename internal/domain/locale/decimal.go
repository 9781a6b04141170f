// Package locale parses amounts and timestamps as they appear in
// European marketplace and payment-processor exports: comma decimal
// separators, thousands grouping, and month names in half a dozen
// languages.
package locale

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// groupedAmount matches the European thousands-grouped form, e.g.
// "-123.456,78" or "1 234,56": sign, up to 3 digits, one grouping
// character, exactly 3 digits, comma, exactly 2 fraction digits.
var groupedAmount = regexp.MustCompile(`^(-?)(\d{1,3})[^\d](\d{3}),(\d{2})`)

// ParseDecimal parses a free-form price string into an exact decimal.
// It first tries the thousands-grouped European form; otherwise commas
// are treated as decimal points. Returns decimal.Zero and false when
// the input has no recognizable numeric form.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	var canonical string
	if m := groupedAmount.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		canonical = m[1] + m[2] + m[3] + "." + m[4]
	} else {
		canonical = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	}

	result, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, false
	}
	return result, true
}

// FormatDecimal renders a decimal with a comma decimal separator, the
// form the bookkeeping import expects.
func FormatDecimal(d decimal.Decimal) string {
	return strings.ReplaceAll(d.String(), ".", ",")
}
