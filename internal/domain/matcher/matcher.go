// Package matcher decides which ledger record a document belongs to.
//
// Two paths exist. When the document carries an explicit correlation
// token (for instance a marketplace order number embedded in the
// filename), a case-insensitive equality scan over the processor and
// marketplace sources settles the question outright. Otherwise every
// ledger record is scored on up to four independent signals against
// the document's extracted values:
//
//   - supplier: fuzzy similarity between the record's counterparty
//     name and any document line
//   - date: exact calendar-day equality
//   - amount: exact decimal equality
//   - invoice_number: substring containment in the record's purpose
//
// A record qualifies with two or more positive signals; the record
// with the strictly greatest signal count wins. This is a greedy,
// per-document, first-plausible-match design - it makes no attempt at
// a globally optimal assignment across documents.
package matcher

import (
	"strings"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
)

// Matcher scores ledger records against extracted document values.
type Matcher struct {
	config Config
}

// NewMatcher creates a matcher with the given thresholds.
func NewMatcher(config Config) *Matcher {
	return &Matcher{config: config}
}

// FindByHint is the direct-hint shortcut: it returns the first
// processor or marketplace record whose hint field equals the token,
// compared case-insensitively. Bank records are never scanned; they do
// not carry processor correlation keys. Returns nil when nothing hits.
func (m *Matcher) FindByHint(token string, records []ledger.Record) *ledger.Record {
	if token == "" {
		return nil
	}
	for i := range records {
		if records[i].Source == ledger.SourceBank {
			continue
		}
		if strings.EqualFold(records[i].Hint, token) {
			return &records[i]
		}
	}
	return nil
}

// FindMatch scores every record and returns the best qualifying one,
// or nil when no record reaches MinSignals. Records listed in used are
// skipped so one ledger row is never claimed by two documents. Signals
// are computed fresh per call; nothing accumulates across documents.
func (m *Matcher) FindMatch(doc Extracted, records []ledger.Record, used map[int]bool) *Result {
	var best *Result

	for i := range records {
		if used[records[i].Index] {
			continue
		}
		signals := m.score(doc, &records[i])
		if len(signals) < m.config.MinSignals {
			continue
		}
		if best == nil || len(signals) > len(best.Signals) {
			best = &Result{Record: &records[i], Signals: signals}
		}
	}

	return best
}

// score computes the positive signals for one record.
func (m *Matcher) score(doc Extracted, record *ledger.Record) []ledger.Signal {
	var signals []ledger.Signal

	if m.supplierMatches(record.Counterparty, doc.Lines) {
		signals = append(signals, ledger.SignalSupplier)
	}
	if doc.HasDate && sameDay(doc.Date, record.Timestamp) {
		signals = append(signals, ledger.SignalDate)
	}
	if doc.HasAmount && doc.Amount.Equal(record.Amount) {
		signals = append(signals, ledger.SignalAmount)
	}
	if doc.Invoice != "" && containsToken(record.Purpose, doc.Invoice) {
		signals = append(signals, ledger.SignalInvoice)
	}

	return signals
}

// supplierMatches looks for any document line similar to the
// counterparty name. Names below MinNameLength are skipped entirely
// rather than scored - a 3-letter name would "match" half the
// document.
func (m *Matcher) supplierMatches(name string, lines []string) bool {
	if len(name) < m.config.MinNameLength {
		return false
	}
	query := normalizeForMatch(name)
	if query == "" {
		return false
	}
	for _, line := range lines {
		if fuzzy.PartialRatio(query, normalizeForMatch(line)) >= m.config.SupplierCutoff {
			return true
		}
	}
	return false
}

// ClassifyAccount selects the bookkeeping account whose tag list best
// matches the target phrase. Every comma-separated tag of every
// account competes; tags under MinTagLength are skipped as noise. The
// globally best-scoring tag wins, and a winner below TagCutoff is
// discarded as no-match.
func (m *Matcher) ClassifyAccount(target string, accounts []Account) *AccountMatch {
	if target == "" {
		return nil
	}
	choice := normalizeForMatch(target)

	var best *AccountMatch
	for i := range accounts {
		if accounts[i].Tags == "" {
			continue
		}
		for _, tag := range strings.Split(accounts[i].Tags, ",") {
			tag = strings.TrimSpace(tag)
			if len(tag) < m.config.MinTagLength {
				continue
			}
			similarity := fuzzy.PartialRatio(normalizeForMatch(tag), choice)
			if best == nil || similarity > best.Similarity {
				best = &AccountMatch{Account: &accounts[i], Tag: tag, Similarity: similarity}
			}
		}
	}

	if best == nil || best.Similarity < m.config.TagCutoff {
		return nil
	}
	return best
}

// sameDay compares calendar days, ignoring the time of day: ledger
// timestamps carry settlement times while documents only print dates.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// containsToken reports whether needle appears in haystack after both
// sides are case- and whitespace-normalized.
func containsToken(haystack, needle string) bool {
	h := strings.ReplaceAll(normalizeForMatch(haystack), " ", "")
	n := strings.ReplaceAll(normalizeForMatch(needle), " ", "")
	if n == "" {
		return false
	}
	return strings.Contains(h, n)
}

// normalizeForMatch lowercases, turns every non-alphanumeric rune into
// a space and collapses runs - the same preprocessing the fuzzy
// scorers' reference implementation applies before comparing.
func normalizeForMatch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
