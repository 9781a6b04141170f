package reconcile

import (
	"strings"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/ledger"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/matcher"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/csvio"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/files"
)

// classifyAccounts is the third pass: every confirmed outcome gets a
// bookkeeping account code. Precedence is an explicit account marker in
// the document filename, then tag classification against the account
// list, then the source-type default.
func (o *Orchestrator) classifyAccounts() {
	o.loadAccountList()

	for i := range o.outcomes {
		record := &o.records[o.outcomes[i].RecordIndex]
		o.outcomes[i].Account = o.accountFor(&o.outcomes[i], record)
	}
}

func (o *Orchestrator) accountFor(outcome *ledger.MatchOutcome, record *ledger.Record) string {
	if code := files.AccountNumber(outcome.Document); code != "" {
		return code
	}

	target := strings.TrimSpace(record.Counterparty + " " + record.Purpose)
	if match := o.matcher.ClassifyAccount(target, o.accounts); match != nil {
		o.logger.Debug("Classified account by tag",
			"document", outcome.Document,
			"account", match.Account.Code,
			"tag", match.Tag,
			"similarity", match.Similarity,
		)
		return match.Account.Code
	}

	if record.Source == ledger.SourceMarketplace {
		return o.cfg.AccountForLanguage(files.LanguageCode(record.File))
	}
	return o.cfg.Accounts.Bank
}

// loadAccountList reads the configured account list once. The list is
// optional; a missing or unreadable file only disables tag
// classification.
func (o *Orchestrator) loadAccountList() {
	path := o.cfg.Paths.AccountList
	if path == "" {
		return
	}
	table, err := csvio.ReadFile(path, nil, 0)
	if err != nil {
		o.logger.Warn("Account list unavailable, using defaults only", "path", path, "error", err)
		return
	}

	for _, row := range table.Rows {
		account := matcher.Account{
			Code: firstOf(row, "code", "konto", "account"),
			Tags: firstOf(row, "tags", "tag", "stichworte"),
			Raw:  row,
		}
		if account.Code == "" {
			continue
		}
		o.accounts = append(o.accounts, account)
	}
	o.logger.Info("Loaded account list", "path", path, "accounts", len(o.accounts))
}

func firstOf(row map[string]string, names ...string) string {
	for _, name := range names {
		for key, value := range row {
			if strings.EqualFold(strings.TrimSpace(key), name) {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}
