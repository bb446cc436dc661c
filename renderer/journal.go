package renderer

import (
	"github.com/osdevgrp/ledger"
)

// JournalMarkdown renders the outcome of one applied posting journal: the
// applied lines in application order, then the warnings they raised.
func JournalMarkdown(m ledger.ApplyPostingJournalResultModel) string {
	r := newReportRenderer()

	r.Printf("# Applied posting lines\n\n")
	r.Printf("| Date | Account | Details | Debit | Credit | Balance | Available |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|---:|\n")
	for _, line := range m.PostingLines {
		debit, credit := "-", "-"
		if line.Debit != nil {
			debit = amount(*line.Debit)
		}
		if line.Credit != nil {
			credit = amount(*line.Credit)
		}
		balance, available := "-", "-"
		if v := line.AccountValuesAtPostingDate; v != nil {
			balance = amount(v.Balance)
			available = signedAmount(v.Available)
		}
		r.Printf("| %s | %s %s | %s | %s | %s | %s | %s |\n",
			line.PostingDate, line.Account.AccountNumber, line.Account.AccountName,
			line.Details, debit, credit, balance, available)
	}

	if len(m.PostingWarnings) > 0 {
		r.Printf("\n## Warnings\n\n")
		for _, w := range m.PostingWarnings {
			r.Printf("- **%s** on %s %s: %s\n",
				w.Reason, w.Account.AccountNumber, w.Account.AccountName, signedAmount(w.Amount))
		}
	}
	return r.String()
}
