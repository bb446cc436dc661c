package renderer

import (
	"context"

	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/date"
)

// StatementMarkdown renders the account statement of a book: one table per
// account group with the three point-in-time snapshots of every member, and
// the group rollup as the last row.
func StatementMarkdown(ctx context.Context, b *ledger.Book, statusDate date.Date) (string, error) {
	r := newReportRenderer()
	r.Printf("# Account statement of %s on %s\n", b.Name, statusDate)

	for _, group := range b.AccountGroups() {
		gs, err := b.AccountGroupStatus(ctx, group, statusDate)
		if err != nil {
			return "", err
		}
		r.Printf("\n## %s\n\n", gs.Name)
		r.Printf("| Account | Name | Last Year | Last Month | Balance | Credit | Available |\n")
		r.Printf("|:---|:---|---:|---:|---:|---:|---:|\n")
		for a := range b.Accounts() {
			if a.Group != group {
				continue
			}
			s, err := a.Status(ctx, statusDate)
			if err != nil {
				return "", err
			}
			r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
				a.Number, a.Name,
				amount(s.AtEndOfLastYearFromStatusDate.Values.Balance),
				amount(s.AtEndOfLastMonthFromStatusDate.Values.Balance),
				amount(s.AtStatusDate.Values.Balance),
				amount(s.AtStatusDate.Values.Credit),
				amount(s.AtStatusDate.Values.Available()),
			)
		}
		r.Printf("| | **Total** | %s | %s | %s | %s | %s |\n",
			amount(gs.AtEndOfLastYearFromStatusDate.Balance),
			amount(gs.AtEndOfLastMonthFromStatusDate.Balance),
			amount(gs.AtStatusDate.Balance),
			amount(gs.AtStatusDate.Credit),
			amount(gs.AtStatusDate.Available()),
		)
	}
	return r.String(), nil
}

// ContactsMarkdown renders the payable/receivable balances of every contact
// account with recorded figures.
func ContactsMarkdown(ctx context.Context, b *ledger.Book, statusDate date.Date) (string, error) {
	r := newReportRenderer()
	r.Printf("# Contact balances of %s on %s\n\n", b.Name, statusDate)
	r.Printf("| Contact | Name | Last Year | Last Month | Balance |\n")
	r.Printf("|:---|:---|---:|---:|---:|\n")
	for a := range b.ContactAccounts() {
		s, err := a.Status(ctx, statusDate)
		if err != nil {
			return "", err
		}
		r.Printf("| %s | %s | %s | %s | %s |\n",
			a.Number, a.Name,
			amount(s.AtEndOfLastYearFromStatusDate.Values.Balance),
			amount(s.AtEndOfLastMonthFromStatusDate.Values.Balance),
			amount(s.AtStatusDate.Values.Balance),
		)
	}
	return r.String(), nil
}
