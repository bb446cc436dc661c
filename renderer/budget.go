package renderer

import (
	"context"

	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/date"
)

// BudgetMarkdown renders the budget report of a book: one table per budget
// account group comparing budget against posted figures over the four flow
// periods, with the group rollup as the last row.
func BudgetMarkdown(ctx context.Context, b *ledger.Book, statusDate date.Date) (string, error) {
	r := newReportRenderer()
	r.Printf("# Budget report of %s on %s\n", b.Name, statusDate)

	for _, group := range b.BudgetAccountGroups() {
		gs, err := b.BudgetAccountGroupStatus(ctx, group, statusDate)
		if err != nil {
			return "", err
		}
		r.Printf("\n## %s\n\n", gs.Name)
		r.Printf("| Account | Name | Budget | Posted | Available | Budget YTD | Posted YTD | Available YTD |\n")
		r.Printf("|:---|:---|---:|---:|---:|---:|---:|---:|\n")
		for a := range b.BudgetAccounts() {
			if a.Group != group {
				continue
			}
			s, err := a.Status(ctx, statusDate)
			if err != nil {
				return "", err
			}
			r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				a.Number, a.Name,
				amount(s.ForMonthOfStatusDate.Budget()),
				amount(s.ForMonthOfStatusDate.Posted),
				signedAmount(s.ForMonthOfStatusDate.Available()),
				amount(s.ForYearToDateOfStatusDate.Budget()),
				amount(s.ForYearToDateOfStatusDate.Posted),
				signedAmount(s.ForYearToDateOfStatusDate.Available()),
			)
		}
		r.Printf("| | **Total** | %s | %s | %s | %s | %s | %s |\n",
			amount(gs.ForMonthOfStatusDate.Budget()),
			amount(gs.ForMonthOfStatusDate.Posted),
			signedAmount(gs.ForMonthOfStatusDate.Available()),
			amount(gs.ForYearToDateOfStatusDate.Budget()),
			amount(gs.ForYearToDateOfStatusDate.Posted),
			signedAmount(gs.ForYearToDateOfStatusDate.Available()),
		)
	}
	return r.String(), nil
}

// GroupPeriodsMarkdown renders the period comparison of the budget groups:
// month, last month, year to date and last year side by side. This is the
// monthly/yearly overview the back office prints at closing time.
func GroupPeriodsMarkdown(ctx context.Context, b *ledger.Book, statusDate date.Date) (string, error) {
	r := newReportRenderer()
	r.Printf("# Budget groups of %s on %s\n\n", b.Name, statusDate)
	r.Printf("| Group | Month | Last Month | Year To Date | Last Year |\n")
	r.Printf("|:---|---:|---:|---:|---:|\n")
	for _, group := range b.BudgetAccountGroups() {
		gs, err := b.BudgetAccountGroupStatus(ctx, group, statusDate)
		if err != nil {
			return "", err
		}
		r.Printf("| %s | %s | %s | %s | %s |\n",
			gs.Name,
			signedAmount(gs.ForMonthOfStatusDate.Posted),
			signedAmount(gs.ForLastMonthOfStatusDate.Posted),
			signedAmount(gs.ForYearToDateOfStatusDate.Posted),
			signedAmount(gs.ForLastYearOfStatusDate.Posted),
		)
	}
	return r.String(), nil
}
