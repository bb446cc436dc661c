package ledger

import (
	"context"
	"fmt"

	"github.com/osdevgrp/ledger/date"
)

// Account is an ordinary ledger account: a number, a name, the account group
// it reports under, and its month-bucketed credit figures.
type Account struct {
	Number string
	Name   string
	Group  int

	infos *InfoCollection[CreditInfo]
}

// NewAccount creates an account with an empty collection.
func NewAccount(number, name string, group int) *Account {
	return &Account{Number: number, Name: name, Group: group, infos: NewInfoCollection[CreditInfo]()}
}

// Infos returns the account's collection of month-bucketed figures.
func (a *Account) Infos() *InfoCollection[CreditInfo] { return a.infos }

// Status computes the account's three point-in-time snapshots for a status date.
func (a *Account) Status(ctx context.Context, statusDate date.Date) (Snapshot[CreditInfo], error) {
	return a.infos.Calculate(ctx, statusDate)
}

// BudgetAccountCategory tells whether a budget account tracks expected
// income or expected expenses; the posting warnings are category-specific.
type BudgetAccountCategory int

const (
	// Income budget accounts expect money in; they warn when collection
	// lags behind the budget.
	Income BudgetAccountCategory = iota
	// Expense budget accounts expect money out; they warn when spending has
	// already consumed the budget.
	Expense
)

func (c BudgetAccountCategory) String() string {
	switch c {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseBudgetAccountCategory parses a string into a BudgetAccountCategory.
func ParseBudgetAccountCategory(s string) (BudgetAccountCategory, error) {
	switch s {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return 0, fmt.Errorf("unknown budget account category: %q", s)
	}
}

// BudgetAccount tracks planned versus actual figures for one budget post.
type BudgetAccount struct {
	Number   string
	Name     string
	Group    int
	Category BudgetAccountCategory

	infos *InfoCollection[BudgetInfo]
}

// NewBudgetAccount creates a budget account with an empty collection.
func NewBudgetAccount(number, name string, group int, category BudgetAccountCategory) *BudgetAccount {
	return &BudgetAccount{Number: number, Name: name, Group: group, Category: category, infos: NewInfoCollection[BudgetInfo]()}
}

// Infos returns the budget account's collection of month-bucketed figures.
func (a *BudgetAccount) Infos() *InfoCollection[BudgetInfo] { return a.infos }

// BudgetStatus holds the four flow views of a budget account relative to a
// status date. Budget figures are flows, so the last-year view is the sum of
// the whole prior year, unlike the stock snapshots of Account.
type BudgetStatus struct {
	StatusDate date.Date

	ForMonthOfStatusDate      BudgetInfo
	ForLastMonthOfStatusDate  BudgetInfo
	ForYearToDateOfStatusDate BudgetInfo
	ForLastYearOfStatusDate   BudgetInfo
}

// Status computes the budget account's four flow views for a status date.
func (a *BudgetAccount) Status(ctx context.Context, statusDate date.Date) (BudgetStatus, error) {
	if err := ctx.Err(); err != nil {
		return BudgetStatus{}, err
	}
	month, _ := a.infos.Get(statusDate.YearMonth())
	lastMonth, _ := a.infos.Get(statusDate.YearMonth().Prev())
	return BudgetStatus{
		StatusDate:                statusDate,
		ForMonthOfStatusDate:      month,
		ForLastMonthOfStatusDate:  lastMonth,
		ForYearToDateOfStatusDate: a.infos.YearToDate(statusDate),
		ForLastYearOfStatusDate:   a.infos.LastYear(statusDate),
	}, nil
}

// ContactAccount is the payable or receivable of one contact.
type ContactAccount struct {
	Number string
	Name   string

	infos *InfoCollection[ContactInfo]
}

// NewContactAccount creates a contact account with an empty collection.
func NewContactAccount(number, name string) *ContactAccount {
	return &ContactAccount{Number: number, Name: name, infos: NewInfoCollection[ContactInfo]()}
}

// Infos returns the contact account's collection of month-bucketed figures.
func (a *ContactAccount) Infos() *InfoCollection[ContactInfo] { return a.infos }

// Status computes the contact account's three point-in-time snapshots.
func (a *ContactAccount) Status(ctx context.Context, statusDate date.Date) (Snapshot[ContactInfo], error) {
	return a.infos.Calculate(ctx, statusDate)
}
