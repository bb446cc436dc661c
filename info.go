package ledger

import (
	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// Values is the capability every period value shape provides: pairwise
// addition of its numeric fields. The Go zero value of a shape is its
// zero-valued record.
type Values[T any] interface {
	Add(T) T
}

// CreditInfo holds the figures of one month bucket of an ordinary account:
// the configured credit limit and the running balance.
type CreditInfo struct {
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// Add sums the numeric fields pairwise.
func (v CreditInfo) Add(o CreditInfo) CreditInfo {
	return CreditInfo{
		Credit:  v.Credit.Add(o.Credit),
		Balance: v.Balance.Add(o.Balance),
	}
}

// Available returns how much of the credit limit is left: the credit limit
// minus the balance when the balance is positive. Negative means overdrawn.
func (v CreditInfo) Available() decimal.Decimal {
	used := v.Balance
	if used.IsNegative() {
		used = decimal.Zero
	}
	return v.Credit.Sub(used)
}

// BudgetInfo holds the figures of one month bucket of a budget account:
// the expected income and expenses, and the actually posted movement.
//
// Income and Expenses are non-negative; Posted is signed (positive for money
// in, negative for money out), so an expense account carries a negative
// budget and accumulates negative postings.
type BudgetInfo struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Posted   decimal.Decimal
}

// Add sums the numeric fields pairwise.
func (v BudgetInfo) Add(o BudgetInfo) BudgetInfo {
	return BudgetInfo{
		Income:   v.Income.Add(o.Income),
		Expenses: v.Expenses.Add(o.Expenses),
		Posted:   v.Posted.Add(o.Posted),
	}
}

// Budget returns the signed budget for the bucket: income minus expenses.
func (v BudgetInfo) Budget() decimal.Decimal { return v.Income.Sub(v.Expenses) }

// Available returns the budget left for the bucket: budget minus posted.
func (v BudgetInfo) Available() decimal.Decimal { return v.Budget().Sub(v.Posted) }

// ContactInfo holds the figures of one month bucket of a contact account:
// the running balance of the payable or receivable.
type ContactInfo struct {
	Balance decimal.Decimal
}

// Add sums the numeric fields pairwise.
func (v ContactInfo) Add(o ContactInfo) ContactInfo {
	return ContactInfo{Balance: v.Balance.Add(o.Balance)}
}

// InfoRecord couples one month bucket with its value payload. Records are
// immutable facts; merging two records for the same bucket produces a new one.
type InfoRecord[T Values[T]] struct {
	Period date.YearMonth
	Values T
}

// PeriodRole classifies a month bucket relative to a status date. It is
// computed at query time, never stored, so it cannot go stale when the
// status date changes.
type PeriodRole int

const (
	// PeriodOther is any bucket with no particular role for the status date.
	PeriodOther PeriodRole = iota
	// PeriodMonthOfStatusDate is the bucket of the status date itself.
	PeriodMonthOfStatusDate
	// PeriodLastMonthOfStatusDate is the calendar month immediately preceding
	// the status date's month.
	PeriodLastMonthOfStatusDate
	// PeriodLastYearOfStatusDate is any bucket of the year preceding the
	// status date's year.
	PeriodLastYearOfStatusDate
)

func (r PeriodRole) String() string {
	switch r {
	case PeriodMonthOfStatusDate:
		return "month of status date"
	case PeriodLastMonthOfStatusDate:
		return "last month of status date"
	case PeriodLastYearOfStatusDate:
		return "last year of status date"
	default:
		return "other"
	}
}

// Classify returns the role of a month bucket relative to a status date.
func Classify(period date.YearMonth, statusDate date.Date) PeriodRole {
	switch {
	case period == statusDate.YearMonth():
		return PeriodMonthOfStatusDate
	case period == statusDate.YearMonth().Prev():
		return PeriodLastMonthOfStatusDate
	case period.Year() == statusDate.Year()-1:
		return PeriodLastYearOfStatusDate
	default:
		return PeriodOther
	}
}
