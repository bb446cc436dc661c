package ledger

import (
	"context"

	"github.com/osdevgrp/ledger/date"
)

// AccountGroupStatus is the rollup of every member account of one account
// group: the three point-in-time snapshots summed field-wise across members.
//
// Summation is commutative, so the result is deterministic regardless of
// member iteration order. An empty group yields zero-valued snapshots.
type AccountGroupStatus struct {
	Number     int
	Name       string
	StatusDate date.Date

	AtStatusDate                   CreditInfo
	AtEndOfLastMonthFromStatusDate CreditInfo
	AtEndOfLastYearFromStatusDate  CreditInfo
}

// CalculateAccountGroupStatus aggregates the member accounts of one group
// for a status date. The group holds no ownership of its members; they are
// borrowed for the duration of the call.
func CalculateAccountGroupStatus(ctx context.Context, number int, name string, members []*Account, statusDate date.Date) (AccountGroupStatus, error) {
	gs := AccountGroupStatus{Number: number, Name: name, StatusDate: statusDate}
	for _, a := range members {
		s, err := a.Status(ctx, statusDate)
		if err != nil {
			return AccountGroupStatus{}, err
		}
		gs.AtStatusDate = gs.AtStatusDate.Add(s.AtStatusDate.Values)
		gs.AtEndOfLastMonthFromStatusDate = gs.AtEndOfLastMonthFromStatusDate.Add(s.AtEndOfLastMonthFromStatusDate.Values)
		gs.AtEndOfLastYearFromStatusDate = gs.AtEndOfLastYearFromStatusDate.Add(s.AtEndOfLastYearFromStatusDate.Values)
	}
	return gs, nil
}

// BudgetAccountGroupStatus is the rollup of every member budget account of
// one budget account group: the four flow views summed field-wise.
type BudgetAccountGroupStatus struct {
	Number     int
	Name       string
	StatusDate date.Date

	ForMonthOfStatusDate      BudgetInfo
	ForLastMonthOfStatusDate  BudgetInfo
	ForYearToDateOfStatusDate BudgetInfo
	ForLastYearOfStatusDate   BudgetInfo
}

// CalculateBudgetAccountGroupStatus aggregates the member budget accounts of
// one group for a status date.
func CalculateBudgetAccountGroupStatus(ctx context.Context, number int, name string, members []*BudgetAccount, statusDate date.Date) (BudgetAccountGroupStatus, error) {
	gs := BudgetAccountGroupStatus{Number: number, Name: name, StatusDate: statusDate}
	for _, a := range members {
		s, err := a.Status(ctx, statusDate)
		if err != nil {
			return BudgetAccountGroupStatus{}, err
		}
		gs.ForMonthOfStatusDate = gs.ForMonthOfStatusDate.Add(s.ForMonthOfStatusDate)
		gs.ForLastMonthOfStatusDate = gs.ForLastMonthOfStatusDate.Add(s.ForLastMonthOfStatusDate)
		gs.ForYearToDateOfStatusDate = gs.ForYearToDateOfStatusDate.Add(s.ForYearToDateOfStatusDate)
		gs.ForLastYearOfStatusDate = gs.ForLastYearOfStatusDate.Add(s.ForLastYearOfStatusDate)
	}
	return gs, nil
}
