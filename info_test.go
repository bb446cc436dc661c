package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreditInfo_Available(t *testing.T) {
	testCases := []struct {
		name    string
		credit  int64
		balance int64
		want    int64
	}{
		{"unused credit", 100, 0, 100},
		{"partially used", 100, 60, 40},
		{"overdrawn", 100, 150, -50},
		{"negative balance does not free extra credit", 100, -40, 100},
		{"no credit configured", 0, 10, -10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := CreditInfo{Credit: decimal.NewFromInt(tc.credit), Balance: decimal.NewFromInt(tc.balance)}
			if got := v.Available(); !got.Equal(decimal.NewFromInt(tc.want)) {
				t.Errorf("Available() = %s, want %d", got, tc.want)
			}
		})
	}
}

func TestBudgetInfo_BudgetAndAvailable(t *testing.T) {
	testCases := []struct {
		name          string
		income        int64
		expenses      int64
		posted        int64
		wantBudget    int64
		wantAvailable int64
	}{
		{"income post", 1000, 0, 800, 1000, 200},
		{"expense post", 0, 400, -350, -400, -50},
		{"mixed", 1000, 400, 500, 600, 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := BudgetInfo{
				Income:   decimal.NewFromInt(tc.income),
				Expenses: decimal.NewFromInt(tc.expenses),
				Posted:   decimal.NewFromInt(tc.posted),
			}
			if got := v.Budget(); !got.Equal(decimal.NewFromInt(tc.wantBudget)) {
				t.Errorf("Budget() = %s, want %d", got, tc.wantBudget)
			}
			if got := v.Available(); !got.Equal(decimal.NewFromInt(tc.wantAvailable)) {
				t.Errorf("Available() = %s, want %d", got, tc.wantAvailable)
			}
		})
	}
}

func TestValuesAdd_SumsFieldwise(t *testing.T) {
	a := CreditInfo{Credit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(10)}
	b := CreditInfo{Balance: decimal.NewFromInt(-4)}
	sum := a.Add(b)
	if !sum.Credit.Equal(decimal.NewFromInt(100)) || !sum.Balance.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Add() = %+v, want credit 100 balance 6", sum)
	}
}
