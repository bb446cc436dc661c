package ledger

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

func TestCalculateAccountGroupStatus_Commutative(t *testing.T) {
	a := NewAccount("1010", "Cash", 1)
	a.Infos().Add(credit("2024-03", 100))
	a.Infos().Add(credit("2023-10", 40))
	b := NewAccount("1020", "Savings", 1)
	b.Infos().Add(credit("2024-03", 250))
	b.Infos().Add(credit("2024-02", 30))
	on := date.New(2024, time.March, 15)

	orders := [][]*Account{{a, b}, {b, a}}
	var results []AccountGroupStatus
	for _, members := range orders {
		gs, err := CalculateAccountGroupStatus(context.Background(), 1, "Liquidity", members, on)
		if err != nil {
			t.Fatalf("CalculateAccountGroupStatus() error = %v", err)
		}
		results = append(results, gs)
	}

	for i, gs := range results {
		if !gs.AtStatusDate.Balance.Equal(decimal.NewFromInt(350)) {
			t.Errorf("order %d: AtStatusDate.Balance = %s, want 350", i, gs.AtStatusDate.Balance)
		}
		if !gs.AtEndOfLastMonthFromStatusDate.Balance.Equal(decimal.NewFromInt(30)) {
			t.Errorf("order %d: AtEndOfLastMonthFromStatusDate.Balance = %s, want 30", i, gs.AtEndOfLastMonthFromStatusDate.Balance)
		}
		if !gs.AtEndOfLastYearFromStatusDate.Balance.Equal(decimal.NewFromInt(40)) {
			t.Errorf("order %d: AtEndOfLastYearFromStatusDate.Balance = %s, want 40", i, gs.AtEndOfLastYearFromStatusDate.Balance)
		}
	}
}

func TestCalculateAccountGroupStatus_EmptyGroup(t *testing.T) {
	gs, err := CalculateAccountGroupStatus(context.Background(), 9, "Empty", nil, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("CalculateAccountGroupStatus() error = %v", err)
	}
	if !gs.AtStatusDate.Balance.IsZero() || !gs.AtEndOfLastMonthFromStatusDate.Balance.IsZero() || !gs.AtEndOfLastYearFromStatusDate.Balance.IsZero() {
		t.Errorf("empty group must yield zero-valued snapshots, got %+v", gs)
	}
}

func TestCalculateBudgetAccountGroupStatus(t *testing.T) {
	salary := NewBudgetAccount("3010", "Salary", 1, Income)
	groceries := NewBudgetAccount("3020", "Groceries", 1, Expense)
	for month := time.January; month <= time.April; month++ {
		salary.Infos().Add(InfoRecord[BudgetInfo]{
			Period: date.YM(2024, month),
			Values: BudgetInfo{Income: decimal.NewFromInt(1000), Posted: decimal.NewFromInt(1000)},
		})
		groceries.Infos().Add(InfoRecord[BudgetInfo]{
			Period: date.YM(2024, month),
			Values: BudgetInfo{Expenses: decimal.NewFromInt(400), Posted: decimal.NewFromInt(-380)},
		})
	}
	on := date.New(2024, time.March, 15)

	gs, err := CalculateBudgetAccountGroupStatus(context.Background(), 1, "Household", []*BudgetAccount{salary, groceries}, on)
	if err != nil {
		t.Fatalf("CalculateBudgetAccountGroupStatus() error = %v", err)
	}

	// Month of status date: 1000 - 400 budget, 1000 - 380 posted.
	if !gs.ForMonthOfStatusDate.Budget().Equal(decimal.NewFromInt(600)) {
		t.Errorf("ForMonthOfStatusDate.Budget() = %s, want 600", gs.ForMonthOfStatusDate.Budget())
	}
	if !gs.ForMonthOfStatusDate.Posted.Equal(decimal.NewFromInt(620)) {
		t.Errorf("ForMonthOfStatusDate.Posted = %s, want 620", gs.ForMonthOfStatusDate.Posted)
	}
	// Year to date accumulates January through March; April must not leak in.
	if !gs.ForYearToDateOfStatusDate.Budget().Equal(decimal.NewFromInt(1800)) {
		t.Errorf("ForYearToDateOfStatusDate.Budget() = %s, want 1800", gs.ForYearToDateOfStatusDate.Budget())
	}
	if !gs.ForYearToDateOfStatusDate.Posted.Equal(decimal.NewFromInt(1860)) {
		t.Errorf("ForYearToDateOfStatusDate.Posted = %s, want 1860", gs.ForYearToDateOfStatusDate.Posted)
	}
}

func TestBook_BudgetAccountGroupStatus_FiltersByGroup(t *testing.T) {
	b := NewBook("test")
	b.AddBudgetAccountGroup(1, "Household")
	b.AddBudgetAccountGroup(2, "Transport")
	in := NewBudgetAccount("3010", "Salary", 1, Income)
	in.Infos().Add(InfoRecord[BudgetInfo]{Period: date.MustParseYearMonth("2024-03"), Values: BudgetInfo{Income: decimal.NewFromInt(1000)}})
	out := NewBudgetAccount("4010", "Fuel", 2, Expense)
	out.Infos().Add(InfoRecord[BudgetInfo]{Period: date.MustParseYearMonth("2024-03"), Values: BudgetInfo{Expenses: decimal.NewFromInt(200)}})
	if err := b.AddBudgetAccount(in); err != nil {
		t.Fatal(err)
	}
	if err := b.AddBudgetAccount(out); err != nil {
		t.Fatal(err)
	}

	gs, err := b.BudgetAccountGroupStatus(context.Background(), 1, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("BudgetAccountGroupStatus() error = %v", err)
	}
	if gs.Name != "Household" {
		t.Errorf("Name = %q, want Household", gs.Name)
	}
	if !gs.ForMonthOfStatusDate.Budget().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("ForMonthOfStatusDate.Budget() = %s, want 1000 (group 2 must not contribute)", gs.ForMonthOfStatusDate.Budget())
	}
}

func TestBook_Accounts_Ordered(t *testing.T) {
	b := NewBook("test")
	for _, n := range []string{"1030", "1010", "1020"} {
		if err := b.AddAccount(NewAccount(n, "", 1)); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for a := range b.Accounts() {
		got = append(got, a.Number)
	}
	if want := []string{"1010", "1020", "1030"}; !slices.Equal(got, want) {
		t.Errorf("Accounts() order = %v, want %v", got, want)
	}
}
