package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

func credit(period string, balance int64) InfoRecord[CreditInfo] {
	return InfoRecord[CreditInfo]{
		Period: date.MustParseYearMonth(period),
		Values: CreditInfo{Balance: decimal.NewFromInt(balance)},
	}
}

func TestInfoCollection_Calculate_Empty(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	statusDates := []date.Date{
		date.New(2024, time.March, 15),
		date.New(1950, time.January, 1),
		date.New(2199, time.December, 31),
	}
	for _, on := range statusDates {
		t.Run(on.String(), func(t *testing.T) {
			s, err := c.Calculate(context.Background(), on)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if !s.AtStatusDate.Values.Balance.IsZero() ||
				!s.AtEndOfLastMonthFromStatusDate.Values.Balance.IsZero() ||
				!s.AtEndOfLastYearFromStatusDate.Values.Balance.IsZero() {
				t.Errorf("empty collection must yield zero-valued snapshots, got %+v", s)
			}
			if got, want := s.AtStatusDate.Period, on.YearMonth(); got != want {
				t.Errorf("AtStatusDate.Period = %v, want %v", got, want)
			}
			if got, want := s.AtEndOfLastMonthFromStatusDate.Period, on.YearMonth().Prev(); got != want {
				t.Errorf("AtEndOfLastMonthFromStatusDate.Period = %v, want %v", got, want)
			}
		})
	}
}

func TestInfoCollection_Calculate_SingleRecord(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	c.Add(credit("2024-03", 100))
	on := date.New(2024, time.March, 15)

	s, err := c.Calculate(context.Background(), on)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got := s.AtStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("AtStatusDate.Balance = %s, want 100", got)
	}
	if got := s.AtEndOfLastMonthFromStatusDate.Values.Balance; !got.IsZero() {
		t.Errorf("AtEndOfLastMonthFromStatusDate.Balance = %s, want 0", got)
	}
	if got := s.AtEndOfLastYearFromStatusDate.Values.Balance; !got.IsZero() {
		t.Errorf("AtEndOfLastYearFromStatusDate.Balance = %s, want 0", got)
	}
}

// The sparse last-year lookup: the latest record of the prior year wins,
// regardless of which month it falls in.
func TestInfoCollection_Calculate_SparsePriorYear(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	c.Add(credit("2024-03", 100))
	c.Add(credit("2024-02", 80))
	c.Add(credit("2023-11", 50))
	c.Add(credit("2023-09", 40))
	on := date.New(2024, time.March, 15)

	s, err := c.Calculate(context.Background(), on)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got := s.AtStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("AtStatusDate.Balance = %s, want 100", got)
	}
	if got := s.AtEndOfLastMonthFromStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(80)) {
		t.Errorf("AtEndOfLastMonthFromStatusDate.Balance = %s, want 80", got)
	}
	if got := s.AtEndOfLastYearFromStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("AtEndOfLastYearFromStatusDate.Balance = %s, want 50 (latest of the 2023 records)", got)
	}
	if got, want := s.AtEndOfLastYearFromStatusDate.Period, date.MustParseYearMonth("2023-11"); got != want {
		t.Errorf("AtEndOfLastYearFromStatusDate.Period = %v, want %v", got, want)
	}
}

func TestInfoCollection_Calculate_JanuaryCrossesYearBoundary(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	c.Add(credit("2023-12", 70))
	on := date.New(2024, time.January, 10)

	s, err := c.Calculate(context.Background(), on)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got := s.AtEndOfLastMonthFromStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("AtEndOfLastMonthFromStatusDate.Balance = %s, want 70 (December of prior year)", got)
	}
	// December 2023 is both the last month and the latest record of the prior year.
	if got := s.AtEndOfLastYearFromStatusDate.Values.Balance; !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("AtEndOfLastYearFromStatusDate.Balance = %s, want 70", got)
	}
}

func TestInfoCollection_Calculate_Cancelled(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	c.Add(credit("2024-03", 100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Calculate(ctx, date.New(2024, time.March, 15)); err == nil {
		t.Fatal("Calculate() with cancelled context must return an error")
	}
}

func TestInfoCollection_Add_MergesDuplicatePeriods(t *testing.T) {
	c := NewInfoCollection[CreditInfo]()
	c.Add(credit("2024-03", 100))
	c.Add(credit("2024-03", -30))
	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1: duplicate periods must merge, not duplicate", got)
	}
	v, _ := c.Get(date.MustParseYearMonth("2024-03"))
	if !v.Balance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("merged Balance = %s, want 70", v.Balance)
	}
}

func TestInfoCollection_YearToDate(t *testing.T) {
	c := NewInfoCollection[BudgetInfo]()
	for _, m := range []string{"2024-01", "2024-02", "2024-03", "2024-04"} {
		c.Add(InfoRecord[BudgetInfo]{
			Period: date.MustParseYearMonth(m),
			Values: BudgetInfo{Income: decimal.NewFromInt(1000), Posted: decimal.NewFromInt(900)},
		})
	}
	// December of the prior year must not leak into the year-to-date sum.
	c.Add(InfoRecord[BudgetInfo]{
		Period: date.MustParseYearMonth("2023-12"),
		Values: BudgetInfo{Income: decimal.NewFromInt(5000)},
	})

	ytd := c.YearToDate(date.New(2024, time.March, 15))
	if !ytd.Income.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("YearToDate.Income = %s, want 3000 (January through March)", ytd.Income)
	}
	if !ytd.Posted.Equal(decimal.NewFromInt(2700)) {
		t.Errorf("YearToDate.Posted = %s, want 2700", ytd.Posted)
	}
}

func TestInfoCollection_LastYear(t *testing.T) {
	c := NewInfoCollection[BudgetInfo]()
	c.Add(InfoRecord[BudgetInfo]{Period: date.MustParseYearMonth("2023-02"), Values: BudgetInfo{Expenses: decimal.NewFromInt(300)}})
	c.Add(InfoRecord[BudgetInfo]{Period: date.MustParseYearMonth("2023-10"), Values: BudgetInfo{Expenses: decimal.NewFromInt(200)}})
	c.Add(InfoRecord[BudgetInfo]{Period: date.MustParseYearMonth("2024-01"), Values: BudgetInfo{Expenses: decimal.NewFromInt(999)}})

	lastYear := c.LastYear(date.New(2024, time.June, 1))
	if !lastYear.Expenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("LastYear.Expenses = %s, want 500", lastYear.Expenses)
	}
}

func TestClassify(t *testing.T) {
	on := date.New(2024, time.March, 15)
	testCases := []struct {
		name   string
		period string
		want   PeriodRole
	}{
		{"status month", "2024-03", PeriodMonthOfStatusDate},
		{"last month", "2024-02", PeriodLastMonthOfStatusDate},
		{"prior year", "2023-07", PeriodLastYearOfStatusDate},
		{"prior year december", "2023-12", PeriodLastYearOfStatusDate},
		{"two years back", "2022-12", PeriodOther},
		{"future month", "2024-04", PeriodOther},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(date.MustParseYearMonth(tc.period), on); got != tc.want {
				t.Errorf("Classify(%s, %s) = %v, want %v", tc.period, on, got, tc.want)
			}
		})
	}
}

func TestClassify_JanuaryLastMonth(t *testing.T) {
	on := date.New(2024, time.January, 10)
	if got := Classify(date.MustParseYearMonth("2023-12"), on); got != PeriodLastMonthOfStatusDate {
		t.Errorf("Classify(2023-12, %s) = %v, want last month of status date", on, got)
	}
}
