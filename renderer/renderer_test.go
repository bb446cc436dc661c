package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

func testBook(t *testing.T) *ledger.Book {
	t.Helper()
	b := ledger.NewBook("demo")
	b.AddAccountGroup(1, "Liquidity")
	b.AddBudgetAccountGroup(1, "Household")

	bank := ledger.NewAccount("1010", "Bank", 1)
	bank.Infos().Set(ledger.InfoRecord[ledger.CreditInfo]{
		Period: date.MustParseYearMonth("2024-03"),
		Values: ledger.CreditInfo{Credit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(40)},
	})
	salary := ledger.NewBudgetAccount("3010", "Salary", 1, ledger.Income)
	salary.Infos().Set(ledger.InfoRecord[ledger.BudgetInfo]{
		Period: date.MustParseYearMonth("2024-03"),
		Values: ledger.BudgetInfo{Income: decimal.NewFromInt(1000), Posted: decimal.NewFromInt(950)},
	})
	grocer := ledger.NewContactAccount("C-01", "Corner Grocer")
	grocer.Infos().Set(ledger.InfoRecord[ledger.ContactInfo]{
		Period: date.MustParseYearMonth("2024-03"),
		Values: ledger.ContactInfo{Balance: decimal.NewFromInt(-25)},
	})

	for _, err := range []error{
		b.AddAccount(bank),
		b.AddBudgetAccount(salary),
		b.AddContactAccount(grocer),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestStatementMarkdown(t *testing.T) {
	b := testBook(t)
	got, err := StatementMarkdown(context.Background(), b, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("StatementMarkdown() error = %v", err)
	}
	for _, want := range []string{
		"# Account statement of demo on 2024-03-15",
		"## Liquidity",
		"| Account | Name | Last Year | Last Month | Balance | Credit | Available |",
		"| 1010 | Bank |",
		"**Total**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("statement is missing %q:\n%s", want, got)
		}
	}
}

func TestBudgetMarkdown(t *testing.T) {
	b := testBook(t)
	got, err := BudgetMarkdown(context.Background(), b, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("BudgetMarkdown() error = %v", err)
	}
	for _, want := range []string{
		"# Budget report of demo on 2024-03-15",
		"## Household",
		"| 3010 | Salary |",
		"**Total**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("budget report is missing %q:\n%s", want, got)
		}
	}
}

func TestGroupPeriodsMarkdown(t *testing.T) {
	b := testBook(t)
	got, err := GroupPeriodsMarkdown(context.Background(), b, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("GroupPeriodsMarkdown() error = %v", err)
	}
	for _, want := range []string{
		"| Group | Month | Last Month | Year To Date | Last Year |",
		"| Household |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("group report is missing %q:\n%s", want, got)
		}
	}
}

func TestContactsMarkdown(t *testing.T) {
	b := testBook(t)
	got, err := ContactsMarkdown(context.Background(), b, date.New(2024, time.March, 15))
	if err != nil {
		t.Fatalf("ContactsMarkdown() error = %v", err)
	}
	if !strings.Contains(got, "| C-01 | Corner Grocer |") {
		t.Errorf("contact report is missing the contact row:\n%s", got)
	}
}

func TestJournalMarkdown(t *testing.T) {
	debit := decimal.NewFromInt(150)
	m := ledger.ApplyPostingJournalResultModel{
		PostingLines: []ledger.PostingLineModel{{
			Identifier:  "b2f9f3a0-0000-0000-0000-000000000000",
			PostingDate: date.MustParse("2024-03-15"),
			Account:     ledger.AccountIdentificationModel{AccountNumber: "1010", AccountName: "Bank"},
			Details:     "rent",
			Debit:       &debit,
			AccountValuesAtPostingDate: &ledger.CreditInfoValuesModel{
				Balance:   decimal.NewFromInt(150),
				Credit:    decimal.NewFromInt(100),
				Available: decimal.NewFromInt(-50),
			},
		}},
		PostingWarnings: []ledger.PostingWarningModel{{
			Reason:  ledger.AccountIsOverdrawn,
			Account: ledger.AccountIdentificationModel{AccountNumber: "1010", AccountName: "Bank"},
			Amount:  decimal.NewFromInt(-50),
		}},
	}
	got := JournalMarkdown(m)
	for _, want := range []string{
		"# Applied posting lines",
		"| 2024-03-15 | 1010 Bank | rent |",
		"## Warnings",
		"**AccountIsOverdrawn** on 1010 Bank",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("journal report is missing %q:\n%s", want, got)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	if got := signedAmount(decimal.Zero); got != "-" {
		t.Errorf("signedAmount(0) = %q, want -", got)
	}
	if got := signedAmount(decimal.NewFromInt(1)); !strings.HasPrefix(got, "+") {
		t.Errorf("signedAmount(1) = %q, want a + prefix", got)
	}
}
