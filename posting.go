package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// Journal is one batch of posting lines against an accounting. It is applied
// all-or-nothing: a single invalid line rejects the whole journal.
type Journal struct {
	AccountingNumber int
	Lines            []PostingLine
}

// PostingLine is one debit/credit movement applied to an account, optionally
// annotated with a budget account (memo leg) and a contact account
// (balancing leg).
type PostingLine struct {
	Identifier  string // assigned on application when absent
	PostingDate date.Date
	Reference   string
	Details     string

	AccountNumber        string
	BudgetAccountNumber  string
	ContactAccountNumber string

	// Exactly one of Debit and Credit is strictly positive.
	Debit  decimal.Decimal
	Credit decimal.Decimal

	SortOrder int
}

// Amount returns the signed movement of the line: debit minus credit.
// Debit increases the account balance, credit decreases it.
func (l PostingLine) Amount() decimal.Decimal { return l.Debit.Sub(l.Credit) }

// newIdentifier returns a fresh opaque line identifier.
func newIdentifier() string { return uuid.NewString() }

// WarningReason names the condition a posting warning reports.
type WarningReason int

const (
	// AccountIsOverdrawn: the account's balance has moved beyond its credit limit.
	AccountIsOverdrawn WarningReason = iota
	// ExpectedIncomeHasNotBeenReachedYet: an income budget account is materially
	// behind its year-to-date budget.
	ExpectedIncomeHasNotBeenReachedYet
	// ExpectedExpensesHaveAlreadyBeenReached: an expense budget account has
	// already consumed its year-to-date budget.
	ExpectedExpensesHaveAlreadyBeenReached
)

func (r WarningReason) String() string {
	switch r {
	case AccountIsOverdrawn:
		return "AccountIsOverdrawn"
	case ExpectedIncomeHasNotBeenReachedYet:
		return "ExpectedIncomeHasNotBeenReachedYet"
	case ExpectedExpensesHaveAlreadyBeenReached:
		return "ExpectedExpensesHaveAlreadyBeenReached"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the reason as its enum name.
func (r WarningReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the reason from its enum name.
func (r *WarningReason) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseWarningReason(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseWarningReason parses a string into a WarningReason.
func ParseWarningReason(s string) (WarningReason, error) {
	switch s {
	case "AccountIsOverdrawn":
		return AccountIsOverdrawn, nil
	case "ExpectedIncomeHasNotBeenReachedYet":
		return ExpectedIncomeHasNotBeenReachedYet, nil
	case "ExpectedExpensesHaveAlreadyBeenReached":
		return ExpectedExpensesHaveAlreadyBeenReached, nil
	default:
		return 0, fmt.Errorf("unknown warning reason: %q", s)
	}
}

// PostingWarning is the informational output of applying one line. Warnings
// never block completion; the journal succeeds regardless.
type PostingWarning struct {
	Reason        WarningReason
	AccountNumber string
	Amount        decimal.Decimal
	Line          PostingLine
}

// AppliedLine is a posting line as actually applied, together with the state
// of every referenced account at the line's posting date, after application.
type AppliedLine struct {
	PostingLine

	AccountValuesAtPostingDate CreditInfo
	// BudgetAccountValuesAtPostingDate is nil when the line carries no budget leg.
	BudgetAccountValuesAtPostingDate *BudgetInfo
	// ContactAccountValuesAtPostingDate is nil when the line carries no contact leg.
	ContactAccountValuesAtPostingDate *ContactInfo
}

// JournalResult is the outcome of one successful journal application:
// the applied lines, in application order, and every warning they raised,
// in the order their triggering lines were applied. The caller decides what
// to persist.
type JournalResult struct {
	Lines    []AppliedLine
	Warnings []PostingWarning
}
