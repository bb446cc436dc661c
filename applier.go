package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// ErrNotFound reports a posting line referencing an account number unknown to
// the resolver. At the journal boundary it is a validation failure: the whole
// batch is rejected, no line is skipped individually.
var ErrNotFound = errors.New("account not found")

// ValidationError rejects a whole journal before any ledger mutation.
// Err joins every per-line failure, so one pass reports them all.
type ValidationError struct {
	AccountingNumber int
	Err              error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid posting journal for accounting %d: %v", e.AccountingNumber, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AccountResolver supplies the ledgers a journal refers to. Lookups are
// synchronous: the repository layer pre-fetches every account before the
// applier runs, keeping the engine free of mid-algorithm I/O.
type AccountResolver interface {
	Account(number string) (*Account, bool)
	BudgetAccount(number string) (*BudgetAccount, bool)
	ContactAccount(number string) (*ContactAccount, bool)
}

// Policy holds the configurable knobs of journal application.
type Policy struct {
	// AllowFutureDating permits posting dates after the applier's notion of now.
	AllowFutureDating bool
	// IncomeShortfallGraceMonths suppresses the income shortfall warning while
	// the status month is at most this many months into the year; early in the
	// budget period under-collection is not meaningful.
	IncomeShortfallGraceMonths int
	// IncomeShortfallThreshold is the amount the year-to-date posted figures
	// may lag the year-to-date budget before the shortfall warning fires.
	IncomeShortfallThreshold decimal.Decimal
}

// DefaultPolicy returns the stock policy: no future dating, two grace months,
// zero shortfall threshold.
func DefaultPolicy() Policy {
	return Policy{IncomeShortfallGraceMonths: 2}
}

// PostingApplier validates a posting journal and applies it to the ledgers
// the resolver supplies.
//
// One Apply call processes its lines sequentially in sort order, because
// later lines may depend on the running balance set by earlier ones. The
// applier assumes exclusive access to the resolved ledgers; concurrent
// journals touching the same account must be serialized by the caller.
type PostingApplier struct {
	resolver AccountResolver
	policy   Policy
	now      func() date.Date
}

// NewPostingApplier creates an applier over pre-resolved ledgers.
func NewPostingApplier(resolver AccountResolver, policy Policy) *PostingApplier {
	return &PostingApplier{resolver: resolver, policy: policy, now: date.Today}
}

// Apply validates every line of the journal, and only then applies them in
// ascending sort order (stable on input order for equal sort orders).
//
// Mutations are staged on copies of the affected collections and committed
// after the last line; a validation failure, a resolver miss, or a context
// cancellation mid-journal leaves every ledger exactly as it was.
//
// Warnings never fail the application; they are returned alongside the
// applied lines, in the order their triggering lines were applied.
func (pa *PostingApplier) Apply(ctx context.Context, journal Journal) (*JournalResult, error) {
	if err := pa.validate(journal); err != nil {
		return nil, &ValidationError{AccountingNumber: journal.AccountingNumber, Err: err}
	}

	lines := slices.Clone(journal.Lines)
	slices.SortStableFunc(lines, func(a, b PostingLine) int { return a.SortOrder - b.SortOrder })

	st := newStaging()
	result := &JournalResult{}
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line.Identifier == "" {
			line.Identifier = newIdentifier()
		}
		applied, warnings := pa.applyLine(st, line)
		result.Lines = append(result.Lines, applied)
		result.Warnings = append(result.Warnings, warnings...)
	}

	st.commit()
	return result, nil
}

// validate checks every line fully before any mutation; any failure rejects
// the whole journal.
func (pa *PostingApplier) validate(journal Journal) error {
	var errs []error
	now := pa.now()
	for i, line := range journal.Lines {
		for _, err := range pa.validateLine(line, now) {
			errs = append(errs, fmt.Errorf("line %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (pa *PostingApplier) validateLine(line PostingLine, now date.Date) []error {
	var errs []error

	hasDebit := line.Debit.IsPositive()
	hasCredit := line.Credit.IsPositive()
	switch {
	case line.Debit.IsNegative() || line.Credit.IsNegative():
		errs = append(errs, fmt.Errorf("debit and credit must be non-negative, got debit %s credit %s", line.Debit, line.Credit))
	case hasDebit && hasCredit:
		errs = append(errs, fmt.Errorf("exactly one of debit and credit must be set, got debit %s and credit %s", line.Debit, line.Credit))
	case !hasDebit && !hasCredit:
		errs = append(errs, errors.New("exactly one of debit and credit must be set, got neither"))
	}

	if line.Details == "" {
		errs = append(errs, errors.New("details are mandatory"))
	}

	if line.PostingDate.IsZero() {
		errs = append(errs, errors.New("posting date is mandatory"))
	} else if line.PostingDate.After(now) && !pa.policy.AllowFutureDating {
		errs = append(errs, fmt.Errorf("posting date %s is in the future", line.PostingDate))
	}

	if line.AccountNumber == "" {
		errs = append(errs, errors.New("account number is mandatory"))
	} else if _, ok := pa.resolver.Account(line.AccountNumber); !ok {
		errs = append(errs, fmt.Errorf("account %q: %w", line.AccountNumber, ErrNotFound))
	}
	if line.BudgetAccountNumber != "" {
		if _, ok := pa.resolver.BudgetAccount(line.BudgetAccountNumber); !ok {
			errs = append(errs, fmt.Errorf("budget account %q: %w", line.BudgetAccountNumber, ErrNotFound))
		}
	}
	if line.ContactAccountNumber != "" {
		if _, ok := pa.resolver.ContactAccount(line.ContactAccountNumber); !ok {
			errs = append(errs, fmt.Errorf("contact account %q: %w", line.ContactAccountNumber, ErrNotFound))
		}
	}

	return errs
}

// applyLine merges one validated line into the staged collections and
// evaluates its warnings against the state at the line's posting date.
func (pa *PostingApplier) applyLine(st *staging, line PostingLine) (AppliedLine, []PostingWarning) {
	period := line.PostingDate.YearMonth()
	amount := line.Amount()
	applied := AppliedLine{PostingLine: line}
	var warnings []PostingWarning

	// The debit account leg: debit increases the balance, credit decreases it.
	account, _ := pa.resolver.Account(line.AccountNumber)
	infos := st.account(account)
	infos.Add(InfoRecord[CreditInfo]{Period: period, Values: CreditInfo{Balance: amount}})
	at, _ := infos.Get(period)
	applied.AccountValuesAtPostingDate = at
	if available := at.Available(); available.IsNegative() {
		warnings = append(warnings, PostingWarning{
			Reason:        AccountIsOverdrawn,
			AccountNumber: account.Number,
			Amount:        available,
			Line:          line,
		})
	}

	// The budget leg is memo-only: it tracks planned-versus-actual and does
	// not participate in the balancing invariant.
	if line.BudgetAccountNumber != "" {
		budget, _ := pa.resolver.BudgetAccount(line.BudgetAccountNumber)
		infos := st.budget(budget)
		infos.Add(InfoRecord[BudgetInfo]{Period: period, Values: BudgetInfo{Posted: amount}})
		values, _ := infos.Get(period)
		applied.BudgetAccountValuesAtPostingDate = &values
		if w, ok := pa.budgetWarning(budget, infos, line); ok {
			warnings = append(warnings, w)
		}
	}

	// The contact leg balances the account leg with the opposite sign: a
	// debit on the account is money received from the contact.
	if line.ContactAccountNumber != "" {
		contact, _ := pa.resolver.ContactAccount(line.ContactAccountNumber)
		infos := st.contact(contact)
		infos.Add(InfoRecord[ContactInfo]{Period: period, Values: ContactInfo{Balance: amount.Neg()}})
		values, _ := infos.Get(period)
		applied.ContactAccountValuesAtPostingDate = &values
	}

	return applied, warnings
}

// budgetWarning evaluates the category-specific budget warning on the
// year-to-date figures at the line's posting date.
func (pa *PostingApplier) budgetWarning(account *BudgetAccount, infos *InfoCollection[BudgetInfo], line PostingLine) (PostingWarning, bool) {
	ytd := infos.YearToDate(line.PostingDate)
	behind := ytd.Posted.Sub(ytd.Budget())

	switch account.Category {
	case Income:
		if int(line.PostingDate.Month()) <= pa.policy.IncomeShortfallGraceMonths {
			return PostingWarning{}, false
		}
		if behind.Neg().GreaterThan(pa.policy.IncomeShortfallThreshold) {
			return PostingWarning{
				Reason:        ExpectedIncomeHasNotBeenReachedYet,
				AccountNumber: account.Number,
				Amount:        behind,
				Line:          line,
			}, true
		}
	case Expense:
		if ytd.Posted.IsNegative() && ytd.Posted.LessThanOrEqual(ytd.Budget()) {
			return PostingWarning{
				Reason:        ExpectedExpensesHaveAlreadyBeenReached,
				AccountNumber: account.Number,
				Amount:        behind,
				Line:          line,
			}, true
		}
	}
	return PostingWarning{}, false
}

// staging clones each touched collection on first use and swaps them all in
// at commit, so a journal either applies fully or not at all.
type staging struct {
	accounts map[*Account]*InfoCollection[CreditInfo]
	budgets  map[*BudgetAccount]*InfoCollection[BudgetInfo]
	contacts map[*ContactAccount]*InfoCollection[ContactInfo]
}

func newStaging() *staging {
	return &staging{
		accounts: make(map[*Account]*InfoCollection[CreditInfo]),
		budgets:  make(map[*BudgetAccount]*InfoCollection[BudgetInfo]),
		contacts: make(map[*ContactAccount]*InfoCollection[ContactInfo]),
	}
}

func (st *staging) account(a *Account) *InfoCollection[CreditInfo] {
	c, ok := st.accounts[a]
	if !ok {
		c = a.infos.Clone()
		st.accounts[a] = c
	}
	return c
}

func (st *staging) budget(a *BudgetAccount) *InfoCollection[BudgetInfo] {
	c, ok := st.budgets[a]
	if !ok {
		c = a.infos.Clone()
		st.budgets[a] = c
	}
	return c
}

func (st *staging) contact(a *ContactAccount) *InfoCollection[ContactInfo] {
	c, ok := st.contacts[a]
	if !ok {
		c = a.infos.Clone()
		st.contacts[a] = c
	}
	return c
}

func (st *staging) commit() {
	for a, c := range st.accounts {
		a.infos = c
	}
	for a, c := range st.budgets {
		a.infos = c
	}
	for a, c := range st.contacts {
		a.infos = c
	}
}
