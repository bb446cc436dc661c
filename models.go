package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// Boundary models exchanged with the surrounding back-office suite. Field
// names are part of the wire contract and must not change.

// accountNumberPattern constrains account, budget account and contact
// account numbers at the boundary.
var accountNumberPattern = regexp.MustCompile(`^[0-9A-Z+\- ]{1,16}$`)

const (
	minYear = 1950
	maxYear = 2199

	maxAccountingNumber = 99
	maxReferenceLen     = 16
	maxDetailsLen       = 256
	maxSortOrder        = 9999999
)

// maxAmount bounds debit and credit amounts at the boundary.
var maxAmount = decimal.NewFromInt(99999999)

// ApplyPostingJournalModel is the request to apply a posting journal.
type ApplyPostingJournalModel struct {
	AccountingNumber  int                     `json:"accountingNumber"`
	ApplyPostingLines []ApplyPostingLineModel `json:"applyPostingLines"`
}

// ApplyPostingLineModel is one requested posting line.
type ApplyPostingLineModel struct {
	Identifier           string           `json:"identifier,omitempty"`
	PostingDate          date.Date        `json:"postingDate"`
	Reference            string           `json:"reference,omitempty"`
	AccountNumber        string           `json:"accountNumber"`
	Details              string           `json:"details"`
	BudgetAccountNumber  string           `json:"budgetAccountNumber,omitempty"`
	Debit                *decimal.Decimal `json:"debit,omitempty"`
	Credit               *decimal.Decimal `json:"credit,omitempty"`
	ContactAccountNumber string           `json:"contactAccountNumber,omitempty"`
	SortOrder            *int             `json:"sortOrder,omitempty"`
}

// DecodeApplyPostingJournal reads and validates an apply-posting-journal
// request. A constraint violation anywhere in the payload rejects it whole.
func DecodeApplyPostingJournal(r io.Reader) (ApplyPostingJournalModel, error) {
	var m ApplyPostingJournalModel
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return ApplyPostingJournalModel{}, fmt.Errorf("malformed posting journal: %w", err)
	}
	if err := m.Validate(); err != nil {
		return ApplyPostingJournalModel{}, err
	}
	return m, nil
}

// Validate checks every boundary constraint of the request.
func (m ApplyPostingJournalModel) Validate() error {
	var errs []error
	if m.AccountingNumber < 1 || m.AccountingNumber > maxAccountingNumber {
		errs = append(errs, fmt.Errorf("accountingNumber %d out of range [1..%d]", m.AccountingNumber, maxAccountingNumber))
	}
	if len(m.ApplyPostingLines) == 0 {
		errs = append(errs, errors.New("applyPostingLines must not be empty"))
	}
	for i, line := range m.ApplyPostingLines {
		for _, err := range line.validate() {
			errs = append(errs, fmt.Errorf("applyPostingLines[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m ApplyPostingLineModel) validate() []error {
	var errs []error
	if m.Identifier != "" {
		if _, err := uuid.Parse(m.Identifier); err != nil {
			errs = append(errs, fmt.Errorf("identifier %q is not a valid guid", m.Identifier))
		}
	}
	if m.PostingDate.IsZero() {
		errs = append(errs, errors.New("postingDate is mandatory"))
	} else if y := m.PostingDate.Year(); y < minYear || y > maxYear {
		errs = append(errs, fmt.Errorf("postingDate year %d out of range [%d..%d]", y, minYear, maxYear))
	}
	if len(m.Reference) > maxReferenceLen {
		errs = append(errs, fmt.Errorf("reference exceeds %d characters", maxReferenceLen))
	}
	if !accountNumberPattern.MatchString(m.AccountNumber) {
		errs = append(errs, fmt.Errorf("accountNumber %q does not match %s", m.AccountNumber, accountNumberPattern))
	}
	if m.Details == "" || len(m.Details) > maxDetailsLen {
		errs = append(errs, fmt.Errorf("details length must be in [1..%d]", maxDetailsLen))
	}
	if m.BudgetAccountNumber != "" && !accountNumberPattern.MatchString(m.BudgetAccountNumber) {
		errs = append(errs, fmt.Errorf("budgetAccountNumber %q does not match %s", m.BudgetAccountNumber, accountNumberPattern))
	}
	if m.ContactAccountNumber != "" && !accountNumberPattern.MatchString(m.ContactAccountNumber) {
		errs = append(errs, fmt.Errorf("contactAccountNumber %q does not match %s", m.ContactAccountNumber, accountNumberPattern))
	}
	for _, amount := range []struct {
		name  string
		value *decimal.Decimal
	}{{"debit", m.Debit}, {"credit", m.Credit}} {
		if amount.value == nil {
			continue
		}
		if amount.value.IsNegative() || amount.value.GreaterThan(maxAmount) {
			errs = append(errs, fmt.Errorf("%s %s out of range [0..%s]", amount.name, amount.value, maxAmount))
		}
	}
	if m.SortOrder != nil && (*m.SortOrder < 0 || *m.SortOrder > maxSortOrder) {
		errs = append(errs, fmt.Errorf("sortOrder %d out of range [0..%d]", *m.SortOrder, maxSortOrder))
	}
	return errs
}

// Journal converts the validated request into an engine journal. Lines
// without an explicit sort order get their input position, preserving input
// order under the stable sort.
func (m ApplyPostingJournalModel) Journal() Journal {
	j := Journal{AccountingNumber: m.AccountingNumber}
	for i, line := range m.ApplyPostingLines {
		l := PostingLine{
			Identifier:           line.Identifier,
			PostingDate:          line.PostingDate,
			Reference:            line.Reference,
			AccountNumber:        line.AccountNumber,
			Details:              line.Details,
			BudgetAccountNumber:  line.BudgetAccountNumber,
			ContactAccountNumber: line.ContactAccountNumber,
			SortOrder:            i,
		}
		if line.Debit != nil {
			l.Debit = *line.Debit
		}
		if line.Credit != nil {
			l.Credit = *line.Credit
		}
		if line.SortOrder != nil {
			l.SortOrder = *line.SortOrder
		}
		j.Lines = append(j.Lines, l)
	}
	return j
}

// ApplyPostingJournalResultModel is the response of a successful application:
// every applied line and every warning, never silently dropped.
type ApplyPostingJournalResultModel struct {
	PostingLines    []PostingLineModel    `json:"postingLines"`
	PostingWarnings []PostingWarningModel `json:"postingWarnings"`
}

// AccountIdentificationModel identifies an account at the boundary.
type AccountIdentificationModel struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName,omitempty"`
}

// CreditInfoValuesModel is the snapshot shape of an ordinary account.
type CreditInfoValuesModel struct {
	Balance   decimal.Decimal `json:"balance"`
	Credit    decimal.Decimal `json:"credit"`
	Available decimal.Decimal `json:"available"`
}

// BudgetInfoValuesModel is the snapshot shape of a budget account.
type BudgetInfoValuesModel struct {
	Budget    decimal.Decimal `json:"budget"`
	Posted    decimal.Decimal `json:"posted"`
	Available decimal.Decimal `json:"available"`
}

// BalanceInfoValuesModel is the snapshot shape of a contact account.
type BalanceInfoValuesModel struct {
	Balance decimal.Decimal `json:"balance"`
}

// PostingLineModel is one applied posting line.
type PostingLineModel struct {
	Identifier                        string                      `json:"identifier"`
	PostingDate                       date.Date                   `json:"postingDate"`
	Reference                         string                      `json:"reference,omitempty"`
	Account                           AccountIdentificationModel  `json:"account"`
	AccountValuesAtPostingDate        *CreditInfoValuesModel      `json:"accountValuesAtPostingDate,omitempty"`
	Details                           string                      `json:"details"`
	BudgetAccount                     *AccountIdentificationModel `json:"budgetAccount,omitempty"`
	BudgetAccountValuesAtPostingDate  *BudgetInfoValuesModel      `json:"budgetAccountValuesAtPostingDate,omitempty"`
	Debit                             *decimal.Decimal            `json:"debit,omitempty"`
	Credit                            *decimal.Decimal            `json:"credit,omitempty"`
	ContactAccount                    *AccountIdentificationModel `json:"contactAccount,omitempty"`
	ContactAccountValuesAtPostingDate *BalanceInfoValuesModel     `json:"contactAccountValuesAtPostingDate,omitempty"`
	SortOrder                         int                         `json:"sortOrder"`
}

// PostingWarningModel is one financial warning raised by an applied line.
type PostingWarningModel struct {
	Reason      WarningReason              `json:"reason"`
	Account     AccountIdentificationModel `json:"account"`
	Amount      decimal.Decimal            `json:"amount"`
	PostingLine PostingLineModel           `json:"postingLine"`
}

// NewApplyPostingJournalResultModel converts an engine result into its
// boundary shape, resolving account names through the same resolver the
// journal was applied with.
func NewApplyPostingJournalResultModel(result *JournalResult, resolver AccountResolver) ApplyPostingJournalResultModel {
	m := ApplyPostingJournalResultModel{
		PostingLines:    make([]PostingLineModel, 0, len(result.Lines)),
		PostingWarnings: make([]PostingWarningModel, 0, len(result.Warnings)),
	}
	byIdentifier := make(map[string]PostingLineModel, len(result.Lines))
	for _, line := range result.Lines {
		lm := newPostingLineModel(line, resolver)
		m.PostingLines = append(m.PostingLines, lm)
		byIdentifier[lm.Identifier] = lm
	}
	for _, w := range result.Warnings {
		account := identifyAccount(resolver, w.AccountNumber)
		if w.Reason != AccountIsOverdrawn {
			account = identifyBudgetAccount(resolver, w.AccountNumber)
		}
		m.PostingWarnings = append(m.PostingWarnings, PostingWarningModel{
			Reason:      w.Reason,
			Account:     account,
			Amount:      w.Amount,
			PostingLine: byIdentifier[w.Line.Identifier],
		})
	}
	return m
}

func newPostingLineModel(line AppliedLine, resolver AccountResolver) PostingLineModel {
	lm := PostingLineModel{
		Identifier:  line.Identifier,
		PostingDate: line.PostingDate,
		Reference:   line.Reference,
		Account:     identifyAccount(resolver, line.AccountNumber),
		Details:     line.Details,
		SortOrder:   line.SortOrder,
		AccountValuesAtPostingDate: &CreditInfoValuesModel{
			Balance:   line.AccountValuesAtPostingDate.Balance,
			Credit:    line.AccountValuesAtPostingDate.Credit,
			Available: line.AccountValuesAtPostingDate.Available(),
		},
	}
	if line.Debit.IsPositive() {
		debit := line.Debit
		lm.Debit = &debit
	}
	if line.Credit.IsPositive() {
		credit := line.Credit
		lm.Credit = &credit
	}
	if line.BudgetAccountNumber != "" {
		account := identifyBudgetAccount(resolver, line.BudgetAccountNumber)
		lm.BudgetAccount = &account
		if v := line.BudgetAccountValuesAtPostingDate; v != nil {
			lm.BudgetAccountValuesAtPostingDate = &BudgetInfoValuesModel{
				Budget:    v.Budget(),
				Posted:    v.Posted,
				Available: v.Available(),
			}
		}
	}
	if line.ContactAccountNumber != "" {
		account := identifyContactAccount(resolver, line.ContactAccountNumber)
		lm.ContactAccount = &account
		if v := line.ContactAccountValuesAtPostingDate; v != nil {
			lm.ContactAccountValuesAtPostingDate = &BalanceInfoValuesModel{Balance: v.Balance}
		}
	}
	return lm
}

func identifyAccount(resolver AccountResolver, number string) AccountIdentificationModel {
	id := AccountIdentificationModel{AccountNumber: number}
	if a, ok := resolver.Account(number); ok {
		id.AccountName = a.Name
	}
	return id
}

func identifyBudgetAccount(resolver AccountResolver, number string) AccountIdentificationModel {
	id := AccountIdentificationModel{AccountNumber: number}
	if a, ok := resolver.BudgetAccount(number); ok {
		id.AccountName = a.Name
	}
	return id
}

func identifyContactAccount(resolver AccountResolver, number string) AccountIdentificationModel {
	id := AccountIdentificationModel{AccountNumber: number}
	if a, ok := resolver.ContactAccount(number); ok {
		id.AccountName = a.Name
	}
	return id
}
