package ledger

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// ImportMapping locates posting line fields inside a foreign JSON export
// (a bank statement download, another system's dump) as jsonpath
// expressions. Lines addresses the array of line objects; the per-field
// paths are evaluated against each line object. Optional fields map from ""
// and are skipped.
type ImportMapping struct {
	Lines string

	PostingDate          string
	AccountNumber        string
	Details              string
	Reference            string
	BudgetAccountNumber  string
	ContactAccountNumber string
	Debit                string
	Credit               string
}

// ImportJournal extracts an apply-posting-journal request from a foreign
// JSON document using the given mapping. The result is validated like any
// other request; a malformed line rejects the whole import.
func ImportJournal(r io.Reader, accountingNumber int, mapping ImportMapping) (ApplyPostingJournalModel, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return ApplyPostingJournalModel{}, fmt.Errorf("malformed import document: %w", err)
	}

	jlines, err := jsonpath.Get(mapping.Lines, jobj)
	if err != nil {
		return ApplyPostingJournalModel{}, fmt.Errorf("error evaluating lines path %q: %w", mapping.Lines, err)
	}
	list, ok := jlines.([]any)
	if !ok {
		return ApplyPostingJournalModel{}, fmt.Errorf("lines path %q: want an array, got %T", mapping.Lines, jlines)
	}

	m := ApplyPostingJournalModel{AccountingNumber: accountingNumber}
	for i, jline := range list {
		line, err := mapping.extractLine(jline)
		if err != nil {
			return ApplyPostingJournalModel{}, fmt.Errorf("line %d: %w", i, err)
		}
		m.ApplyPostingLines = append(m.ApplyPostingLines, line)
	}
	if err := m.Validate(); err != nil {
		return ApplyPostingJournalModel{}, err
	}
	return m, nil
}

func (mapping ImportMapping) extractLine(jline any) (ApplyPostingLineModel, error) {
	var line ApplyPostingLineModel

	on, err := extractString(mapping.PostingDate, jline)
	if err != nil {
		return line, err
	}
	line.PostingDate, err = date.Parse(on)
	if err != nil {
		return line, err
	}
	if line.AccountNumber, err = extractString(mapping.AccountNumber, jline); err != nil {
		return line, err
	}
	if line.Details, err = extractString(mapping.Details, jline); err != nil {
		return line, err
	}
	for _, opt := range []struct {
		path   string
		target *string
	}{
		{mapping.Reference, &line.Reference},
		{mapping.BudgetAccountNumber, &line.BudgetAccountNumber},
		{mapping.ContactAccountNumber, &line.ContactAccountNumber},
	} {
		if opt.path == "" {
			continue
		}
		if *opt.target, err = extractString(opt.path, jline); err != nil {
			return line, err
		}
	}
	if line.Debit, err = extractAmount(mapping.Debit, jline); err != nil {
		return line, err
	}
	if line.Credit, err = extractAmount(mapping.Credit, jline); err != nil {
		return line, err
	}
	return line, nil
}

// first unwraps the single-element list that jsonpath sometimes returns
// instead of a scalar.
func first(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func extractString(path string, jline any) (string, error) {
	jval, err := jsonpath.Get(path, jline)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	val, ok := first(jval).(string)
	if !ok {
		return "", fmt.Errorf("path %q: want a string, got %T", path, jval)
	}
	return val, nil
}

// extractAmount reads an optional amount; a missing field or an empty path
// yields nil. Amounts may be JSON numbers or strings.
func extractAmount(path string, jline any) (*decimal.Decimal, error) {
	if path == "" {
		return nil, nil
	}
	jval, err := jsonpath.Get(path, jline)
	if err != nil {
		// Absent amounts are legal: a line is either a debit or a credit.
		return nil, nil
	}
	var amount decimal.Decimal
	switch v := first(jval).(type) {
	case float64:
		amount = decimal.NewFromFloat(v)
	case string:
		if v == "" {
			return nil, nil
		}
		amount, err = decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("path %q: want a number or string, got %T", path, jval)
	}
	if amount.IsZero() {
		return nil, nil
	}
	return &amount, nil
}
