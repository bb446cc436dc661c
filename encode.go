package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/osdevgrp/ledger/date"
	"github.com/shopspring/decimal"
)

// This file persists a Book as a single human-readable JSON document, the
// CLI's store. The back-office suite proper keeps its ledgers in a
// relational store behind its own repository layer; this format exists so
// the engine can be driven and inspected without one.

// to parse json, we use dedicated local structs with tag annotations.

type jcreditInfo struct {
	Period  date.YearMonth  `json:"period"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

type jbudgetInfo struct {
	Period   date.YearMonth  `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Posted   decimal.Decimal `json:"posted"`
}

type jcontactInfo struct {
	Period  date.YearMonth  `json:"period"`
	Balance decimal.Decimal `json:"balance"`
}

type jaccount struct {
	Number string        `json:"number"`
	Name   string        `json:"name"`
	Group  int           `json:"group"`
	Infos  []jcreditInfo `json:"infos,omitempty"`
}

type jbudgetAccount struct {
	Number   string        `json:"number"`
	Name     string        `json:"name"`
	Group    int           `json:"group"`
	Category string        `json:"category"`
	Infos    []jbudgetInfo `json:"infos,omitempty"`
}

type jcontactAccount struct {
	Number string         `json:"number"`
	Name   string         `json:"name"`
	Infos  []jcontactInfo `json:"infos,omitempty"`
}

type jgroup struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type jbook struct {
	Name                string            `json:"name"`
	AccountGroups       []jgroup          `json:"accountGroups,omitempty"`
	BudgetAccountGroups []jgroup          `json:"budgetAccountGroups,omitempty"`
	Accounts            []jaccount        `json:"accounts,omitempty"`
	BudgetAccounts      []jbudgetAccount  `json:"budgetAccounts,omitempty"`
	ContactAccounts     []jcontactAccount `json:"contactAccounts,omitempty"`
}

// EncodeBook writes the book as indented JSON, accounts and records in
// deterministic order so the file is diff-friendly.
func EncodeBook(w io.Writer, b *Book) error {
	jb := jbook{Name: b.Name}
	for _, n := range b.AccountGroups() {
		jb.AccountGroups = append(jb.AccountGroups, jgroup{Number: n, Name: b.AccountGroupName(n)})
	}
	for _, n := range b.BudgetAccountGroups() {
		jb.BudgetAccountGroups = append(jb.BudgetAccountGroups, jgroup{Number: n, Name: b.BudgetAccountGroupName(n)})
	}
	for a := range b.Accounts() {
		ja := jaccount{Number: a.Number, Name: a.Name, Group: a.Group}
		for rec := range a.Infos().Records() {
			ja.Infos = append(ja.Infos, jcreditInfo{Period: rec.Period, Credit: rec.Values.Credit, Balance: rec.Values.Balance})
		}
		jb.Accounts = append(jb.Accounts, ja)
	}
	for a := range b.BudgetAccounts() {
		ja := jbudgetAccount{Number: a.Number, Name: a.Name, Group: a.Group, Category: a.Category.String()}
		for rec := range a.Infos().Records() {
			ja.Infos = append(ja.Infos, jbudgetInfo{Period: rec.Period, Income: rec.Values.Income, Expenses: rec.Values.Expenses, Posted: rec.Values.Posted})
		}
		jb.BudgetAccounts = append(jb.BudgetAccounts, ja)
	}
	for a := range b.ContactAccounts() {
		ja := jcontactAccount{Number: a.Number, Name: a.Name}
		for rec := range a.Infos().Records() {
			ja.Infos = append(ja.Infos, jcontactInfo{Period: rec.Period, Balance: rec.Values.Balance})
		}
		jb.ContactAccounts = append(jb.ContactAccounts, ja)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jb)
}

// DecodeBook reads a book back from its JSON form.
func DecodeBook(r io.Reader) (*Book, error) {
	var jb jbook
	if err := json.NewDecoder(r).Decode(&jb); err != nil {
		return nil, fmt.Errorf("malformed book: %w", err)
	}

	b := NewBook(jb.Name)
	for _, g := range jb.AccountGroups {
		b.AddAccountGroup(g.Number, g.Name)
	}
	for _, g := range jb.BudgetAccountGroups {
		b.AddBudgetAccountGroup(g.Number, g.Name)
	}
	for _, ja := range jb.Accounts {
		a := NewAccount(ja.Number, ja.Name, ja.Group)
		for _, info := range ja.Infos {
			a.Infos().Set(InfoRecord[CreditInfo]{Period: info.Period, Values: CreditInfo{Credit: info.Credit, Balance: info.Balance}})
		}
		if err := b.AddAccount(a); err != nil {
			return nil, err
		}
	}
	for _, ja := range jb.BudgetAccounts {
		category, err := ParseBudgetAccountCategory(ja.Category)
		if err != nil {
			return nil, fmt.Errorf("budget account %q: %w", ja.Number, err)
		}
		a := NewBudgetAccount(ja.Number, ja.Name, ja.Group, category)
		for _, info := range ja.Infos {
			a.Infos().Set(InfoRecord[BudgetInfo]{Period: info.Period, Values: BudgetInfo{Income: info.Income, Expenses: info.Expenses, Posted: info.Posted}})
		}
		if err := b.AddBudgetAccount(a); err != nil {
			return nil, err
		}
	}
	for _, ja := range jb.ContactAccounts {
		a := NewContactAccount(ja.Number, ja.Name)
		for _, info := range ja.Infos {
			a.Infos().Set(InfoRecord[ContactInfo]{Period: info.Period, Values: ContactInfo{Balance: info.Balance}})
		}
		if err := b.AddContactAccount(a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// LoadBook reads a book from a file.
func LoadBook(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", filename, err)
	}
	return b, nil
}

// SaveBook writes a book to a file.
func SaveBook(filename string, b *Book) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot open %q for writing: %w", filename, err)
	}
	defer f.Close()
	return EncodeBook(f, b)
}
