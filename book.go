package ledger

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/osdevgrp/ledger/date"
)

// Book is an in-memory chart of accounts: every account, budget account and
// contact account of one accounting, plus the group catalogs they report
// under. It implements AccountResolver, so a repository layer can load a
// Book per request and hand it to a PostingApplier.
type Book struct {
	Name string

	accounts        map[string]*Account
	budgetAccounts  map[string]*BudgetAccount
	contactAccounts map[string]*ContactAccount

	accountGroups       map[int]string
	budgetAccountGroups map[int]string
}

// NewBook creates an empty chart of accounts.
func NewBook(name string) *Book {
	return &Book{
		Name:                name,
		accounts:            make(map[string]*Account),
		budgetAccounts:      make(map[string]*BudgetAccount),
		contactAccounts:     make(map[string]*ContactAccount),
		accountGroups:       make(map[int]string),
		budgetAccountGroups: make(map[int]string),
	}
}

// AddAccountGroup registers (or renames) an account group.
func (b *Book) AddAccountGroup(number int, name string) { b.accountGroups[number] = name }

// AddBudgetAccountGroup registers (or renames) a budget account group.
func (b *Book) AddBudgetAccountGroup(number int, name string) { b.budgetAccountGroups[number] = name }

// AddAccount adds an account to the chart; the number must be unused.
func (b *Book) AddAccount(a *Account) error {
	if _, exists := b.accounts[a.Number]; exists {
		return fmt.Errorf("account %q already exists", a.Number)
	}
	b.accounts[a.Number] = a
	return nil
}

// AddBudgetAccount adds a budget account to the chart; the number must be unused.
func (b *Book) AddBudgetAccount(a *BudgetAccount) error {
	if _, exists := b.budgetAccounts[a.Number]; exists {
		return fmt.Errorf("budget account %q already exists", a.Number)
	}
	b.budgetAccounts[a.Number] = a
	return nil
}

// AddContactAccount adds a contact account to the chart; the number must be unused.
func (b *Book) AddContactAccount(a *ContactAccount) error {
	if _, exists := b.contactAccounts[a.Number]; exists {
		return fmt.Errorf("contact account %q already exists", a.Number)
	}
	b.contactAccounts[a.Number] = a
	return nil
}

// Account resolves an account by number.
func (b *Book) Account(number string) (*Account, bool) {
	a, ok := b.accounts[number]
	return a, ok
}

// BudgetAccount resolves a budget account by number.
func (b *Book) BudgetAccount(number string) (*BudgetAccount, bool) {
	a, ok := b.budgetAccounts[number]
	return a, ok
}

// ContactAccount resolves a contact account by number.
func (b *Book) ContactAccount(number string) (*ContactAccount, bool) {
	a, ok := b.contactAccounts[number]
	return a, ok
}

var _ AccountResolver = (*Book)(nil)

// Accounts iterates over the accounts ordered by number.
func (b *Book) Accounts() iter.Seq[*Account] {
	numbers := slices.Sorted(maps.Keys(b.accounts))
	return func(yield func(*Account) bool) {
		for _, n := range numbers {
			if !yield(b.accounts[n]) {
				return
			}
		}
	}
}

// BudgetAccounts iterates over the budget accounts ordered by number.
func (b *Book) BudgetAccounts() iter.Seq[*BudgetAccount] {
	numbers := slices.Sorted(maps.Keys(b.budgetAccounts))
	return func(yield func(*BudgetAccount) bool) {
		for _, n := range numbers {
			if !yield(b.budgetAccounts[n]) {
				return
			}
		}
	}
}

// ContactAccounts iterates over the contact accounts ordered by number.
func (b *Book) ContactAccounts() iter.Seq[*ContactAccount] {
	numbers := slices.Sorted(maps.Keys(b.contactAccounts))
	return func(yield func(*ContactAccount) bool) {
		for _, n := range numbers {
			if !yield(b.contactAccounts[n]) {
				return
			}
		}
	}
}

// AccountGroups returns the registered account group numbers, sorted.
func (b *Book) AccountGroups() []int { return slices.Sorted(maps.Keys(b.accountGroups)) }

// BudgetAccountGroups returns the registered budget account group numbers, sorted.
func (b *Book) BudgetAccountGroups() []int { return slices.Sorted(maps.Keys(b.budgetAccountGroups)) }

// AccountGroupName returns the name registered for an account group.
func (b *Book) AccountGroupName(number int) string { return b.accountGroups[number] }

// BudgetAccountGroupName returns the name registered for a budget account group.
func (b *Book) BudgetAccountGroupName(number int) string { return b.budgetAccountGroups[number] }

// AccountGroupStatus aggregates every account of one group for a status date.
func (b *Book) AccountGroupStatus(ctx context.Context, group int, statusDate date.Date) (AccountGroupStatus, error) {
	var members []*Account
	for a := range b.Accounts() {
		if a.Group == group {
			members = append(members, a)
		}
	}
	return CalculateAccountGroupStatus(ctx, group, b.accountGroups[group], members, statusDate)
}

// BudgetAccountGroupStatus aggregates every budget account of one group for a status date.
func (b *Book) BudgetAccountGroupStatus(ctx context.Context, group int, statusDate date.Date) (BudgetAccountGroupStatus, error) {
	var members []*BudgetAccount
	for a := range b.BudgetAccounts() {
		if a.Group == group {
			members = append(members, a)
		}
	}
	return CalculateBudgetAccountGroupStatus(ctx, group, b.budgetAccountGroups[group], members, statusDate)
}
