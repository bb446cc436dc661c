package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/osdevgrp/ledger/renderer"
)

type contactsCmd struct{}

func (*contactsCmd) Name() string     { return "contacts" }
func (*contactsCmd) Synopsis() string { return "display the contact balances" }
func (*contactsCmd) Usage() string {
	return `bol contacts [-on <date>]

  Displays what each counterparty owes or is owed at the status date.
`
}

func (*contactsCmd) SetFlags(f *flag.FlagSet) {}

func (c *contactsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := reportDate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := renderer.ContactsMarkdown(ctx, b, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
