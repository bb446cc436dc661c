package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/osdevgrp/ledger"
)

type importCmd struct {
	accounting int
	mapping    ledger.ImportMapping
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "extract a posting journal from a foreign JSON export" }
func (*importCmd) Usage() string {
	return `bol import -lines <path> -date <path> -account <path> -details <path> [options] <export.json>

  Extracts posting lines from a foreign JSON document, typically a bank
  statement download, using jsonpath expressions. The resulting journal is
  validated and printed as JSON for review; apply it with 'bol apply'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.accounting, "accounting", 1, "Accounting number of the journal.")
	f.StringVar(&c.mapping.Lines, "lines", "$", "Path to the array of line objects.")
	f.StringVar(&c.mapping.PostingDate, "date", "$.date", "Path to the posting date inside a line.")
	f.StringVar(&c.mapping.AccountNumber, "account", "$.account", "Path to the account number inside a line.")
	f.StringVar(&c.mapping.Details, "details", "$.details", "Path to the details inside a line.")
	f.StringVar(&c.mapping.Reference, "reference", "", "Optional path to the reference inside a line.")
	f.StringVar(&c.mapping.BudgetAccountNumber, "budget-account", "", "Optional path to the budget account number inside a line.")
	f.StringVar(&c.mapping.ContactAccountNumber, "contact-account", "", "Optional path to the contact account number inside a line.")
	f.StringVar(&c.mapping.Debit, "debit", "", "Path to the debit amount inside a line.")
	f.StringVar(&c.mapping.Credit, "credit", "", "Path to the credit amount inside a line.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import expects exactly one export file")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open %q for reading: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	m, err := ledger.ImportJournal(in, c.accounting, c.mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
