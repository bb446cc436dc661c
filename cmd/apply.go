package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/renderer"
	"github.com/shopspring/decimal"
)

type applyCmd struct {
	allowFutureDating bool
	graceMonths       int
	threshold         string
}

func (*applyCmd) Name() string     { return "apply" }
func (*applyCmd) Synopsis() string { return "apply a posting journal to the book" }
func (*applyCmd) Usage() string {
	return `bol apply [-allow-future-dating] [-grace-months <n>] [-threshold <amount>] <journal.json>

  Applies a posting journal to the book. Every line is validated first; one
  bad line rejects the whole journal and leaves the book untouched. The
  applied lines and the warnings they raised are printed, and the book is
  saved back.
`
}

func (c *applyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.allowFutureDating, "allow-future-dating", false, "Accept posting dates after today.")
	f.IntVar(&c.graceMonths, "grace-months", 2, "Months at the start of the year without income shortfall warnings.")
	f.StringVar(&c.threshold, "threshold", "0", "Amount the year-to-date income may lag the budget before warning.")
}

func (c *applyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: apply expects exactly one journal file")
		return subcommands.ExitUsageError
	}
	threshold, err := decimal.NewFromString(c.threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid threshold: %v\n", err)
		return subcommands.ExitUsageError
	}

	journal, err := decodeJournalFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	b, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	applier := ledger.NewPostingApplier(b, ledger.Policy{
		AllowFutureDating:          c.allowFutureDating,
		IncomeShortfallGraceMonths: c.graceMonths,
		IncomeShortfallThreshold:   threshold,
	})
	result, err := applier.Apply(ctx, journal.Journal())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := SaveBook(b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	renderer.SetReportingCurrency(*currency)
	printMarkdown(renderer.JournalMarkdown(ledger.NewApplyPostingJournalResultModel(result, b)))
	return subcommands.ExitSuccess
}

func decodeJournalFile(filename string) (ledger.ApplyPostingJournalModel, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ledger.ApplyPostingJournalModel{}, fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	m, err := ledger.DecodeApplyPostingJournal(f)
	if err != nil {
		return ledger.ApplyPostingJournalModel{}, fmt.Errorf("in %q: %w", filename, err)
	}
	return m, nil
}
