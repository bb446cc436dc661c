// Package cmd implements the CLI application to manage a back-office book.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/google/subcommands"
	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/date"
	"github.com/osdevgrp/ledger/renderer"
)

// Commands lists every subcommand; a main package registers them on its
// Commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&applyCmd{},
	&statementCmd{},
	&budgetCmd{},
	&monthlyCmd{},
	&contactsCmd{},
	&importCmd{},
	&fmtCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookFile = flag.String("book", "ledger.json", "Path to the book file (JSON format)")
var statusDateFlag = flag.String("on", "", "Status date for reports (defaults to today)")
var currency = flag.String("currency", "EUR", "Reporting currency used to format amounts")

// BookPath returns the path of the app book file.
func BookPath() string { return *bookFile }

// LoadBook loads the app book file. A missing file is an empty book, not an
// error, so the first command against a fresh directory just works.
func LoadBook() (*ledger.Book, error) {
	b, err := ledger.LoadBook(*bookFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, book file does not exist, starting with an empty book instead")
		return ledger.NewBook("book"), nil
	}
	return b, err
}

// SaveBook writes the book back to the app book file.
func SaveBook(b *ledger.Book) error { return ledger.SaveBook(*bookFile, b) }

// reportDate resolves the -on flag, defaulting to today, and applies the
// reporting currency to the renderer.
func reportDate() (date.Date, error) {
	renderer.SetReportingCurrency(*currency)
	if *statusDateFlag == "" {
		return date.Today(), nil
	}
	return date.Parse(*statusDateFlag)
}
