package agent

import (
	"context"
	"fmt"

	"github.com/osdevgrp/ledger"
	"github.com/osdevgrp/ledger/date"
	"github.com/osdevgrp/ledger/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the state of his accounts: balances, budgets,
			what he still owes and what is still owed to him.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAccountant creates the expert in charge of the user's book. Its tools
// read the book file and render the reports the CLI would print.
func NewAccountant(bookFile string) *Expert {
	lib := []Function{
		newReportTool("Statement", "the account statement: every account's balance, credit limit and available credit per group, with last month and last year columns", renderer.StatementMarkdown),
		newReportTool("Budget", "the budget report: every budget account's planned versus posted figures, monthly and year to date, per group", renderer.BudgetMarkdown),
		newReportTool("Contacts", "the contact balances: what each counterparty owes or is owed", renderer.ContactsMarkdown),
	}
	for _, f := range lib {
		f.(*reportTool).bookFile = bookFile
	}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's book.
		He can render the account statement, the budget report and the contact balances
		for any status date to compute the relevant figures about the user's accounts.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's book.
				You know how to use the Tools to extract relevant information about the user's accounts.
				You are part of a team of experts; yours is everything about the user's book. They might ask
				you questions in approximative language, figure out what they meant.

				Use the available tools to get information about the user's accounts:
				  - the account statement
				  - the budget report
				  - the contact balances
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// reportTool exposes one rendered report as a callable function. The status
// date is the single optional argument.
type reportTool struct {
	name        string
	description string
	bookFile    string
	render      func(context.Context, *ledger.Book, date.Date) (string, error)
}

func newReportTool(name, description string, render func(context.Context, *ledger.Book, date.Date) (string, error)) Function {
	return &reportTool{name: name, description: description, render: render}
}

func (t *reportTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.name,
		Description: "Renders " + t.description + ".",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {
					Type:        genai.TypeString,
					Description: "The status date to compute the report for, as YYYY-MM-DD. Today is the default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report.",
		},
	}
}

func (t *reportTool) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: t.name, Response: map[string]any{}}

	statusDate, err := parseDate(args)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	b, err := ledger.LoadBook(t.bookFile)
	if err != nil {
		fresp.Response["error"] = fmt.Sprintf("could not load book: %v", err)
		return fresp
	}
	out, err := t.render(ctx, b, statusDate)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = out
	return fresp
}

func parseDate(args map[string]any) (date.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return date.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return date.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	on, err := date.Parse(sdate)
	if err != nil {
		return date.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date, got %q", sdate)
	}
	return on, nil
}
