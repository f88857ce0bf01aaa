package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrelq/carteira"
	"github.com/andrelq/carteira/docs"
	"github.com/andrelq/carteira/renderer"
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

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a Brazilian retail investor asking about his own portfolio:
			B3 listed positions, fixed income (CDB, LCI, LCA, Tesouro Direto) and
			amortized loans. Figures about his portfolio always come from the
			Accountant, never from memory: his recorded data is the truth.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates an expert grounded in search for market context.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		well aware of the Brazilian financial products and institutions,
		and of the latest news about B3 listed companies and funds.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the Brazilian financial market: B3 companies, FIIs,
			fixed income products, CDI and Selic rates, inflation. You leverage Google
			Search to ground your assertions. You can get the latest news too, and you
			know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert that reads the user's book and computes
// with the engine.
func NewAccountant(bookDir string) *Expert {
	lib := []Function{summaryFunc(bookDir), scheduleFunc(bookDir), xirrFunc()}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He reads the user's recorded portfolio
		and computes the relevant figures: net worth, positions, fixed income
		valuations, loan balances, amortization schedules and annual returns.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's portfolio records.
				Use the available tools to compute figures, never invent them.
				Entities reported as skipped are missing data: say so instead of
				treating them as worth zero.

				Background on how the figures are computed:

			` + must(docs.GetTopic("*"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// summaryFunc exposes the portfolio review.
func summaryFunc(bookDir string) *Func {
	const name = "Summary"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Summary computes the portfolio review on a given date:
			net worth, positions with market values, fixed income valuations,
			loan balances, and the entities skipped for missing data.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The date of the review, YYYY-MM-DD. Today is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted portfolio review.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			asOf, err := parseDateArg(args)
			if err != nil {
				return errResponse(id, name, err)
			}
			book, err := carteira.DecodeBook(bookDir)
			if err != nil {
				return errResponse(id, name, fmt.Errorf("could not load the book: %w", err))
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": renderer.SummaryMarkdown(book.Review(asOf))},
			}
		},
	}
}

// scheduleFunc exposes the amortization schedule of one loan.
func scheduleFunc(bookDir string) *Func {
	const name = "LoanSchedule"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `LoanSchedule computes the full amortization schedule of one
			loan contract: every instalment with its interest and principal split.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"loan": {
						Type:        genai.TypeString,
						Description: "The loan's name as recorded, or its id.",
					},
				},
				Required: []string{"loan"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted amortization schedule.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			key, ok := args["loan"].(string)
			if !ok {
				return errResponse(id, name, fmt.Errorf("argument 'loan' is not a string but %T", args["loan"]))
			}
			book, err := carteira.DecodeBook(bookDir)
			if err != nil {
				return errResponse(id, name, fmt.Errorf("could not load the book: %w", err))
			}
			for _, l := range book.Loans {
				if strings.EqualFold(l.Name, key) || l.ID.String() == key {
					return &genai.FunctionResponse{
						ID:       id,
						Name:     name,
						Response: map[string]any{"output": renderer.ScheduleMarkdown(l)},
					}
				}
			}
			return errResponse(id, name, fmt.Errorf("no loan named %q in the book", key))
		},
	}
}

// xirrFunc exposes the money-weighted annual return solver.
func xirrFunc() *Func {
	const name = "XIRR"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `XIRR computes the money-weighted annual return of a series of
			dated cash flows. Outflows (purchases) are negative amounts, inflows
			(sales, dividends, current value) are positive.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"flows": {
						Type:        genai.TypeArray,
						Description: "The dated cash flows, at least two with opposite signs.",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"date":   {Type: genai.TypeString, Description: "YYYY-MM-DD."},
								"amount": {Type: genai.TypeNumber, Description: "Signed amount in BRL."},
							},
							Required: []string{"date", "amount"},
						},
					},
				},
				Required: []string{"flows"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The annual rate as a percentage, or an explanation of why it is undefined.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			flows, err := parseFlowsArg(args)
			if err != nil {
				return errResponse(id, name, err)
			}
			rate, ok := carteira.XIRR(flows)
			if !ok {
				return &genai.FunctionResponse{
					ID:       id,
					Name:     name,
					Response: map[string]any{"output": "undefined: the flows admit no annual rate (fewer than two flows, or no sign change)"},
				}
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": fmt.Sprintf("%.2f%% per year", rate*100)},
			}
		},
	}
}

// parseDateArg reads the optional 'date' argument, defaulting to today.
func parseDateArg(args map[string]any) (carteira.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return carteira.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return carteira.Date{}, fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	d, err := carteira.ParseDate(sdate)
	if err != nil {
		return carteira.Date{}, fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date, got %q", sdate)
	}
	return d, nil
}

// parseFlowsArg reads the 'flows' argument of the XIRR function.
func parseFlowsArg(args map[string]any) ([]carteira.CashFlow, error) {
	iflows, ok := args["flows"].([]any)
	if !ok {
		return nil, fmt.Errorf("argument 'flows' is not a list as expected but %T", args["flows"])
	}
	var flows []carteira.CashFlow
	for i, iflow := range iflows {
		m, ok := iflow.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("flow %d is not an object but %T", i, iflow)
		}
		sdate, ok := m["date"].(string)
		if !ok {
			return nil, fmt.Errorf("flow %d: 'date' is not a string but %T", i, m["date"])
		}
		d, err := carteira.ParseDate(sdate)
		if err != nil {
			return nil, fmt.Errorf("flow %d: invalid date %q", i, sdate)
		}
		amount, ok := m["amount"].(float64)
		if !ok {
			return nil, fmt.Errorf("flow %d: 'amount' is not a number but %T", i, m["amount"])
		}
		flows = append(flows, carteira.CashFlow{Date: d, Amount: amount})
	}
	return flows, nil
}
