package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/cryptoath"
	"github.com/etnz/cryptoath/docs"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is the model used when a Commentator has none.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are a cryptocurrency market analyst writing for a public web page.
You only comment on the figures you are given, you never give financial advice.
Answer in markdown, with a single short paragraph and no title.`

// Commentator writes a market commentary on the visible rows of a Document.
// Gated rows are never shared with the model.
type Commentator struct {
	Model  string
	Logger *zap.Logger
}

// Prompt returns the question asked about doc: the visible rows of its first table.
func (c Commentator) Prompt(doc *cryptoath.Document) string {
	var b strings.Builder
	b.WriteString("Write a market commentary of 3 to 5 sentences about the assets below, ")
	b.WriteString("focusing on how far they are from their all-time-high.\n")
	fmt.Fprintf(&b, "Data as of %s.\n", doc.Freshness)
	if len(doc.Tables) == 0 {
		b.WriteString("\nThere is no data.\n")
		return b.String()
	}
	if len(doc.Tables) > 1 {
		names := make([]string, len(doc.Tables))
		for i, t := range doc.Tables {
			names[i] = t.Name
		}
		fmt.Fprintf(&b, "Other views can be read with the %s function: %s.\n", viewFunction, strings.Join(names[1:], ", "))
	}
	b.WriteString("\n")
	b.WriteString(visibleTable(doc.Tables[0]))
	return b.String()
}

// Comment asks the model for a commentary on doc and returns it as markdown.
func (c Commentator) Comment(ctx context.Context, client *genai.Client, doc *cryptoath.Document) (string, error) {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	functions := []*Func{viewTable(doc)}
	e := &Expert{
		Name:      "commentator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(functions)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
		Library: NewLibrary(functions),
		Logger:  c.Logger,
	}
	if err := e.Start(ctx, client); err != nil {
		return "", fmt.Errorf("cannot start commentary: %w", err)
	}
	content, err := e.Ask(ctx, &genai.Part{Text: c.Prompt(doc)})
	if err != nil {
		return "", fmt.Errorf("cannot get commentary: %w", err)
	}
	comment := text(content)
	if comment == "" {
		return "", fmt.Errorf("empty commentary from model %s", model)
	}
	return comment, nil
}

const viewFunction = "view_table"

// viewTable returns the function reading the visible rows of a view of doc.
func viewTable(doc *cryptoath.Document) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: viewFunction,
			Description: `Returns the visible rows of a view of the report, as a markdown table.

			Fields are formatted as follows:

			` + fieldsTopic(),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"view": {
						Type:        genai.TypeString,
						Description: "The name of the view.",
					},
				},
				Required: []string{"view"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the visible rows of the view, ranked from 1.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["view"].(string)
			if !ok {
				return errorResponse(id, viewFunction, fmt.Errorf("invalid view argument %v, expected a string", args["view"]))
			}
			t, ok := doc.Table(name)
			if !ok {
				return errorResponse(id, viewFunction, fmt.Errorf("unknown view %q", name))
			}
			return outputResponse(id, viewFunction, visibleTable(t))
		},
	}
}

// fieldsTopic returns the documentation of field formatting, empty if missing.
func fieldsTopic() string {
	topic, err := docs.GetTopic("fields")
	if err != nil {
		return ""
	}
	return topic
}

// visibleTable renders the visible rows of t as a markdown table.
func visibleTable(t cryptoath.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n| # |", t.Title)
	for _, c := range t.Columns {
		fmt.Fprintf(&b, " %s |", c.Header)
	}
	b.WriteString("\n|---|")
	for range t.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, r := range t.Rows {
		if r.Tier != cryptoath.Visible {
			continue
		}
		fmt.Fprintf(&b, "| %d |", r.Rank+1)
		for _, c := range r.Cells {
			fmt.Fprintf(&b, " %s |", c.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
