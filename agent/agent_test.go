package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/cryptoath"
	"google.golang.org/genai"
)

func testDocument(t *testing.T, n int) *cryptoath.Document {
	t.Helper()
	a, err := cryptoath.NewAssembler(cryptoath.Config{
		Cutoff:   3,
		Registry: cryptoath.DefaultRegistry(),
		Views: []cryptoath.ViewSpec{
			{Name: "price", Title: "Price", Fields: []string{cryptoath.FieldName, cryptoath.FieldCurrentPrice}, SortBy: cryptoath.FieldMarketCap},
			{Name: "marketcap", Fields: []string{cryptoath.FieldName, cryptoath.FieldMarketCap}, SortBy: cryptoath.FieldMarketCap},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	records := make([]cryptoath.Record, n)
	for i := range records {
		records[i] = cryptoath.NewRecord(
			cryptoath.F(cryptoath.FieldName, fmt.Sprintf("coin-%d", i)),
			cryptoath.F(cryptoath.FieldCurrentPrice, i+1),
			cryptoath.F(cryptoath.FieldMarketCap, 100*(n-i)),
			cryptoath.F(cryptoath.FieldLastUpdated, "2025-03-01 10:00:00 UTC"),
		)
	}
	doc, err := a.Assemble(records)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPrompt(t *testing.T) {
	doc := testDocument(t, 5)
	prompt := Commentator{}.Prompt(doc)

	for _, want := range []string{
		"Data as of 2025-03-01 10:00:00.",
		"view_table function: marketcap.",
		"| # | Name | Current Price (USD) |",
		"| 1 | coin-0 | $1.00 |",
		"| 3 | coin-2 | $3.00 |",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt() is missing %q\n%s", want, prompt)
		}
	}
	for _, gated := range []string{"coin-3", "coin-4"} {
		if strings.Contains(prompt, gated) {
			t.Errorf("Prompt() leaks the gated row %s", gated)
		}
	}
}

func TestPromptWithoutTables(t *testing.T) {
	prompt := Commentator{}.Prompt(&cryptoath.Document{Freshness: "N/A"})
	if !strings.Contains(prompt, "There is no data.") {
		t.Errorf("Prompt() = %q", prompt)
	}
}

func TestViewTableFunction(t *testing.T) {
	doc := testDocument(t, 5)
	lib := NewLibrary([]*Func{viewTable(doc)})
	ctx := context.Background()

	resp := lib(ctx, &genai.FunctionCall{ID: "1", Name: viewFunction, Args: map[string]any{"view": "marketcap"}})
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("view_table(marketcap) = %v, want an output", resp.Response)
	}
	if resp.ID != "1" || resp.Name != viewFunction {
		t.Errorf("response = %s/%s", resp.ID, resp.Name)
	}
	if !strings.Contains(out, "| 1 | coin-0 | $500.00 |") || strings.Contains(out, "coin-3") {
		t.Errorf("view_table(marketcap) output:\n%s", out)
	}

	for _, call := range []*genai.FunctionCall{
		{Name: viewFunction, Args: map[string]any{"view": "volume"}},
		{Name: viewFunction, Args: map[string]any{"view": 3}},
		{Name: "positions", Args: map[string]any{}},
	} {
		resp := lib(ctx, call)
		if _, ok := resp.Response["error"].(string); !ok {
			t.Errorf("%s(%v) = %v, want an error", call.Name, call.Args, resp.Response)
		}
	}
}

func TestViewTableDeclaration(t *testing.T) {
	decls := NewDeclaration([]*Func{viewTable(&cryptoath.Document{})})
	if len(decls) != 1 || decls[0].Name != viewFunction {
		t.Fatalf("NewDeclaration() = %v", decls)
	}
	if !strings.Contains(decls[0].Description, "percentage") {
		t.Error("declaration does not document the field kinds")
	}
}

func TestAskNotStarted(t *testing.T) {
	e := &Expert{Name: "commentator"}
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hello"}); err == nil {
		t.Error("Ask() on a stopped expert expected an error")
	}
}
