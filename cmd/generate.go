package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoath"
	"github.com/etnz/cryptoath/agent"
	"github.com/etnz/cryptoath/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type generateCmd struct {
	output     string
	format     string
	commentary bool
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "generate the report from the data source" }
func (*generateCmd) Usage() string {
	return `ath generate [-o <file>] [-format html|json|md] [-commentary]

  Fetches the records from the configured source, assembles one table per
  view, and writes the report. Use "-o -" to write to the standard output.

  With -commentary, a short market commentary is written by a Gemini model
  (GEMINI_API_KEY must be set) and displayed above the tables.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the configured output.")
	f.StringVar(&c.format, "format", "", "Output format: html, json or md. Defaults to the configured format.")
	f.BoolVar(&c.commentary, "commentary", false, "Add a market commentary written by a Gemini model.")
}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.log.Sync()

	output, format := r.cfg.Output, r.cfg.Format
	if c.output != "" {
		output = c.output
	}
	if c.format != "" {
		format = c.format
	}

	doc, err := r.assemble(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	switch format {
	case "html":
		opts := renderer.HTMLOptions{RunID: r.id}
		if c.commentary || r.cfg.Commentary.Enabled {
			opts.Notes = r.comment(ctx, doc)
		}
		err = renderer.HTML(&buf, doc, opts)
	case "json":
		err = renderer.JSON(&buf, doc)
	case "md":
		buf.WriteString(renderer.Markdown(doc))
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, want html, json or md\n", format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering the report: %v\n", err)
		return subcommands.ExitFailure
	}

	if output == "-" {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	r.log.Info("report generated",
		zap.String("output", output),
		zap.String("format", format),
		zap.Int("tables", len(doc.Tables)),
		zap.String("freshness", doc.Freshness),
	)
	fmt.Printf("Report generated and saved to %s\n", output)
	return subcommands.ExitSuccess
}

// comment returns the market commentary of doc, empty if it could not be written.
// A missing commentary never fails the report.
func (r *run) comment(ctx context.Context, doc *cryptoath.Document) string {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		r.log.Warn("commentary skipped", zap.Error(err))
		return ""
	}
	c := agent.Commentator{Model: r.cfg.Commentary.Model, Logger: r.log}
	notes, err := c.Comment(ctx, client, doc)
	if err != nil {
		r.log.Warn("commentary skipped", zap.Error(err))
		return ""
	}
	return notes
}
