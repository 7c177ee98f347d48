package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoath"
	"github.com/etnz/cryptoath/renderer"
	"github.com/google/subcommands"
)

type previewCmd struct {
	view string
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "display the report in the terminal" }
func (*previewCmd) Usage() string {
	return `ath preview [-view <name>]

  Fetches the records and displays the tables of the report, with the tier of
  each row. Nothing is written.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "", "Only display this view.")
}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.log.Sync()

	doc, err := r.assemble(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.view != "" {
		t, ok := doc.Table(c.view)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown view %q\n", c.view)
			return subcommands.ExitUsageError
		}
		doc.Tables = []cryptoath.Table{t}
	}
	printMarkdown(renderer.Markdown(doc))
	return subcommands.ExitSuccess
}
