package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoath/config"
	"github.com/etnz/cryptoath/renderer"
	"github.com/google/subcommands"
)

type viewsCmd struct{}

func (*viewsCmd) Name() string     { return "views" }
func (*viewsCmd) Synopsis() string { return "list the configured views" }
func (*viewsCmd) Usage() string {
	return `ath views

  Lists the configured views: their fields, sort order and filter.
`
}

func (c *viewsCmd) SetFlags(f *flag.FlagSet) {}

func (c *viewsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	acfg, err := cfg.Assembly(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderViews(acfg.Views, acfg.Registry))
	return subcommands.ExitSuccess
}
