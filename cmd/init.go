package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptoath/config"
	"github.com/google/subcommands"
)

type initCmd struct {
	output string
	force  bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write the default configuration file" }
func (*initCmd) Usage() string {
	return `ath init [-o <file>] [-f]

  Writes the default configuration, to be edited.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "ath.yaml", "Configuration file to write.")
	f.BoolVar(&c.force, "f", false, "Overwrite an existing file.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(c.output); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists, use -f to overwrite it\n", c.output)
		return subcommands.ExitFailure
	}
	if err := config.DefaultConfig().Save(c.output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Configuration written to %s\n", c.output)
	return subcommands.ExitSuccess
}
