package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cryptoath"
	"github.com/google/subcommands"
)

type hashCmd struct{}

func (*hashCmd) Name() string     { return "hash" }
func (*hashCmd) Synopsis() string { return "print the unlock hash of a secret" }
func (*hashCmd) Usage() string {
	return `ath hash <secret>

  Prints the hash of the secret, as embedded in the HTML report.
`
}

func (c *hashCmd) SetFlags(f *flag.FlagSet) {}

func (c *hashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fmt.Println(cryptoath.HashSecret(f.Arg(0)))
	return subcommands.ExitSuccess
}
