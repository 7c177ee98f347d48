// Package cmd implements the ath command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptoath"
	"github.com/etnz/cryptoath/config"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Commands lists the ath subcommands.
var Commands = []subcommands.Command{
	&generateCmd{},
	&previewCmd{},
	&viewsCmd{},
	&hashCmd{},
	&initCmd{},
	&topicCmd{},
}

// IsCommand reports whether name is one of the Commands.
func IsCommand(name string) bool {
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "Path to the YAML configuration file. Defaults to the "+EnvConfig+" environment variable.")
var Verbose = flag.Bool("v", false, "Log debug messages.")

// run holds what a report command needs.
type run struct {
	cfg *config.Config
	log *zap.Logger
	id  string
}

// newRun loads the configuration and builds the logger of a run.
func newRun() (*run, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	log, err := cfg.Logging.Build(*Verbose)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &run{cfg: cfg, log: log.With(zap.String("run", id)), id: id}, nil
}

// assemble fetches the records and assembles the report.
func (r *run) assemble(ctx context.Context) (*cryptoath.Document, error) {
	acfg, err := r.cfg.Assembly(r.log)
	if err != nil {
		return nil, err
	}
	a, err := cryptoath.NewAssembler(acfg)
	if err != nil {
		return nil, err
	}
	src, err := r.cfg.Source.Build(r.log)
	if err != nil {
		return nil, err
	}
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch records: %w", err)
	}
	r.log.Debug("records loaded", zap.Int("records", len(records)), zap.String("source", r.cfg.Source.Kind))
	return a.Assemble(records)
}

// printMarkdown renders md for the terminal, or prints it as is if it can't.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
