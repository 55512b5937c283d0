package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalancer"
	"github.com/etnz/rebalancer/export"
	"github.com/etnz/rebalancer/renderer"
	"github.com/google/subcommands"
)

type driftCmd struct {
	columnFlags
	output string
}

func (*driftCmd) Name() string     { return "drift" }
func (*driftCmd) Synopsis() string { return "compare the weights of a target portfolio to a source portfolio" }
func (*driftCmd) Usage() string {
	return `rebal drift [-o <file>] <source> <target>

  Computes each symbol's weight in both portfolios, the drift (target - source),
  its status and the tracking error of the target.
`
}

func (c *driftCmd) SetFlags(f *flag.FlagSet) {
	c.columnFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "also write the drift table to a .csv or .xlsx file")
}

func (c *driftCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a source and a target file")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	source, target, err := a.loadPair(ctx, &c.columnFlags, f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	sw, err := rebalancer.Normalize(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error normalizing source: %v\n", err)
		return subcommands.ExitFailure
	}
	tw, err := rebalancer.Normalize(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error normalizing target: %v\n", err)
		return subcommands.ExitFailure
	}
	rows := rebalancer.ClassifyDrift(sw, tw)
	printMarkdown(renderer.DriftMarkdown(rows, rebalancer.Analyze(rows)))

	if c.output != "" {
		if err := export.Save(c.output, export.Drift(rows)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// loadPair loads the source and target portfolios with the same column mapper.
func (a *app) loadPair(ctx context.Context, cf *columnFlags, sourcePath, targetPath string) (source, target rebalancer.Portfolio, err error) {
	m, err := a.columnMapper(ctx, cf)
	if err != nil {
		return
	}
	if source, err = a.loadPortfolio(ctx, m, sourcePath); err != nil {
		return
	}
	target, err = a.loadPortfolio(ctx, m, targetPath)
	return
}
