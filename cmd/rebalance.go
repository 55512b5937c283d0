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

type rebalanceCmd struct {
	columnFlags
	output string
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "list the trades that make a target portfolio replicate a source portfolio"
}
func (*rebalanceCmd) Usage() string {
	return `rebal rebalance [-o <file>] <source> <target>

  Scales the source portfolio to the size of the target portfolio and lists,
  for every symbol, the quantity to buy or sell in the target.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	c.columnFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "also write the actions to a .csv or .xlsx file")
}

func (c *rebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	plan, err := rebalancer.Rebalance(source, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rebalance: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RebalanceMarkdown(plan))

	if c.output != "" {
		if err := export.Save(c.output, export.Rebalance(plan)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
