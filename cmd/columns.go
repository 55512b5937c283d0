package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalancer/loader"
	"github.com/etnz/rebalancer/renderer"
	"github.com/google/subcommands"
)

type columnsCmd struct {
	columnFlags
}

func (*columnsCmd) Name() string     { return "columns" }
func (*columnsCmd) Synopsis() string { return "show the columns detected in a holdings file" }
func (*columnsCmd) Usage() string {
	return `rebal columns [-symbol-col <name>] [-qty-col <name>] [-price-col <name>] <file>

  Loads a CSV or Excel holdings file and shows which columns hold the symbol,
  the quantity and the prices. Use it to check the detection before running a report.
`
}

func (c *columnsCmd) SetFlags(f *flag.FlagSet) { c.columnFlags.SetFlags(f) }

func (c *columnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one file")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	t, err := loader.Load(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	m, err := a.columnMapper(ctx, &c.columnFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating column mapper: %v\n", err)
		return subcommands.ExitFailure
	}
	mapping, err := m.MapColumns(ctx, t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error detecting columns: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ColumnsMarkdown(mapping, t))
	return subcommands.ExitSuccess
}
