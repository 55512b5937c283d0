package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/etnz/rebalancer"
	"github.com/etnz/rebalancer/export"
	"github.com/etnz/rebalancer/loader"
	"github.com/etnz/rebalancer/renderer"
	"github.com/google/subcommands"
)

// priceFlag collects repeated -price SYMBOL=PRICE flags.
type priceFlag map[string]float64

func (p priceFlag) String() string {
	symbols := make([]string, 0, len(p))
	for s := range p {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = s + "=" + strconv.FormatFloat(p[s], 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (p priceFlag) Set(v string) error {
	symbol, price, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected SYMBOL=PRICE, got %q", v)
	}
	symbol = rebalancer.CleanSymbol(symbol)
	value, ok := loader.ParseNumber(price)
	if symbol == "" || !ok || value <= 0 {
		return fmt.Errorf("invalid price %q", v)
	}
	p[symbol] = value
	return nil
}

// fill sets the invested price of positions that lack one.
func (p priceFlag) fill(portfolio *rebalancer.Portfolio) {
	for i, pos := range portfolio.Positions {
		if price, ok := p[pos.Symbol]; ok && !pos.HasInvestedPrice() {
			portfolio.Positions[i].InvestedPrice = price
		}
	}
}

type investCmd struct {
	columnFlags
	output  string
	amount  float64
	prices  priceFlag
	noFloor bool
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "split a fresh investment with the weights of a source portfolio" }
func (*investCmd) Usage() string {
	return `rebal invest -amount <amount> [-price SYMBOL=PRICE ...] [-o <file>] <source>

  Computes how many shares of each symbol to buy so that the amount is invested
  with the weights of the source portfolio, at each position's average buy price.

  Positions without a price in the file need a -price flag.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	c.columnFlags.SetFlags(f)
	c.prices = make(priceFlag)
	f.Float64Var(&c.amount, "amount", 0, "cash to invest")
	f.Var(c.prices, "price", "price of a symbol missing one in the file, as SYMBOL=PRICE (repeatable)")
	f.BoolVar(&c.noFloor, "no-floor", false, "allow positions to get zero shares instead of at least one")
	f.StringVar(&c.output, "o", "", "also write the plan to a .csv or .xlsx file")
}

func (c *investCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one source file")
		return subcommands.ExitUsageError
	}
	if c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -amount must be positive")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	m, err := a.columnMapper(ctx, &c.columnFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating column mapper: %v\n", err)
		return subcommands.ExitFailure
	}
	source, err := a.loadPortfolio(ctx, m, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.prices.fill(&source)

	opts := a.settings.Options()
	opts.MinOneShare = !c.noFloor
	plan, err := rebalancer.PlanInvestment(source, c.amount, opts)
	var missing *rebalancer.MissingPriceError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(os.Stderr, "Error: no price for %s\n", strings.Join(missing.Symbols, ", "))
		fmt.Fprintf(os.Stderr, "Provide them with -price, e.g. -price %s=<price>\n", missing.Symbols[0])
		return subcommands.ExitUsageError
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error planning investment: %v\n", err)
		return subcommands.ExitFailure
	}
	if plan.Capped {
		a.log.Warn().Int("iterations", plan.Iterations).Msg("reconciliation stopped on the iteration cap")
	}
	printMarkdown(renderer.InvestmentMarkdown(plan, a.settings.Currency))

	if c.output != "" {
		if err := export.Save(c.output, export.Investment(plan)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
