// Package cmd implements the rebal command line: drift, rebalance and fresh
// investment reports over broker holding exports.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rebalancer"
	"github.com/etnz/rebalancer/config"
	"github.com/etnz/rebalancer/loader"
	"github.com/etnz/rebalancer/logger"
	"github.com/etnz/rebalancer/mapper"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&columnsCmd{}, "portfolios")
	c.Register(&driftCmd{}, "portfolios")
	c.Register(&rebalanceCmd{}, "portfolios")
	c.Register(&investCmd{}, "portfolios")

	c.Register(&keyCmd{}, "settings")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config-file", "", "Path to the API key file (default $REBAL_CONFIG_FILE or the user config folder)")
var currency = flag.String("currency", "", "Currency of prices and amounts (default $REBAL_CURRENCY or INR)")

// Verbose turns debug logs on.
var Verbose = flag.Bool("v", false, "verbose logging")

// out receives the reports.
var out io.Writer = os.Stdout

// app is what every command needs: settings, the key store and a logger.
type app struct {
	settings config.Settings
	store    config.Store
	log      zerolog.Logger
}

// newApp loads the settings, applying global flags on top of the environment.
func newApp() (*app, error) {
	s, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *configFile != "" {
		s.ConfigFile = *configFile
	}
	if *currency != "" {
		s.Currency = strings.ToUpper(*currency)
	}
	if *Verbose {
		s.LogLevel = "debug"
	}
	a := &app{
		settings: s,
		store:    config.Store{Path: s.ConfigFile},
		log:      logger.New(logger.Config{Level: s.LogLevel, Pretty: s.LogPretty}),
	}
	if err := a.settings.Resolve(a.store); err != nil {
		a.log.Warn().Err(err).Msg("ignoring saved API keys")
	}
	return a, nil
}

// columnFlags let the user pick columns instead of relying on detection.
type columnFlags struct {
	symbol, quantity, price, market string
}

func (c *columnFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol-col", "", "name of the symbol column (detected by default)")
	f.StringVar(&c.quantity, "qty-col", "", "name of the quantity column (detected by default)")
	f.StringVar(&c.price, "price-col", "", "name of the average buy price column (detected by default)")
	f.StringVar(&c.market, "market-col", "", "name of the market price column (detected by default)")
}

func (c *columnFlags) mapping() loader.Mapping {
	return loader.Mapping{Symbol: c.symbol, Quantity: c.quantity, InvestedPrice: c.price, MarketPrice: c.market}
}

// columnMapper returns the mapper honoring the column flags.
func (a *app) columnMapper(ctx context.Context, c *columnFlags) (mapper.ColumnMapper, error) {
	base, err := mapper.New(ctx, a.settings, a.log)
	if err != nil {
		return nil, err
	}
	return mapper.Override{Base: base, Mapping: c.mapping()}, nil
}

// loadPortfolio reads, maps and cleans a holdings file.
func (a *app) loadPortfolio(ctx context.Context, m mapper.ColumnMapper, path string) (rebalancer.Portfolio, error) {
	t, err := loader.Load(path)
	if err != nil {
		return rebalancer.Portfolio{}, err
	}
	mapping, err := m.MapColumns(ctx, t)
	if err != nil {
		return rebalancer.Portfolio{}, fmt.Errorf("%s: %w", path, err)
	}
	rows, err := loader.Extract(t, mapping)
	if err != nil {
		return rebalancer.Portfolio{}, fmt.Errorf("%s: %w", path, err)
	}
	p, stats := rebalancer.Clean(rows, a.settings.Options())
	a.log.Info().
		Str("file", path).
		Str("symbol", mapping.Symbol).
		Strs("quantity", loader.QuantityColumns(t, mapping.Quantity)).
		Int("rows", stats.Rows).
		Int("invalid", stats.Invalid).
		Int("debt", stats.Debt).
		Int("duplicates", stats.Duplicates).
		Int("kept", stats.Kept()).
		Msg("portfolio loaded")
	return p, nil
}

// printMarkdown renders md for the terminal, or writes it as is when out is not one.
func printMarkdown(md string) {
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		if rendered, err := glamour.Render(md, "auto"); err == nil {
			md = rendered
		}
	}
	fmt.Fprint(out, md)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
