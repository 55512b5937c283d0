package mapper

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/rebalancer/loader"
)

var (
	symbolPatterns   = []string{"symbol", "ticker", "scrip", "stock", "company", "name", "isin"}
	quantityPatterns = []string{"quantity", "qty", "shares", "holding", "available", "net", "pledged"}
	investedPatterns = []string{"average", "avg", "buy price", "cost price"}
	marketPatterns   = []string{"ltp", "last price", "closing price", "market price", "current price", "cmp"}
)

// PatternMapper matches column names against keywords usual in broker exports.
//
// The symbol is the first text column named like a symbol, the quantity the first
// numeric column named like a quantity that is not excluded. As a last resort the
// first text column and the first numeric column are used.
type PatternMapper struct{}

func (PatternMapper) MapColumns(_ context.Context, t *loader.Table) (loader.Mapping, error) {
	var m loader.Mapping
	text := func(c string) bool {
		cells, _ := t.Column(c)
		return loader.IsText(cells)
	}
	numeric := func(c string) bool {
		cells, _ := t.Column(c)
		return loader.IsNumeric(cells)
	}

	m.Symbol = first(t.Columns, func(c string) bool {
		return loader.ContainsAny(c, symbolPatterns) && text(c)
	})
	m.Quantity = first(t.Columns, func(c string) bool {
		return loader.ContainsAny(c, quantityPatterns) && !loader.ContainsAny(c, loader.ExcludedKeywords) && numeric(c)
	})
	if m.Symbol == "" {
		m.Symbol = first(t.Columns, text)
	}
	if m.Quantity == "" {
		m.Quantity = first(t.Columns, func(c string) bool {
			return c != m.Symbol && !loader.ContainsAny(c, loader.ExcludedKeywords) && numeric(c)
		})
	}
	if m.Symbol == "" || m.Quantity == "" {
		return loader.Mapping{}, &MappingError{
			Mapper: "pattern",
			Err:    fmt.Errorf("%w, available: %s", ErrNoMapping, strings.Join(t.Columns, ", ")),
		}
	}

	m.InvestedPrice = first(t.Columns, func(c string) bool {
		return loader.ContainsAny(c, investedPatterns) && !loader.ContainsAny(c, []string{"value", "p&l", "pnl"}) && numeric(c)
	})
	m.MarketPrice = first(t.Columns, func(c string) bool {
		return c != m.InvestedPrice && loader.ContainsAny(c, marketPatterns) && numeric(c)
	})
	return m, nil
}

func first(columns []string, match func(string) bool) string {
	for _, c := range columns {
		if match(c) {
			return c
		}
	}
	return ""
}
