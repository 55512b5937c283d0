package rebalancer

import (
	"math"
	"strings"
)

// CleanStats counts the rows dropped by Clean.
type CleanStats struct {
	Rows       int // rows received
	Invalid    int // empty symbol, non-numeric or non-positive quantity
	Debt       int // debt instruments filtered by prefix
	Duplicates int // later occurrences of an already kept symbol
}

// Kept returns the number of positions that made it into the portfolio.
func (s CleanStats) Kept() int { return s.Rows - s.Invalid - s.Debt - s.Duplicates }

// CleanSymbol trims and uppercases a symbol.
func CleanSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Clean turns raw rows into a Portfolio.
//
// Symbols are trimmed and uppercased. Rows with an empty symbol or a quantity that
// is non-numeric or not strictly positive are dropped, then symbols starting with
// opts.DebtPrefix, then any repeated symbol after its first occurrence.
//
// An empty result is a valid empty Portfolio.
func Clean(rows []Row, opts Options) (Portfolio, CleanStats) {
	stats := CleanStats{Rows: len(rows)}
	seen := make(map[string]bool, len(rows))
	var positions []Position
	for _, row := range rows {
		symbol := CleanSymbol(row.Symbol)
		q := row.Quantity
		if symbol == "" || math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
			stats.Invalid++
			continue
		}
		if opts.DebtPrefix != "" && strings.HasPrefix(symbol, opts.DebtPrefix) {
			stats.Debt++
			continue
		}
		if seen[symbol] {
			stats.Duplicates++
			continue
		}
		seen[symbol] = true
		positions = append(positions, Position{
			Symbol:        symbol,
			Quantity:      q,
			InvestedPrice: row.InvestedPrice,
			MarketPrice:   row.MarketPrice,
		})
	}
	return Portfolio{Positions: positions}, stats
}
