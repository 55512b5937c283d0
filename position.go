package rebalancer

import "math"

// Row is a raw holding row as produced by a loader, before any cleaning.
//
// Quantity is NaN when the source cell could not be read as a number. Prices are
// optional: zero, negative or NaN values mean the price is unknown.
type Row struct {
	Symbol        string
	Quantity      float64
	InvestedPrice float64
	MarketPrice   float64
}

// Position is a held quantity of a single symbol.
type Position struct {
	Symbol        string
	Quantity      float64
	InvestedPrice float64
	MarketPrice   float64
}

// HasInvestedPrice reports whether the position carries a usable invested price.
func (p Position) HasInvestedPrice() bool { return validPrice(p.InvestedPrice) }

// HasMarketPrice reports whether the position carries a usable market price.
func (p Position) HasMarketPrice() bool { return validPrice(p.MarketPrice) }

func validPrice(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Portfolio is an ordered set of positions with unique symbols.
//
// The zero value is an empty portfolio, which is a valid state: every analysis
// accepts it and returns an empty result.
type Portfolio struct {
	Positions []Position
}

// NewPortfolio returns a portfolio made of positions, in order.
func NewPortfolio(positions ...Position) Portfolio {
	return Portfolio{Positions: positions}
}

func (p Portfolio) Len() int      { return len(p.Positions) }
func (p Portfolio) IsEmpty() bool { return len(p.Positions) == 0 }

// TotalQuantity returns the sum of all position quantities.
func (p Portfolio) TotalQuantity() float64 {
	var total float64
	for _, pos := range p.Positions {
		total += pos.Quantity
	}
	return total
}

// Get returns the position for symbol, if any.
func (p Portfolio) Get(symbol string) (Position, bool) {
	for _, pos := range p.Positions {
		if pos.Symbol == symbol {
			return pos, true
		}
	}
	return Position{}, false
}

// Symbols returns the symbols in portfolio order.
func (p Portfolio) Symbols() []string {
	symbols := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		symbols = append(symbols, pos.Symbol)
	}
	return symbols
}

// quantities indexes position quantities by symbol.
func (p Portfolio) quantities() map[string]float64 {
	m := make(map[string]float64, len(p.Positions))
	for _, pos := range p.Positions {
		m[pos.Symbol] = pos.Quantity
	}
	return m
}
