package rebalancer

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// P returns a position without prices.
func P(symbol string, quantity float64) Position {
	return Position{Symbol: symbol, Quantity: quantity}
}

// PP returns a position with an invested price.
func PP(symbol string, quantity, price float64) Position {
	return Position{Symbol: symbol, Quantity: quantity, InvestedPrice: price}
}

// approx compares floats and percents with a tolerance suited to the engine.
var approx = cmp.Options{
	cmpopts.EquateApprox(0, 1e-9),
	cmp.Comparer(func(a, b Percent) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}
