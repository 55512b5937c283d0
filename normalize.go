package rebalancer

import (
	"fmt"
	"sort"
)

// NormalizedPosition is a position with its share of the portfolio total quantity.
type NormalizedPosition struct {
	Position
	Weight Percent
}

// Normalize computes the weight of each position as 100 × quantity / total quantity.
//
// The result is sorted by weight descending, then by symbol ascending. An empty
// portfolio yields an empty result; a portfolio whose quantities sum to zero fails
// with ErrDivisionByZero.
func Normalize(p Portfolio) ([]NormalizedPosition, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	total := p.TotalQuantity()
	if total == 0 {
		return nil, fmt.Errorf("cannot normalize %d position(s): %w", p.Len(), ErrDivisionByZero)
	}

	result := make([]NormalizedPosition, 0, p.Len())
	for _, pos := range p.Positions {
		result = append(result, NormalizedPosition{
			Position: pos,
			Weight:   Percent(100 * pos.Quantity / total),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Weight != result[j].Weight {
			return result[i].Weight > result[j].Weight
		}
		return result[i].Symbol < result[j].Symbol
	})
	return result, nil
}
