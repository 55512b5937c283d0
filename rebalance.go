package rebalancer

import (
	"fmt"
	"math"
	"sort"
)

// Action is the trade needed to bring a target position to its ideal quantity.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Hold"
	}
}

// RebalanceRow holds the trade for one symbol.
type RebalanceRow struct {
	Symbol    string
	SourceQty float64
	TargetQty float64 // currently held in target
	IdealQty  float64 // SourceQty × scale
	ActionQty float64 // IdealQty - TargetQty, positive to buy
	Action    Action
}

// RoundedActionQty returns ActionQty rounded to the nearest whole share.
func (r RebalanceRow) RoundedActionQty() int64 { return int64(math.Round(r.ActionQty)) }

// RoundedIdealQty returns IdealQty rounded to the nearest whole share.
func (r RebalanceRow) RoundedIdealQty() int64 { return int64(math.Round(r.IdealQty)) }

// RebalancePlan is the set of trades moving a target portfolio toward the
// source's proportions.
type RebalancePlan struct {
	Scale float64 // target total quantity / source total quantity
	Rows  []RebalanceRow
}

// RebalanceSummary aggregates the trades of a plan.
type RebalanceSummary struct {
	Buys    int
	Sells   int
	Holds   int
	BuyQty  int64 // shares to buy, rounded per row
	SellQty int64 // shares to sell, rounded per row, as a positive number
}

// Summary counts trades by action.
func (p RebalancePlan) Summary() RebalanceSummary {
	var s RebalanceSummary
	for _, r := range p.Rows {
		switch r.Action {
		case Buy:
			s.Buys++
			s.BuyQty += r.RoundedActionQty()
		case Sell:
			s.Sells++
			s.SellQty -= r.RoundedActionQty()
		default:
			s.Holds++
		}
	}
	return s
}

// ScaleFactor returns total quantity of target / total quantity of source.
func ScaleFactor(source, target Portfolio) (float64, error) {
	total := source.TotalQuantity()
	if total == 0 {
		return 0, fmt.Errorf("cannot scale %d source position(s): %w", source.Len(), ErrDivisionByZero)
	}
	return target.TotalQuantity() / total, nil
}

// Rebalance computes, for every symbol of either portfolio, the quantity to trade
// in target so that it holds the source's proportions at the target's size.
//
// A symbol only held in target has an ideal quantity of zero: sell everything.
// An action is a Buy or a Sell only when it exceeds DeadZone shares.
//
// Rows are sorted by trade magnitude descending, then by symbol ascending. Two
// empty portfolios give an empty plan; a source with nothing to scale from fails
// with ErrDivisionByZero.
func Rebalance(source, target Portfolio) (RebalancePlan, error) {
	if source.IsEmpty() && target.IsEmpty() {
		return RebalancePlan{}, nil
	}
	scale, err := ScaleFactor(source, target)
	if err != nil {
		return RebalancePlan{}, err
	}

	src := source.quantities()
	tgt := target.quantities()
	symbols := source.Symbols()
	for _, pos := range target.Positions {
		if _, ok := src[pos.Symbol]; !ok {
			symbols = append(symbols, pos.Symbol)
		}
	}

	rows := make([]RebalanceRow, 0, len(symbols))
	for _, symbol := range symbols {
		sq, tq := src[symbol], tgt[symbol]
		if sq == 0 && tq == 0 {
			continue
		}
		ideal := sq * scale
		delta := ideal - tq
		rows = append(rows, RebalanceRow{
			Symbol:    symbol,
			SourceQty: sq,
			TargetQty: tq,
			IdealQty:  ideal,
			ActionQty: delta,
			Action:    actionFor(delta),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		ai, aj := math.Abs(rows[i].ActionQty), math.Abs(rows[j].ActionQty)
		if ai != aj {
			return ai > aj
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return RebalancePlan{Scale: scale, Rows: rows}, nil
}

func actionFor(delta float64) Action {
	switch {
	case delta > DeadZone:
		return Buy
	case delta < -DeadZone:
		return Sell
	default:
		return Hold
	}
}
