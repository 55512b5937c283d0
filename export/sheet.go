// Package export writes the engine results as CSV files or Excel workbooks.
package export

import (
	"math"
	"strconv"

	"github.com/etnz/rebalancer"
	"github.com/shopspring/decimal"
)

// Sheet is a named table of typed cells (string, float64, int64 or bool).
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// pct keeps 4 decimals of a percentage.
func pct(p rebalancer.Percent) float64 { return math.Round(float64(p)*1e4) / 1e4 }

func amount(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

// Drift lays out a drift analysis.
func Drift(rows []rebalancer.DriftRow) Sheet {
	s := Sheet{
		Name:   "Drift",
		Header: []string{"Symbol", "Source Weight %", "Target Weight %", "Drift %", "Status", "Source Qty", "Target Qty"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{
			r.Symbol, pct(r.SourceWeight), pct(r.TargetWeight), pct(r.Drift), r.Status.String(), r.SourceQty, r.TargetQty,
		})
	}
	return s
}

// Rebalance lays out a rebalance plan. Action Qty is signed, positive to buy.
func Rebalance(p rebalancer.RebalancePlan) Sheet {
	s := Sheet{
		Name:   "Rebalance",
		Header: []string{"Symbol", "Action", "Action Qty", "Source Qty", "Target Qty", "Ideal Qty", "Exact Action Qty"},
	}
	for _, r := range p.Rows {
		s.Rows = append(s.Rows, []any{
			r.Symbol, r.Action.String(), r.RoundedActionQty(), r.SourceQty, r.TargetQty, r.RoundedIdealQty(),
			math.Round(r.ActionQty*1e4) / 1e4,
		})
	}
	return s
}

// Investment lays out a fresh investment plan.
func Investment(p rebalancer.InvestmentPlan) Sheet {
	s := Sheet{
		Name:   "Investment",
		Header: []string{"Symbol", "Weight %", "Invested Price", "Raw Qty", "Rounded Qty", "Adjusted Qty", "Floored", "Amount"},
	}
	for _, r := range p.Rows {
		s.Rows = append(s.Rows, []any{
			r.Symbol, pct(r.Weight), r.InvestedPrice, math.Round(r.RawQty*1e4) / 1e4, r.RoundedQty, r.AdjustedQty, r.Floored, amount(r.Amount()),
		})
	}
	return s
}

func cellString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
