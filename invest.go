package rebalancer

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// InvestmentRow is the number of shares to buy for one symbol of a fresh investment.
//
// All three quantities are kept so the rounding can be audited: RawQty is the exact
// share count matching the weight, RoundedQty the nearest whole share (at least one
// when Floored) and AdjustedQty the count after the plan's spend reconciliation.
type InvestmentRow struct {
	Symbol        string
	Weight        Percent
	InvestedPrice float64
	RawQty        float64
	RoundedQty    int64
	AdjustedQty   int64
	Floored       bool // RoundedQty was raised from zero to one share
}

// Amount returns the cash spent on AdjustedQty shares.
func (r InvestmentRow) Amount() decimal.Decimal {
	return decimal.NewFromFloat(r.InvestedPrice).Mul(decimal.NewFromInt(r.AdjustedQty))
}

// InvestmentPlan allocates an amount of cash into whole shares following the
// weights of a model portfolio.
type InvestmentPlan struct {
	Amount        decimal.Decimal // cash to invest
	RoundedSpend  decimal.Decimal // spend with RoundedQty
	AdjustedSpend decimal.Decimal // spend with AdjustedQty
	Residual      decimal.Decimal // Amount - AdjustedSpend
	Iterations    int             // single share corrections applied
	Capped        bool            // reconciliation stopped on the iteration cap
	Rows          []InvestmentRow // sorted like Normalize
}

// PlanInvestment computes the shares to buy so that amount is invested with the
// weights of source, at each position's invested price.
//
// Every position must carry an invested price, otherwise a *MissingPriceError
// listing the offending symbols is returned: no price is ever guessed.
//
// Each raw quantity is rounded to the nearest share, and with opts.MinOneShare a
// position rounding to zero is bought once anyway. The rounded quantities are then
// reconciled one share at a time: while the spend exceeds amount, a share is
// removed from the most over-allocated position; while the remaining cash buys the
// cheapest share, a share is added to the most under-allocated affordable position.
// Ties go to the smallest symbol. At most opts.MaxIterations corrections are made,
// DefaultMaxIterations when it is not positive.
func PlanInvestment(source Portfolio, amount float64, opts Options) (InvestmentPlan, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return InvestmentPlan{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	var missing []string
	for _, pos := range source.Positions {
		if !pos.HasInvestedPrice() {
			missing = append(missing, pos.Symbol)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return InvestmentPlan{}, &MissingPriceError{Symbols: missing}
	}

	weights, err := Normalize(source)
	if err != nil {
		return InvestmentPlan{}, fmt.Errorf("cannot plan investment: %w", err)
	}

	rows := make([]InvestmentRow, 0, len(weights))
	for _, w := range weights {
		raw := float64(w.Weight) / 100 * amount / w.InvestedPrice
		rounded := int64(math.Round(raw))
		floored := false
		if opts.MinOneShare && w.Weight > 0 && rounded == 0 {
			rounded, floored = 1, true
		}
		rows = append(rows, InvestmentRow{
			Symbol:        w.Symbol,
			Weight:        w.Weight,
			InvestedPrice: w.InvestedPrice,
			RawQty:        raw,
			RoundedQty:    rounded,
			AdjustedQty:   rounded,
			Floored:       floored,
		})
	}

	budget := decimal.NewFromFloat(amount)
	plan := InvestmentPlan{Amount: budget, Rows: rows}
	plan.RoundedSpend = spend(rows, func(r InvestmentRow) int64 { return r.RoundedQty })

	limit := opts.MaxIterations
	if limit <= 0 {
		limit = DefaultMaxIterations
	}
	r := reconciler{rows: rows, budget: budget, max: limit}
	floors := []int64{0}
	if opts.MinOneShare {
		floors = []int64{1, 0}
	}
	r.run(floors)

	plan.Iterations, plan.Capped = r.iterations, r.capped
	plan.AdjustedSpend = spend(rows, func(r InvestmentRow) int64 { return r.AdjustedQty })
	plan.Residual = budget.Sub(plan.AdjustedSpend)
	return plan, nil
}

func spend(rows []InvestmentRow, qty func(InvestmentRow) int64) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(decimal.NewFromFloat(r.InvestedPrice).Mul(decimal.NewFromInt(qty(r))))
	}
	return total
}

// reconciler adjusts rows[i].AdjustedQty in place.
type reconciler struct {
	rows       []InvestmentRow
	prices     []decimal.Decimal
	budget     decimal.Decimal
	spent      decimal.Decimal
	max        int
	iterations int
	capped     bool
}

func (r *reconciler) run(floors []int64) {
	r.prices = make([]decimal.Decimal, len(r.rows))
	r.spent = decimal.Zero
	for i, row := range r.rows {
		r.prices[i] = decimal.NewFromFloat(row.InvestedPrice)
		r.spent = r.spent.Add(r.prices[i].Mul(decimal.NewFromInt(row.AdjustedQty)))
	}
	for _, floor := range floors {
		if !r.reduce(floor) {
			return
		}
	}
	r.fill()
}

// excess is the signed rounding error of row i, positive when over-allocated.
func (r *reconciler) excess(i int) float64 {
	return float64(r.rows[i].AdjustedQty) - r.rows[i].RawQty
}

// step reports whether one more correction is allowed, and records the cap otherwise.
func (r *reconciler) step() bool {
	if r.iterations >= r.max {
		r.capped = true
		return false
	}
	r.iterations++
	return true
}

// reduce removes shares, never below floor, while the spend exceeds the budget.
// It returns false when the iteration cap was reached.
func (r *reconciler) reduce(floor int64) bool {
	if r.spent.LessThanOrEqual(r.budget) {
		return true
	}
	h := make(candidates, 0, len(r.rows))
	for i, row := range r.rows {
		if row.AdjustedQty > floor {
			h = append(h, candidate{index: i, symbol: row.Symbol, key: r.excess(i)})
		}
	}
	heap.Init(&h)
	for r.spent.GreaterThan(r.budget) && h.Len() > 0 {
		if !r.step() {
			return false
		}
		c := heap.Pop(&h).(candidate)
		r.rows[c.index].AdjustedQty--
		r.spent = r.spent.Sub(r.prices[c.index])
		if r.rows[c.index].AdjustedQty > floor {
			c.key = r.excess(c.index)
			heap.Push(&h, c)
		}
	}
	return true
}

// fill adds shares while the remaining cash buys at least one share.
func (r *reconciler) fill() {
	h := make(candidates, 0, len(r.rows))
	for i, row := range r.rows {
		h = append(h, candidate{index: i, symbol: row.Symbol, key: -r.excess(i)})
	}
	heap.Init(&h)
	for h.Len() > 0 {
		c := heap.Pop(&h).(candidate)
		// the remaining cash only decreases: an unaffordable share stays so.
		if r.prices[c.index].GreaterThan(r.budget.Sub(r.spent)) {
			continue
		}
		if !r.step() {
			return
		}
		r.rows[c.index].AdjustedQty++
		r.spent = r.spent.Add(r.prices[c.index])
		c.key = -r.excess(c.index)
		heap.Push(&h, c)
	}
}

type candidate struct {
	index  int
	symbol string
	key    float64 // the largest key is corrected first
}

// candidates is a max-heap on key, ties broken by symbol ascending.
type candidates []candidate

func (h candidates) Len() int { return len(h) }
func (h candidates) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key > h[j].key
	}
	return h[i].symbol < h[j].symbol
}
func (h candidates) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidates) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *candidates) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
