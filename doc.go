// Package rebalancer compares two portfolios expressed as (symbol, quantity[, price])
// rows and produces a quantity-proportional drift and rebalancing analysis, plus a
// fresh investment planner that replicates a model portfolio's weights under a new
// invested amount.
//
// The package is the allocation engine of the `rebal` command-line tool:
//   - Cleaning: raw rows are canonicalized into a Portfolio (uppercase symbols, debt
//     instruments and invalid quantities dropped, duplicates resolved keep-first).
//   - Normalization: quantities become weights summing to 100%.
//   - Drift: two normalized portfolios are paired symbol by symbol and each pair is
//     classified as Aligned, Overweight, Underweight, Missing or Extra.
//   - Rebalancing: buy/sell quantities that move a target portfolio toward the
//     source's proportions, scaled by the ratio of total quantities.
//   - Investment planning: whole share counts reproducing the source weights for a
//     cash amount, reconciled so that total spend tracks the amount.
//   - Health: the tracking error aggregates all drifts into a single number.
//
// Every function is pure: there is no I/O and no package level mutable state, so
// independent analyses can safely run concurrently. Reading files, detecting columns
// and rendering reports are left to the loader, mapper and renderer packages.
package rebalancer
