package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/rebalancer"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// InvestmentMarkdown renders a fresh investment plan with amounts in currency.
//
// Every adjustment made to the naive rounding is listed under "Adjustments".
func InvestmentMarkdown(p rebalancer.InvestmentPlan, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fresh Investment Plan")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Amount to Invest"), md.Bold(formatMoney(p.Amount, currency))},
		Rows: [][]string{
			{"Spent", formatMoney(p.AdjustedSpend, currency)},
			{"Residual Cash", formatMoney(p.Residual, currency)},
		},
	})

	doc.H2("Orders")
	if len(p.Rows) == 0 {
		doc.PlainText("The source portfolio is empty.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Weight", "Price", "Exact Qty", "Rounded Qty", "Buy Qty", "Amount"},
	}
	for _, r := range p.Rows {
		table.Rows = append(table.Rows, []string{
			r.Symbol,
			r.Weight.String(),
			formatMoney(decimal.NewFromFloat(r.InvestedPrice), currency),
			formatRawQty(r.RawQty),
			strconv.FormatInt(r.RoundedQty, 10),
			md.Bold(strconv.FormatInt(r.AdjustedQty, 10)),
			formatMoney(r.Amount(), currency),
		})
	}
	doc.Table(table)

	if notes := adjustments(p, currency); len(notes) > 0 {
		doc.H2("Adjustments")
		doc.BulletList(notes...)
	}
	return doc.String()
}

func adjustments(p rebalancer.InvestmentPlan, currency string) []string {
	var notes []string
	for _, r := range p.Rows {
		if r.Floored {
			notes = append(notes, fmt.Sprintf("%s rounded to zero shares and was raised to one share.", r.Symbol))
		}
	}
	if !p.RoundedSpend.Equal(p.AdjustedSpend) {
		notes = append(notes, fmt.Sprintf("Rounded quantities would spend %s, %d single share corrections were applied to fit the amount.",
			formatMoney(p.RoundedSpend, currency), p.Iterations))
	}
	if p.Capped {
		notes = append(notes, fmt.Sprintf("Corrections stopped after %d iterations, the plan may not be optimal.", p.Iterations))
	}
	if p.Residual.IsNegative() {
		notes = append(notes, fmt.Sprintf("The plan exceeds the amount by %s.", formatMoney(p.Residual.Neg(), currency)))
	}
	return notes
}
