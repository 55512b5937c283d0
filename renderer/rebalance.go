package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/rebalancer"
	md "github.com/nao1215/markdown"
)

// RebalanceMarkdown renders the trades bringing the target in line with the source.
func RebalanceMarkdown(p rebalancer.RebalancePlan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Rebalance Plan")
	doc.PlainText(fmt.Sprintf("Scale Factor: %s (target total quantity / source total quantity)", md.Bold(strconv.FormatFloat(p.Scale, 'f', 4, 64))))

	s := p.Summary()
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Action", "Symbols", "Shares"},
		Rows: [][]string{
			{rebalancer.Buy.String(), strconv.Itoa(s.Buys), strconv.FormatInt(s.BuyQty, 10)},
			{rebalancer.Sell.String(), strconv.Itoa(s.Sells), strconv.FormatInt(s.SellQty, 10)},
			{rebalancer.Hold.String(), strconv.Itoa(s.Holds), ""},
		},
	})

	doc.H2("Actions")
	if len(p.Rows) == 0 {
		doc.PlainText("Nothing to rebalance.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Action", "Quantity", "Source Qty", "Target Qty", "Ideal Qty"},
	}
	for _, r := range p.Rows {
		qty := "-"
		if r.Action != rebalancer.Hold {
			q := r.RoundedActionQty()
			if q < 0 {
				q = -q
			}
			qty = strconv.FormatInt(q, 10)
		}
		table.Rows = append(table.Rows, []string{
			r.Symbol,
			r.Action.String(),
			qty,
			formatQty(r.SourceQty),
			formatQty(r.TargetQty),
			strconv.FormatInt(r.RoundedIdealQty(), 10),
		})
	}
	doc.Table(table)
	return doc.String()
}
