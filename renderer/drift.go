package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/rebalancer"
	md "github.com/nao1215/markdown"
)

// DriftMarkdown renders the drift analysis of a source against a target portfolio.
func DriftMarkdown(rows []rebalancer.DriftRow, h rebalancer.Health) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Drift")
	doc.PlainText(fmt.Sprintf("Tracking Error: %s", md.Bold(rebalancer.Percent(h.TrackingError).String())))

	doc.H2("Status")
	s := h.Summary
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Status", "Symbols"},
		Rows: [][]string{
			{rebalancer.Aligned.String(), strconv.Itoa(s.Aligned)},
			{rebalancer.Overweight.String(), strconv.Itoa(s.Overweight)},
			{rebalancer.Underweight.String(), strconv.Itoa(s.Underweight)},
			{rebalancer.Missing.String(), strconv.Itoa(s.Missing)},
			{rebalancer.Extra.String(), strconv.Itoa(s.Extra)},
		},
	})

	doc.H2("Positions")
	if len(rows) == 0 {
		doc.PlainText("Both portfolios are empty.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Source", "Target", "Drift", "Status", "Source Qty", "Target Qty"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Symbol,
			r.SourceWeight.String(),
			r.TargetWeight.String(),
			r.Drift.SignedString(),
			r.Status.String(),
			formatQty(r.SourceQty),
			formatQty(r.TargetQty),
		})
	}
	doc.Table(table)
	return doc.String()
}
