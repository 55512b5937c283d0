package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/rebalancer/loader"
	md "github.com/nao1215/markdown"
)

// ColumnsMarkdown renders the column mapping detected for t.
func ColumnsMarkdown(m loader.Mapping, t *loader.Table) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Detected Columns")
	orNone := func(c string) string {
		if c == "" {
			return "-"
		}
		return c
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Field", "Column"},
		Rows: [][]string{
			{"Symbol", orNone(m.Symbol)},
			{"Quantity", strings.Join(loader.QuantityColumns(t, m.Quantity), " + ")},
			{"Invested Price", orNone(m.InvestedPrice)},
			{"Market Price", orNone(m.MarketPrice)},
		},
	})

	doc.H2("Available Columns")
	doc.BulletList(t.Columns...)
	return doc.String()
}
