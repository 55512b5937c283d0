package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/rebalancer"
)

var (
	quantityKeywords = []string{"quantity", "qty", "holding", "shares", "available", "pledged"}
	// ExcludedKeywords mark columns that mention a quantity but carry something else.
	ExcludedKeywords = []string{"discrepant", "long term", "short term", "price", "value", "average", "closing", "p&l", "pnl", "unrealized"}
)

// Mapping names the columns holding each canonical field.
//
// Symbol and Quantity are required. Prices are optional.
type Mapping struct {
	Symbol        string
	Quantity      string
	InvestedPrice string
	MarketPrice   string
}

// Validate checks that every named column exists in t.
func (m Mapping) Validate(t *Table) error {
	if m.Symbol == "" || m.Quantity == "" {
		return fmt.Errorf("symbol and quantity columns are required, got symbol=%q quantity=%q", m.Symbol, m.Quantity)
	}
	for _, name := range []string{m.Symbol, m.Quantity, m.InvestedPrice, m.MarketPrice} {
		if name != "" && t.Index(name) < 0 {
			return fmt.Errorf("column %q not found, available columns: %q", name, t.Columns)
		}
	}
	return nil
}

// ContainsAny reports whether the lower-cased s contains any of the keywords.
func ContainsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// QuantityColumns returns the columns to sum into the holding quantity.
//
// Some brokers split a holding across columns (available, pledged...). Every column
// named like a quantity, not excluded, and with at least one numeric cell is
// returned. When there is none, primary alone is.
func QuantityColumns(t *Table, primary string) []string {
	var cols []string
	for _, c := range t.Columns {
		if !ContainsAny(c, quantityKeywords) || ContainsAny(c, ExcludedKeywords) {
			continue
		}
		if cells, _ := t.Column(c); IsNumeric(cells) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return []string{primary}
	}
	return cols
}

// Extract produces one rebalancer.Row per record.
//
// The quantity is the sum of QuantityColumns. A record without any numeric
// quantity cell gets a NaN quantity, left for rebalancer.Clean to drop.
func Extract(t *Table, m Mapping) ([]rebalancer.Row, error) {
	if err := m.Validate(t); err != nil {
		return nil, err
	}
	symbols, _ := t.Column(m.Symbol)
	var quantities [][]string
	for _, c := range QuantityColumns(t, m.Quantity) {
		cells, _ := t.Column(c)
		quantities = append(quantities, cells)
	}
	invested := optionalColumn(t, m.InvestedPrice)
	market := optionalColumn(t, m.MarketPrice)

	rows := make([]rebalancer.Row, len(t.Records))
	for i := range t.Records {
		q, found := 0.0, false
		for _, cells := range quantities {
			if v, ok := ParseNumber(cells[i]); ok {
				q += v
				found = true
			}
		}
		if !found {
			q = math.NaN()
		}
		rows[i] = rebalancer.Row{Symbol: symbols[i], Quantity: q}
		if invested != nil {
			rows[i].InvestedPrice, _ = ParseNumber(invested[i])
		}
		if market != nil {
			rows[i].MarketPrice, _ = ParseNumber(market[i])
		}
	}
	return rows, nil
}

func optionalColumn(t *Table, name string) []string {
	if name == "" {
		return nil
	}
	cells, _ := t.Column(name)
	return cells
}

// ParseNumber reads a cell as a number, tolerating thousands separators and
// currency signs.
func ParseNumber(cell string) (float64, bool) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0', '_', '₹', '$', '€', '£':
			return -1
		}
		return r
	}, cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsNumeric reports whether at least one cell is a number.
func IsNumeric(cells []string) bool {
	for _, c := range cells {
		if _, ok := ParseNumber(c); ok {
			return true
		}
	}
	return false
}

// IsText reports whether the non blank cells are mostly not numbers.
func IsText(cells []string) bool {
	text, total := 0, 0
	for _, c := range cells {
		if c == "" {
			continue
		}
		total++
		if _, ok := ParseNumber(c); !ok {
			text++
		}
	}
	return total > 0 && text*2 > total
}
