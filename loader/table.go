// Package loader reads broker holding exports into raw tables and extracts the
// rows the allocation engine works on.
package loader

import (
	"fmt"
	"strings"
)

// headerKeywords identify the header row of a broker export preceded by a preamble.
var headerKeywords = []string{"symbol", "quantity", "scrip", "isin", "ticker"}

// Table is a loaded sheet: named columns and their string cells.
//
// Every record has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Records [][]string
}

// Index returns the position of the column name, or -1.
//
// Exact matches win over case-insensitive ones.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	name = strings.TrimSpace(name)
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Column returns the cells of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	cells := make([]string, len(t.Records))
	for j, r := range t.Records {
		cells[j] = r[i]
	}
	return cells, true
}

// Head returns a table limited to the first n records.
func (t *Table) Head(n int) *Table {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return &Table{Columns: t.Columns, Records: t.Records[:n]}
}

// String renders the table as fixed width text, the way sample rows are shown to an LLM.
func (t *Table) String() string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, r := range t.Records {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
	}
	var b strings.Builder
	line := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	line(t.Columns)
	for _, r := range t.Records {
		line(r)
	}
	return b.String()
}

// newTable builds a Table from raw rows.
//
// The header is the first row mentioning one of headerKeywords, or the first row.
// Columns with a blank or "Unnamed" header are dropped, and so are records with
// only blank cells.
func newTable(rows [][]string) (*Table, error) {
	start := -1
	for i, row := range rows {
		if isHeader(row) {
			start = i
			break
		}
	}
	if start < 0 {
		start = firstNonEmpty(rows)
	}
	if start < 0 {
		return nil, ErrEmpty
	}

	header := rows[start]
	var keep []int
	var columns []string
	seen := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || strings.HasPrefix(h, "Unnamed") {
			continue
		}
		if n := seen[h]; n > 0 {
			seen[h]++
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}
		keep = append(keep, i)
		columns = append(columns, h)
	}
	if len(columns) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{Columns: columns}
	for _, row := range rows[start+1:] {
		record := make([]string, len(keep))
		blank := true
		for j, i := range keep {
			if i < len(row) {
				record[j] = strings.TrimSpace(row[i])
			}
			if record[j] != "" {
				blank = false
			}
		}
		if !blank {
			t.Records = append(t.Records, record)
		}
	}
	return t, nil
}

func isHeader(row []string) bool {
	line := strings.ToLower(strings.Join(row, ","))
	for _, kw := range headerKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

func firstNonEmpty(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return i
			}
		}
	}
	return -1
}
