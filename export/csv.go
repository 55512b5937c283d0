package export

import (
	"encoding/csv"
	"io"

	"github.com/etnz/rebalancer"
)

// WriteCSV writes s with its header line.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	record := make([]string, len(s.Header))
	for _, row := range s.Rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DriftCSV writes the drift rows as CSV.
func DriftCSV(w io.Writer, rows []rebalancer.DriftRow) error { return WriteCSV(w, Drift(rows)) }

// RebalanceCSV writes the rebalance rows as CSV.
func RebalanceCSV(w io.Writer, p rebalancer.RebalancePlan) error { return WriteCSV(w, Rebalance(p)) }

// InvestmentCSV writes the investment rows as CSV.
func InvestmentCSV(w io.Writer, p rebalancer.InvestmentPlan) error {
	return WriteCSV(w, Investment(p))
}
