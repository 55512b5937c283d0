package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/rebalancer"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned by Save for extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("output must be a .csv or .xlsx file")

const defaultSheet = "Sheet1"

// Workbook is an Excel workbook with one sheet per report.
type Workbook struct {
	f      *excelize.File
	header int // bold style id
	sheets int
}

// NewWorkbook returns an empty workbook. It must be closed.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Workbook{f: f, header: style}, nil
}

// Add writes s in a new sheet.
func (w *Workbook) Add(s Sheet) error {
	if w.sheets == 0 {
		if err := w.f.SetSheetName(defaultSheet, s.Name); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(s.Name); err != nil {
		return err
	}
	w.sheets++

	if err := w.f.SetSheetRow(s.Name, "A1", &s.Header); err != nil {
		return err
	}
	if err := w.f.SetRowStyle(s.Name, 1, 1, w.header); err != nil {
		return err
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", s.Name, i+2, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(s.Header))
	if err != nil {
		return err
	}
	return w.f.SetColWidth(s.Name, "A", last, 16)
}

func (w *Workbook) AddDrift(rows []rebalancer.DriftRow) error       { return w.Add(Drift(rows)) }
func (w *Workbook) AddRebalance(p rebalancer.RebalancePlan) error   { return w.Add(Rebalance(p)) }
func (w *Workbook) AddInvestment(p rebalancer.InvestmentPlan) error { return w.Add(Investment(p)) }

// WriteTo writes the xlsx content to out.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) { return w.f.WriteTo(out) }

func (w *Workbook) Close() error { return w.f.Close() }

// Save writes sheets to path, as CSV or XLSX depending on its extension.
//
// A CSV file holds a single sheet.
func Save(path string, sheets ...Sheet) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		if len(sheets) != 1 {
			return fmt.Errorf("a csv file holds exactly one report, got %d", len(sheets))
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, sheets[0]); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	case ".xlsx":
		wb, err := NewWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()
		for _, s := range sheets {
			if err := wb.Add(s); err != nil {
				return err
			}
		}
		return wb.f.SaveAs(path)

	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
