package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor Excel.
	ErrUnsupportedFormat = errors.New("file must be CSV or Excel format")
	// ErrEmpty is returned when a file holds no header row.
	ErrEmpty = errors.New("no data found")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a holdings file, dispatching on its extension.
func Load(path string) (*Table, error) {
	var read func(io.Reader) (*Table, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = ReadCSV
	case ".xlsx", ".xlsm":
		read = ReadExcel
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// ReadCSV reads a comma separated export. Rows may have different lengths.
func ReadCSV(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return newTable(rows)
}

// ReadExcel reads the first sheet of a workbook.
func ReadExcel(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	return newTable(rows)
}
