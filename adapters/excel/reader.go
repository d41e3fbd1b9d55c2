package excel

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pitos/internal/errors"
	"pitos/ports"
)

// DefaultSheet is read when no sheet name is given
const DefaultSheet = "Sheet1"

// Reader loads samples from an .xlsx workbook; each sheet row is one sample.
// Empty cells are skipped and rows with no values are ignored.
type Reader struct {
	filePath string
	sheet    string
	r        io.Reader
}

var _ ports.SampleReader = (*Reader)(nil)

// NewReader creates a reader for the workbook at filePath
func NewReader(filePath, sheet string) *Reader {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Reader{filePath: filePath, sheet: sheet}
}

// NewStreamReader creates a reader over an in-memory workbook
func NewStreamReader(r io.Reader, sheet string) *Reader {
	rd := NewReader("workbook", sheet)
	rd.r = r
	return rd
}

// ReadRows reads every non-empty row of the sheet
func (r *Reader) ReadRows(ctx context.Context) ([][]float64, error) {
	f, err := r.open()
	if err != nil {
		return nil, errors.ReadError(r.filePath, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ReadError(r.filePath, fmt.Errorf("failed to read %s: %w", r.sheet, err))
	}

	var out [][]float64
	for i, cells := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := parseRow(cells)
		if err != nil {
			return nil, errors.ReadError(r.filePath, fmt.Errorf("%s row %d: %w", r.sheet, i+1, err))
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, errors.ReadError(r.filePath, fmt.Errorf("sheet %s has no numeric data", r.sheet))
	}
	return out, nil
}

func (r *Reader) open() (*excelize.File, error) {
	if r.r != nil {
		return excelize.OpenReader(r.r)
	}
	return excelize.OpenFile(r.filePath)
}

func parseRow(cells []string) ([]float64, error) {
	row := make([]float64, 0, len(cells))
	for j, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %q is not numeric", j+1, cell)
		}
		row = append(row, v)
	}
	return row, nil
}
