package reader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pitos/internal/errors"
	"pitos/ports"
)

// TextReader reads a whitespace-delimited numeric matrix, one sample per line.
// Blank lines and everything after '#' are ignored. A file holding a single
// column is read as one sample, matching the usual loadtxt convention.
type TextReader struct {
	path string
	r    io.Reader
}

var _ ports.SampleReader = (*TextReader)(nil)

// NewTextFileReader reads from the file at path
func NewTextFileReader(path string) *TextReader {
	return &TextReader{path: path}
}

// NewTextReader reads from r
func NewTextReader(r io.Reader) *TextReader {
	return &TextReader{path: "input", r: r}
}

// ReadRows parses every data line into a row
func (t *TextReader) ReadRows(ctx context.Context) ([][]float64, error) {
	src := t.r
	if src == nil {
		f, err := os.Open(t.path)
		if err != nil {
			return nil, errors.ReadError(t.path, err)
		}
		defer f.Close()
		src = f
	}

	rows, err := parseMatrix(ctx, src)
	if err != nil {
		return nil, errors.ReadError(t.path, err)
	}
	return rows, nil
}

func parseMatrix(ctx context.Context, r io.Reader) ([][]float64, error) {
	var rows [][]float64
	width := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", line, i+1, err)
			}
			row[i] = v
		}

		if width >= 0 && len(row) != width {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, width, len(row))
		}
		width = len(row)
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no numeric data found")
	}

	if width == 1 && len(rows) > 1 {
		column := make([]float64, len(rows))
		for i, row := range rows {
			column[i] = row[0]
		}
		return [][]float64{column}, nil
	}
	return rows, nil
}
