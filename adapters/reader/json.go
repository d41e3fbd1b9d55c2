package reader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"pitos/internal/errors"
	"pitos/ports"
)

// JSONReader extracts samples from a JSON document. Path uses gjson syntax and
// must select either an array of numbers (one sample) or an array of such
// arrays (one sample each). An empty path selects the document root.
type JSONReader struct {
	path     string
	dataPath string
	r        io.Reader
}

var _ ports.SampleReader = (*JSONReader)(nil)

// NewJSONFileReader reads the file at path
func NewJSONFileReader(path, dataPath string) *JSONReader {
	return &JSONReader{path: path, dataPath: dataPath}
}

// NewJSONReader reads from r
func NewJSONReader(r io.Reader, dataPath string) *JSONReader {
	return &JSONReader{path: "input", dataPath: dataPath, r: r}
}

// ReadRows returns the selected samples
func (j *JSONReader) ReadRows(ctx context.Context) ([][]float64, error) {
	var body []byte
	var err error
	if j.r != nil {
		body, err = io.ReadAll(j.r)
	} else {
		body, err = os.ReadFile(j.path)
	}
	if err != nil {
		return nil, errors.ReadError(j.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := extractRows(body, j.dataPath)
	if err != nil {
		return nil, errors.ReadError(j.path, err)
	}
	return rows, nil
}

func extractRows(body []byte, dataPath string) ([][]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON")
	}

	var data gjson.Result
	if dataPath == "" {
		data = gjson.ParseBytes(body)
	} else {
		data = gjson.GetBytes(body, dataPath)
	}
	if !data.Exists() {
		return nil, fmt.Errorf("data path '%s' not found", dataPath)
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("data path '%s' is not an array", dataPath)
	}

	elems := data.Array()
	if len(elems) == 0 {
		return nil, fmt.Errorf("data path '%s' selects an empty array", dataPath)
	}

	if elems[0].IsArray() {
		rows := make([][]float64, len(elems))
		for i, elem := range elems {
			if !elem.IsArray() {
				return nil, fmt.Errorf("row %d is not an array", i)
			}
			row, err := numbers(elem.Array())
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			rows[i] = row
		}
		return rows, nil
	}

	row, err := numbers(elems)
	if err != nil {
		return nil, err
	}
	return [][]float64{row}, nil
}

func numbers(elems []gjson.Result) ([]float64, error) {
	out := make([]float64, len(elems))
	for i, e := range elems {
		if e.Type != gjson.Number {
			return nil, fmt.Errorf("element %d is %s, not a number", i, e.Type)
		}
		out[i] = e.Float()
	}
	return out, nil
}
