package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/spectra"
)

// SaveDataset writes the axis and intensities of ds to path.
func SaveDataset(path string, ds *spectra.Dataset) error {
	return SaveMatrix(path, ds.X, ds.Y)
}

// SaveMatrix writes x next to the columns of m as an indexed table:
//
//	,0,1,...,c
//	0,x[0],m[0][0],...
//
// Column 0 holds the axis and columns 1..c the matrix columns.
func SaveMatrix(path string, x []float64, m mat.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("dataio: %w", cerr)
		}
	}()
	return WriteMatrix(f, x, m)
}

// WriteMatrix writes the table of [SaveMatrix] to w.
func WriteMatrix(w io.Writer, x []float64, m mat.Matrix) error {
	rows, cols := m.Dims()
	if rows != len(x) {
		return fmt.Errorf("%w: %d axis values for %d rows", ErrShape, len(x), rows)
	}

	cw := csv.NewWriter(w)
	record := make([]string, cols+2)
	for j := range cols + 1 {
		record[j+1] = strconv.Itoa(j)
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("dataio: %w", err)
	}

	for i := range rows {
		record[0] = strconv.Itoa(i)
		record[1] = formatFloat(x[i])
		for j := range cols {
			record[j+2] = formatFloat(m.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("dataio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataio: %w", err)
	}
	return nil
}

// LoadMatrix reads a table written by [SaveMatrix].
func LoadMatrix(path string) ([]float64, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataio: %w", err)
	}
	defer f.Close()
	return ReadMatrix(f)
}

// ReadMatrix parses the table of [WriteMatrix].
func ReadMatrix(r io.Reader) ([]float64, *mat.Dense, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: table header: %w", ErrFormat, err)
	}
	cols := len(header) - 2
	if cols < 1 {
		return nil, nil, fmt.Errorf("%w: table has no data columns", ErrFormat)
	}

	var (
		x    []float64
		data []float64
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		for j, field := range row[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: row %s: %w", ErrFormat, row[0], err)
			}
			if j == 0 {
				x = append(x, v)
			} else {
				data = append(data, v)
			}
		}
	}
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("%w: table has no rows", ErrFormat)
	}
	return x, mat.NewDense(len(x), cols, data), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
