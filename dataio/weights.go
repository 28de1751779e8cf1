package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

const weightsHeader = "weights"

// LoadWeights reads the "weights" column of a CSV file with a header row.
func LoadWeights(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: %w", err)
	}
	defer f.Close()

	w, err := ReadWeights(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return w, nil
}

// ReadWeights parses a weights table from r.
func ReadWeights(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: weights header: %w", ErrFormat, err)
	}
	col := slices.IndexFunc(header, func(h string) bool {
		return strings.TrimSpace(h) == weightsHeader
	})
	if col < 0 {
		return nil, fmt.Errorf("%w: no %q column", ErrFormat, weightsHeader)
	}

	var out []float64
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if col >= len(row) {
			return nil, fmt.Errorf("%w: line %d has no weight", ErrFormat, line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		out = append(out, v)
	}
}
