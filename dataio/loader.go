package dataio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

const (
	ramanXHeader = "Raman Shift"
	ramanYHeader = "Dark Subtracted #1"

	uvVisFields = 5
)

// LoadSpectrum reads one export file and returns its spectral axis and
// intensities.
func LoadSpectrum(path string, format Format) (x, y []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataio: %w", err)
	}
	defer f.Close()

	x, y, err = ReadSpectrum(f, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (%s)", err, path)
	}
	return x, y, nil
}

// ReadSpectrum parses one export from r.
func ReadSpectrum(r io.Reader, format Format) (x, y []float64, err error) {
	var s samples
	switch format {
	case FormatRaman:
		err = readRaman(r, &s)
	case FormatIR:
		err = readIR(r, &s)
	case FormatUVVis:
		err = readUVVis(r, &s)
	default:
		err = fmt.Errorf("%w: %v", ErrFormat, format)
	}
	if err != nil {
		return nil, nil, err
	}
	return s.x, s.y, nil
}

// samples collects (x, y) pairs, dropping pairs with a missing value.
type samples struct {
	x, y []float64
}

func (s *samples) add(xField, yField string) {
	xv, yv := parseCell(xField), parseCell(yField)
	if math.IsNaN(xv) || math.IsNaN(yv) {
		return
	}
	s.x = append(s.x, xv)
	s.y = append(s.y, yv)
}

func parseCell(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// readRaman skips the instrument preamble up to the header row naming the
// Raman shift column. Every later row is data.
func readRaman(r io.Reader, s *samples) error {
	cr := newCSVReader(r)
	xCol, yCol := -1, -1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFormat, err)
		}

		if xCol >= 0 {
			if xCol < len(row) && yCol < len(row) {
				s.add(row[xCol], row[yCol])
			}
			continue
		}
		if i := slices.Index(row, ramanXHeader); i >= 0 {
			xCol = i
			yCol = slices.Index(row, ramanYHeader)
			if yCol < 0 {
				return fmt.Errorf("%w: header has %q but no %q column", ErrFormat, ramanXHeader, ramanYHeader)
			}
		}
	}
	if xCol < 0 {
		return fmt.Errorf("%w: no %q header row", ErrFormat, ramanXHeader)
	}
	return nil
}

// readIR reads the first two columns of every row.
func readIR(r io.Reader, s *samples) error {
	cr := newCSVReader(r)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if len(row) >= 2 {
			s.add(row[0], row[1])
		}
	}
}

// readUVVis reads semicolon-separated lines with exactly five fields. The
// first such line holds the column labels; x is the first field and y the
// last.
func readUVVis(r io.Reader, s *samples) error {
	sc := bufio.NewScanner(r)
	labels := false
	for sc.Scan() {
		fields := strings.Split(strings.TrimRight(sc.Text(), "\r"), ";")
		if len(fields) != uvVisFields {
			continue
		}
		if !labels {
			labels = true
			continue
		}
		s.add(fields[0], fields[uvVisFields-1])
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return nil
}
