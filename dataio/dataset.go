package dataio

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/spectra"
)

// LoadOptions selects and folds a directory of exports.
type LoadOptions struct {
	Format Format

	// TimePoints is the number of consecutive files forming one
	// acquisition run.
	TimePoints int

	// Start and End select files by natural-order index, End inclusive.
	// End == -1 means through the last file.
	Start, End int

	Logger logrus.FieldLogger
}

// LoadDataset reads the selected files of dir and averages the complete
// acquisition runs into a dataset with TimePoints columns.
//
// File i contributes to column i mod TimePoints. The repeat count is
// files / TimePoints; files past the last complete run are ignored with a
// warning.
func LoadDataset(ctx context.Context, dir string, opts LoadOptions) (*spectra.Dataset, error) {
	if opts.TimePoints <= 0 {
		return nil, fmt.Errorf("%w: time points must be positive, got %d", ErrInvalidOptions, opts.TimePoints)
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	files, err := ListFiles(dir, opts.Format, opts.Start, opts.End)
	if err != nil {
		return nil, err
	}
	repeats := len(files) / opts.TimePoints
	if repeats == 0 {
		return nil, fmt.Errorf("%w: %d files for %d time points", ErrRange, len(files), opts.TimePoints)
	}
	if rest := len(files) % opts.TimePoints; rest != 0 {
		log.WithFields(logrus.Fields{
			"files":       len(files),
			"time_points": opts.TimePoints,
			"ignored":     rest,
		}).Warn("file count is not a multiple of the time points, dropping the incomplete run")
	}

	var (
		x   []float64
		sum *mat.Dense
	)
	for i, path := range files[:repeats*opts.TimePoints] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fx, fy, err := LoadSpectrum(path, opts.Format)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			if len(fx) == 0 {
				return nil, fmt.Errorf("%w: no samples in %s", ErrFormat, path)
			}
			x = fx
			sum = mat.NewDense(len(fx), opts.TimePoints, nil)
		}
		if len(fx) != len(x) {
			return nil, fmt.Errorf("%w: %s has %d samples, expected %d", ErrShape, path, len(fx), len(x))
		}

		col := i % opts.TimePoints
		for r, v := range fy {
			sum.Set(r, col, sum.At(r, col)+v)
		}
		log.WithFields(logrus.Fields{"file": path, "column": col}).Debug("loaded spectrum")
	}
	sum.Scale(1/float64(repeats), sum)

	log.WithFields(logrus.Fields{
		"files":     len(files),
		"repeats":   repeats,
		"positions": len(x),
	}).Info("dataset loaded")

	return spectra.NewDataset(x, sum)
}
