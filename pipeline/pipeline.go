// Package pipeline runs a configured correction job end to end: load the
// exports, correct baselines, reweight in the Fourier domain and write the
// result tables.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/config"
	"github.com/cwbudde/wavey/dataio"
	"github.com/cwbudde/wavey/dsp/baseline"
	"github.com/cwbudde/wavey/spectra"
)

// Output file names inside the output directory.
const (
	OriginalFile  = "original_data.csv"
	CorrectedFile = "baseline_corrected_data.csv"
	BaselineFile  = "baseline.csv"
	TransformFile = "transformed_data.csv"
	PhaseFile     = "phase.csv"
	MagnitudeFile = "magnitude.csv"
)

// Report summarizes a run.
type Report struct {
	Rows, Cols int

	// Correction is nil when no baseline method is configured.
	Correction *spectra.Correction

	// Outputs lists the written files in write order.
	Outputs []string

	// Dataset is the final, transformed dataset.
	Dataset *spectra.Dataset
}

// Run executes cfg. The output directory is created if needed.
//
// If ctx ends during baseline correction, Run returns the context error
// with a report holding the partial correction; nothing after the
// correction tables is written.
func Run(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Report, error) {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	lo, err := cfg.LoadOptions(logger)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	ds, err := dataio.LoadDataset(ctx, cfg.SpectrumDir, lo)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load %s: %w", cfg.SpectrumDir, err)
	}

	var weights []float64
	if cfg.WeightFile != "" {
		if weights, err = dataio.LoadWeights(cfg.WeightFile); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		if len(weights) != ds.Cols() {
			return nil, fmt.Errorf("pipeline: %w: %d weights for %d time points", spectra.ErrShape, len(weights), ds.Cols())
		}
	}

	rep := &Report{Rows: ds.Rows(), Cols: ds.Cols(), Dataset: ds}
	out := func(name string) string { return filepath.Join(cfg.OutDir, name) }
	save := func(name string, x []float64, m mat.Matrix) error {
		path := out(name)
		if err := dataio.SaveMatrix(path, x, m); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		rep.Outputs = append(rep.Outputs, path)
		logger.WithField("path", path).Info("saved table")
		return nil
	}

	if err := save(OriginalFile, ds.X, ds.Y); err != nil {
		return rep, err
	}

	if cfg.CorrectionEnabled() {
		raw := mat.DenseCopyOf(ds.Y)
		corr, err := correct(ctx, cfg, ds, logger)
		rep.Correction = corr
		if err != nil {
			return rep, err
		}
		if err := save(CorrectedFile, ds.X, ds.Y); err != nil {
			return rep, err
		}
		if err := save(BaselineFile, ds.X, corr.Baseline); err != nil {
			return rep, err
		}
		plots, err := plotColumns(cfg, ds, raw, corr.Baseline, logger)
		rep.Outputs = append(rep.Outputs, plots...)
		if err != nil {
			return rep, err
		}
	}

	if err := ds.FourierTransform(); err != nil {
		return rep, fmt.Errorf("pipeline: %w", err)
	}
	if cfg.SaveMagnitude {
		mag, err := ds.Magnitude()
		if err != nil {
			return rep, fmt.Errorf("pipeline: %w", err)
		}
		if err := save(MagnitudeFile, ds.X, mag); err != nil {
			return rep, err
		}
	}
	if weights != nil {
		if err := ds.Weight(weights); err != nil {
			return rep, fmt.Errorf("pipeline: %w", err)
		}
	}
	if err := ds.InverseFourierTransform(); err != nil {
		return rep, fmt.Errorf("pipeline: %w", err)
	}
	if err := save(TransformFile, ds.X, ds.Y); err != nil {
		return rep, err
	}
	if cfg.SavePhase {
		if err := save(PhaseFile, ds.X, ds.Phase()); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func correct(ctx context.Context, cfg *config.Config, ds *spectra.Dataset, logger logrus.FieldLogger) (*spectra.Correction, error) {
	method, err := cfg.Method()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	est, err := baseline.New(method, cfg.BaselineOptions())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"method":  method,
		"lambda":  cfg.Baseline.Lambda,
		"columns": ds.Cols(),
	}).Info("correcting baselines")

	corr, err := spectra.Correct(ctx, ds, est,
		spectra.WithWorkers(cfg.Workers),
		spectra.WithLogger(logger),
	)
	if err != nil {
		return corr, fmt.Errorf("pipeline: baseline correction: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"failed":      len(corr.Failed()),
		"unconverged": len(corr.Unconverged()),
	}).Info("baseline correction done")
	return corr, nil
}
