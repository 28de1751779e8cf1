package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/config"
	"github.com/cwbudde/wavey/dataio"
	"github.com/cwbudde/wavey/spectra"
)

// PlotName returns the file name of the diagnostic plot of column j.
func PlotName(j int) string {
	return fmt.Sprintf("baseline_col_%d.png", j)
}

// plotColumns renders raw, baseline and corrected curves for every
// configured column. Columns outside the dataset are skipped.
func plotColumns(cfg *config.Config, ds *spectra.Dataset, raw, bl *mat.Dense, logger logrus.FieldLogger) ([]string, error) {
	var written []string
	for _, j := range cfg.PlotColumns {
		if j >= ds.Cols() {
			logger.WithFields(logrus.Fields{"column": j, "columns": ds.Cols()}).Warn("plot column out of range, skipped")
			continue
		}

		opts := dataio.DefaultPlotOptions()
		opts.Title = fmt.Sprintf("Time point %d", j)
		path := filepath.Join(cfg.OutDir, PlotName(j))
		err := dataio.PlotSeries(path, ds.X, opts,
			dataio.Series{Label: "raw", Y: mat.Col(nil, j, raw)},
			dataio.Series{Label: "baseline", Y: mat.Col(nil, j, bl)},
			dataio.Series{Label: "corrected", Y: ds.Column(j)},
		)
		if err != nil {
			return written, fmt.Errorf("pipeline: plot column %d: %w", j, err)
		}
		written = append(written, path)
	}
	return written, nil
}
