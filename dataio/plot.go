package dataio

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one labelled curve over the shared spectral axis.
type Series struct {
	Label string
	Y     []float64
}

// PlotOptions sets the labels and size of a plot.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// DefaultPlotOptions returns an 8x5 inch plot with intensity labels.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		XLabel: "Raman shift",
		YLabel: "Intensity",
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// PlotSeries draws series as lines against x and saves the figure to path.
// The image format follows the extension of path (png, svg, pdf, ...).
func PlotSeries(path string, x []float64, opts PlotOptions, series ...Series) error {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Y) != len(x) {
			return fmt.Errorf("%w: series %q has %d values for %d positions", ErrShape, s.Label, len(s.Y), len(x))
		}
		xys := make(plotter.XYs, len(x))
		for k := range x {
			xys[k].X = x[k]
			xys[k].Y = s.Y[k]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("dataio: series %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("dataio: save plot: %w", err)
	}
	return nil
}
