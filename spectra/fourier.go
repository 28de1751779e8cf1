package spectra

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/dsp/spectrum"
)

// FourierTransform replaces every row by its DFT along the time axis.
//
// Y keeps the real parts; the imaginary parts and the phase are kept in
// [Dataset.Imag] and [Dataset.Phase].
func (d *Dataset) FourierTransform() error {
	if d.Fourier() {
		return fmt.Errorf("%w: dataset is already in the Fourier domain", ErrDomain)
	}

	rows, cols := d.Y.Dims()
	tr, err := spectrum.NewTransformer(cols)
	if err != nil {
		return fmt.Errorf("spectra: %w", err)
	}

	imag := mat.NewDense(rows, cols, nil)
	phase := mat.NewDense(rows, cols, nil)
	for r := range rows {
		re := d.Y.RawRowView(r)
		bins, err := tr.ForwardReal(re)
		if err != nil {
			return fmt.Errorf("spectra: row %d: %w", r, err)
		}
		im := imag.RawRowView(r)
		spectrum.Split(re, im, bins)
		spectrum.PhaseFromParts(phase.RawRowView(r), re, im)
	}

	d.imag = imag
	d.phase = phase
	return nil
}

// Weight multiplies every DFT bin in column j by weights[j].
// It requires the Fourier domain and one weight per column.
func (d *Dataset) Weight(weights []float64) error {
	if !d.Fourier() {
		return fmt.Errorf("%w: weighting requires the Fourier domain", ErrDomain)
	}
	rows, cols := d.Y.Dims()
	if len(weights) != cols {
		return fmt.Errorf("%w: %d weights for %d time samples", ErrShape, len(weights), cols)
	}

	for r := range rows {
		vecmath.MulBlockInPlace(d.Y.RawRowView(r), weights)
		vecmath.MulBlockInPlace(d.imag.RawRowView(r), weights)
	}
	return nil
}

// Magnitude returns |X[k]| of every row's current bins, including any
// applied weights. It requires the Fourier domain.
func (d *Dataset) Magnitude() (*mat.Dense, error) {
	if !d.Fourier() {
		return nil, fmt.Errorf("%w: magnitude requires the Fourier domain", ErrDomain)
	}
	rows, cols := d.Y.Dims()
	out := mat.NewDense(rows, cols, nil)
	bins := make([]complex128, cols)
	for r := range rows {
		spectrum.Combine(bins, d.Y.RawRowView(r), d.imag.RawRowView(r))
		out.SetRow(r, spectrum.Magnitude(bins))
	}
	return out, nil
}

// InverseFourierTransform restores every row from its (possibly weighted)
// bins and keeps the real part. The phase of the forward transform stays
// available.
func (d *Dataset) InverseFourierTransform() error {
	if !d.Fourier() {
		return fmt.Errorf("%w: dataset is not in the Fourier domain", ErrDomain)
	}

	rows, cols := d.Y.Dims()
	tr, err := spectrum.NewTransformer(cols)
	if err != nil {
		return fmt.Errorf("spectra: %w", err)
	}

	bins := make([]complex128, cols)
	seq := make([]complex128, cols)
	for r := range rows {
		re := d.Y.RawRowView(r)
		spectrum.Combine(bins, re, d.imag.RawRowView(r))
		if err := tr.Inverse(seq, bins); err != nil {
			return fmt.Errorf("spectra: row %d: %w", r, err)
		}
		for i, c := range seq {
			re[i] = real(c)
		}
	}

	d.imag = nil
	return nil
}
