package spectra

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape reports mismatched axis, matrix or weight dimensions.
	ErrShape = errors.New("spectra: shape mismatch")

	// ErrDomain reports an operation that needs the other representation,
	// e.g. baseline correction of a Fourier-transformed dataset.
	ErrDomain = errors.New("spectra: wrong signal domain")
)

// Dataset is a spectral signal matrix with its spectral axis.
type Dataset struct {
	// X is the spectral axis, one value per row of Y.
	X []float64

	// Y holds intensities, rows = spectral positions, cols = time samples.
	// In the Fourier domain it holds the real part of each row's DFT.
	Y *mat.Dense

	imag  *mat.Dense
	phase *mat.Dense
}

// NewDataset wraps x and y. y must have len(x) rows.
func NewDataset(x []float64, y *mat.Dense) (*Dataset, error) {
	if y == nil || y.IsEmpty() {
		return nil, fmt.Errorf("%w: empty signal matrix", ErrShape)
	}
	if r, _ := y.Dims(); r != len(x) {
		return nil, fmt.Errorf("%w: %d axis values for %d rows", ErrShape, len(x), r)
	}
	return &Dataset{X: x, Y: y}, nil
}

// Rows returns the number of spectral positions.
func (d *Dataset) Rows() int {
	r, _ := d.Y.Dims()
	return r
}

// Cols returns the number of time samples.
func (d *Dataset) Cols() int {
	_, c := d.Y.Dims()
	return c
}

// Column returns a copy of column j.
func (d *Dataset) Column(j int) []float64 {
	return mat.Col(nil, j, d.Y)
}

// SetColumn overwrites column j with v.
func (d *Dataset) SetColumn(j int, v []float64) {
	d.Y.SetCol(j, v)
}

// Fourier reports whether the dataset currently holds DFT bins.
func (d *Dataset) Fourier() bool { return d.imag != nil }

// Imag returns the imaginary parts of the row DFTs, or nil outside the
// Fourier domain.
func (d *Dataset) Imag() *mat.Dense { return d.imag }

// Phase returns the phase of the row DFTs in radians from the most recent
// [Dataset.FourierTransform], or nil if none was computed.
func (d *Dataset) Phase() *mat.Dense { return d.phase }

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		X: append([]float64(nil), d.X...),
		Y: mat.DenseCopyOf(d.Y),
	}
	if d.imag != nil {
		out.imag = mat.DenseCopyOf(d.imag)
	}
	if d.phase != nil {
		out.phase = mat.DenseCopyOf(d.phase)
	}
	return out
}
