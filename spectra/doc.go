// Package spectra holds the two-dimensional spectral dataset and the
// per-column operations applied to it.
//
// A [Dataset] stores intensities with one row per spectral position (Raman
// shift, wavenumber or wavelength) and one column per time sample. Baseline
// correction runs independently on every column ([Correct]); the Fourier
// reweighting round trip runs along every row ([Dataset.FourierTransform],
// [Dataset.Weight], [Dataset.InverseFourierTransform]).
package spectra
