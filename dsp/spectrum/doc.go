// Package spectrum provides the Fourier-domain helpers used to reweight
// spectral datasets along their time axis.
//
// [Transformer] wraps an algo-fft plan for one transform length. When the
// plan constructor rejects a length, the transformer falls back to gonum's
// mixed-radix complex FFT, so every positive length is supported. Inverse
// transforms are normalized by 1/n on both backends.
//
// The bin helpers ([Magnitude], [PhaseFromParts], [Split], [Combine])
// operate on complex bins produced by a [Transformer].
package spectrum
