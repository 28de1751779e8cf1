package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude] with
// a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Polynomial evaluates coeffs[0] + coeffs[1]·t + coeffs[2]·t² + ... on
// length points with t evenly spaced over [0, 1].
func Polynomial(length int, coeffs ...float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := 0.0
		if length > 1 {
			t = float64(i) / float64(length-1)
		}
		acc := 0.0
		for k := len(coeffs) - 1; k >= 0; k-- {
			acc = acc*t + coeffs[k]
		}
		out[i] = acc
	}
	return out
}

// Ramp generates offset + slope·i.
func Ramp(offset, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}

// GaussianPeak generates height·exp(-(i-center)²/(2·width²)).
func GaussianPeak(length int, center, width, height float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		x := (float64(i) - center) / width
		out[i] = height * math.Exp(-0.5*x*x)
	}
	return out
}

// Spike generates a signal of zeros with height at pos.
func Spike(length, pos int, height float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = height
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Sum adds signals of equal length element-wise into a new slice.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		if len(s) != len(out) {
			panic("testutil: Sum length mismatch")
		}
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}
