// Package column summarizes one spectrum (a column of a signal matrix) with
// the statistics logged after baseline correction.
package column

import "math"

// Stats holds summary statistics of a spectrum.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Peak     float64 // max(|max|, |min|)
	Range    float64 // max - min
	Energy   float64 // sum of squares
	Variance float64 // population variance
	Skewness float64
}

// Calculate computes all statistics in a single pass. Mean and the central
// moments use Welford's update for numerical stability.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3 float64
		sumSq        float64
		maxVal       = x[0]
		maxPos       int
		minVal       = x[0]
		minPos       int
	)

	for i, v := range x {
		ni := float64(i + 1)
		delta := v - mean
		deltaN := delta / ni
		term1 := delta * deltaN * float64(i)

		// M3 must be updated before M2.
		m3 += term1*deltaN*(ni-2) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += v * v

		if v > maxVal {
			maxVal, maxPos = v, i
		}
		if v < minVal {
			minVal, minPos = v, i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
	}

	return Stats{
		Length:   n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Max:      maxVal,
		MaxPos:   maxPos,
		Min:      minVal,
		MinPos:   minPos,
		Peak:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Range:    maxVal - minVal,
		Energy:   sumSq,
		Variance: variance,
		Skewness: skewness,
	}
}

// Fields returns the statistics as structured log fields.
func (s Stats) Fields() map[string]any {
	return map[string]any{
		"mean":  s.Mean,
		"rms":   s.RMS,
		"min":   s.Min,
		"max":   s.Max,
		"range": s.Range,
	}
}
