package baseline

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput reports a malformed signal or option set: fewer than
	// three samples, non-finite samples, or a non-positive smoothness.
	ErrInvalidInput = errors.New("baseline: invalid input")

	// ErrDegenerateResidual reports that the reweighting step is undefined
	// because the fit has no negative residuals or their spread is zero.
	ErrDegenerateResidual = errors.New("baseline: degenerate residual distribution")

	// ErrLinearSystem reports a failed weighted penalized solve.
	ErrLinearSystem = errors.New("baseline: linear system solve failed")
)

// minSamples is the shortest signal with a defined second difference.
const minSamples = 3

func validateSignal(y []float64) error {
	if len(y) < minSamples {
		return fmt.Errorf("%w: signal length must be >= %d: %d", ErrInvalidInput, minSamples, len(y))
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite sample at index %d: %v", ErrInvalidInput, i, v)
		}
	}
	return nil
}

func validateLambda(lambda float64) error {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return fmt.Errorf("%w: lambda must be finite and > 0: %v", ErrInvalidInput, lambda)
	}
	return nil
}
