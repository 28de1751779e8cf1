package baseline

import (
	"fmt"
	"math"
)

const (
	defaultStopRatio = 1e-6
	defaultMaxIters  = 10
	defaultAsymmetry = 0.01
)

// Options configures a baseline estimate.
type Options struct {
	// Lambda is the smoothness (regularization) strength. Larger values give
	// stiffer baselines. Must be > 0. Typical values: 1e2 to 1e9.
	Lambda float64

	// StopRatio ends the iteration once ‖w_new − w‖ / ‖w‖ drops to or below
	// this value. Zero disables early termination.
	StopRatio float64

	// MaxIters caps the reweighting loop. The loop runs at most MaxIters+1
	// solves; reaching the cap is reported through [Result.Status].
	MaxIters int

	// Asymmetry is the weight given to points above the fit by the AsLS
	// estimator (p in Eilers' notation). ARPLS ignores it.
	Asymmetry float64
}

// DefaultOptions returns the default stop ratio, iteration cap and
// asymmetry. Lambda is left at zero and must be set by the caller.
func DefaultOptions() Options {
	return Options{
		StopRatio: defaultStopRatio,
		MaxIters:  defaultMaxIters,
		Asymmetry: defaultAsymmetry,
	}
}

// Validate reports whether the options can drive the ARPLS loop.
func (o Options) Validate() error {
	if err := validateLambda(o.Lambda); err != nil {
		return err
	}
	if !(o.StopRatio >= 0) || math.IsInf(o.StopRatio, 0) {
		return fmt.Errorf("%w: stop ratio must be finite and >= 0: %v", ErrInvalidInput, o.StopRatio)
	}
	if o.MaxIters < 0 {
		return fmt.Errorf("%w: max iterations must be >= 0: %d", ErrInvalidInput, o.MaxIters)
	}
	return nil
}

func (o Options) validateAsymmetry() error {
	if !(o.Asymmetry > 0 && o.Asymmetry < 1) {
		return fmt.Errorf("%w: asymmetry must be in (0,1): %v", ErrInvalidInput, o.Asymmetry)
	}
	return nil
}
