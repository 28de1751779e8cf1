package baseline

import (
	"fmt"
	"strings"
)

// Estimator computes the baseline of a single spectrum.
//
// Implementations are stateless between calls and safe for concurrent use.
type Estimator interface {
	Estimate(y []float64) (Result, error)
}

// Method selects a baseline algorithm.
type Method int

const (
	// MethodARPLS is asymmetrically reweighted penalized least squares.
	MethodARPLS Method = iota

	// MethodAsLS is classic asymmetric least squares with a fixed asymmetry.
	MethodAsLS
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodARPLS:
		return "arpls"
	case MethodAsLS:
		return "asls"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a case-insensitive method name to a [Method].
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "arpls":
		return MethodARPLS, nil
	case "asls":
		return MethodAsLS, nil
	default:
		return 0, fmt.Errorf("%w: unknown baseline method %q", ErrInvalidInput, name)
	}
}

// New returns an [Estimator] for method configured with opts.
func New(method Method, opts Options) (Estimator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch method {
	case MethodARPLS:
		return ARPLS{opts: opts}, nil
	case MethodAsLS:
		if err := opts.validateAsymmetry(); err != nil {
			return nil, err
		}
		return AsLS{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: unknown baseline method %d", ErrInvalidInput, int(method))
	}
}

// ARPLS is the [Estimator] form of [EstimateBaseline].
type ARPLS struct {
	opts Options
}

// NewARPLS returns an ARPLS estimator.
func NewARPLS(opts Options) (ARPLS, error) {
	if err := opts.Validate(); err != nil {
		return ARPLS{}, err
	}
	return ARPLS{opts: opts}, nil
}

// Options returns the estimator configuration.
func (a ARPLS) Options() Options { return a.opts }

// Estimate implements [Estimator].
func (a ARPLS) Estimate(y []float64) (Result, error) {
	return EstimateBaseline(y, a.opts)
}

// AsLS is the [Estimator] form of [EstimateAsLS].
type AsLS struct {
	opts Options
}

// Options returns the estimator configuration.
func (a AsLS) Options() Options { return a.opts }

// Estimate implements [Estimator].
func (a AsLS) Estimate(y []float64) (Result, error) {
	return EstimateAsLS(y, a.opts)
}
