package baseline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Status describes how a reweighting loop terminated.
type Status int

const (
	// StatusConverged means the weight change ratio reached the stop ratio.
	StatusConverged Status = iota

	// StatusIterationCapReached means the loop stopped at the iteration cap.
	// The result holds the last estimate and is still usable.
	StatusIterationCapReached
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationCapReached:
		return "iteration-cap-reached"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one baseline estimate.
type Result struct {
	// Baseline is the smooth background estimate z, same length as the input.
	Baseline []float64

	// Residual is y − z for the final iteration.
	Residual []float64

	// Weights are the sample weights after the final update.
	Weights []float64

	// Iterations counts the weighted solves performed.
	Iterations int

	// FinalRatio is ‖w_new − w‖ / ‖w‖ of the last update.
	FinalRatio float64

	Status Status
}

// Converged reports whether the stop ratio was reached.
func (r Result) Converged() bool { return r.Status == StatusConverged }

// Corrected returns y − Baseline, i.e. the residual.
func (r Result) Corrected() []float64 {
	out := make([]float64, len(r.Residual))
	copy(out, r.Residual)
	return out
}

const (
	// weightEps keeps updated weights inside the open unit interval.
	weightEps = 1e-12

	// spreadTol is the smallest negative-residual standard deviation, relative
	// to the signal scale, that still defines the logistic update. Below it the
	// spread is rounding noise of an exact fit.
	spreadTol = 1.4901161193847656e-08 // sqrt(machine epsilon)
)

// weightObserver receives the weight vector after every update.
type weightObserver func(iter int, w []float64)

// EstimateBaseline runs ARPLS on y.
//
// It returns the baseline, the residual y − z, the number of weighted solves
// and the final weight change ratio. When the loop hits opts.MaxIters the
// result is returned with [StatusIterationCapReached] and a nil error.
func EstimateBaseline(y []float64, opts Options) (Result, error) {
	return arpls(y, opts, nil)
}

func arpls(y []float64, opts Options, observe weightObserver) (Result, error) {
	if err := validateSignal(y); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	n := len(y)
	penalty, err := NewPenalty(n, opts.Lambda)
	if err != nil {
		return Result{}, err
	}
	sol := newSolver(penalty)
	scale := signalScale(y)

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	wNew := make([]float64, n)
	z := make([]float64, n)
	d := make([]float64, n)
	neg := make([]float64, 0, n)

	var (
		ratio float64
		iters int
	)
	for {
		if err := sol.solve(z, w, y); err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", iters+1, err)
		}
		floats.SubTo(d, y, z)

		neg = neg[:0]
		for _, v := range d {
			if v < 0 {
				neg = append(neg, v)
			}
		}
		if len(neg) == 0 {
			return Result{}, fmt.Errorf("%w: no negative residuals at iteration %d", ErrDegenerateResidual, iters+1)
		}
		m, s := stat.PopMeanStdDev(neg, nil)
		if spreadTooSmall(s, scale) {
			return Result{}, fmt.Errorf("%w: negative residual spread %g at iteration %d (%d samples)",
				ErrDegenerateResidual, s, iters+1, len(neg))
		}

		center := 2*s - m
		for i, v := range d {
			wNew[i] = logistic(2 * (v - center) / s)
		}

		ratio = floats.Distance(wNew, w, 2) / floats.Norm(w, 2)
		w, wNew = wNew, w
		iters++
		if observe != nil {
			observe(iters, w)
		}

		if ratio <= opts.StopRatio {
			return newResult(z, d, w, iters, ratio, StatusConverged), nil
		}
		if iters > opts.MaxIters {
			return newResult(z, d, w, iters, ratio, StatusIterationCapReached), nil
		}
	}
}

// logistic returns 1 / (1 + e^x) clamped to [weightEps, 1−weightEps].
func logistic(x float64) float64 {
	var v float64
	if x >= 0 {
		e := math.Exp(-x)
		v = e / (1 + e)
	} else {
		v = 1 / (1 + math.Exp(x))
	}
	switch {
	case v < weightEps:
		return weightEps
	case v > 1-weightEps:
		return 1 - weightEps
	}
	return v
}

// spreadTooSmall reports whether the negative-residual spread s is at the
// rounding level of a signal of the given scale. The threshold follows the
// signal level, not its variation, so a large constant offset raises it.
func spreadTooSmall(s, scale float64) bool {
	return !(s > spreadTol*scale) || math.IsInf(s, 0)
}

// signalScale is the largest absolute sample, or 1 for an all-zero signal.
func signalScale(y []float64) float64 {
	scale := math.Max(math.Abs(floats.Max(y)), math.Abs(floats.Min(y)))
	if scale == 0 {
		return 1
	}
	return scale
}

func newResult(z, d, w []float64, iters int, ratio float64, status Status) Result {
	return Result{
		Baseline:   z,
		Residual:   d,
		Weights:    w,
		Iterations: iters,
		FinalRatio: ratio,
		Status:     status,
	}
}
