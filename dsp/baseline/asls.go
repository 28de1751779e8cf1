package baseline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// EstimateAsLS runs asymmetric least squares (Eilers & Boelens) on y.
//
// Points above the current fit get weight opts.Asymmetry, points on or below
// it get 1 − opts.Asymmetry. It shares the penalty operator, the iteration
// cap and the [Result] contract with [EstimateBaseline]. Because its weights
// only take two values, the loop usually stops with a ratio of exactly zero.
func EstimateAsLS(y []float64, opts Options) (Result, error) {
	if err := validateSignal(y); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.validateAsymmetry(); err != nil {
		return Result{}, err
	}

	n := len(y)
	penalty, err := NewPenalty(n, opts.Lambda)
	if err != nil {
		return Result{}, err
	}
	sol := newSolver(penalty)

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	wNew := make([]float64, n)
	z := make([]float64, n)
	d := make([]float64, n)

	var (
		ratio float64
		iters int
	)
	for {
		if err := sol.solve(z, w, y); err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", iters+1, err)
		}
		floats.SubTo(d, y, z)

		for i, v := range d {
			if v > 0 {
				wNew[i] = opts.Asymmetry
			} else {
				wNew[i] = 1 - opts.Asymmetry
			}
		}

		ratio = floats.Distance(wNew, w, 2) / floats.Norm(w, 2)
		w, wNew = wNew, w
		iters++

		if ratio <= opts.StopRatio {
			return newResult(z, d, w, iters, ratio, StatusConverged), nil
		}
		if iters > opts.MaxIters {
			return newResult(z, d, w, iters, ratio, StatusIterationCapReached), nil
		}
	}
}
