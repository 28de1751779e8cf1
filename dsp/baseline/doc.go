// Package baseline estimates slowly varying background signal in spectra.
//
// The main estimator is asymmetrically reweighted penalized least squares
// (ARPLS, Baek et al., Analyst 140, 2015). Each iteration solves the
// Whittaker-type system
//
//	(W + H)·z = W·y,  H = λ·D·Dᵀ
//
// where D is the second-order difference operator and W the diagonal of the
// current sample weights, then updates the weights from the distribution of
// negative residuals with a logistic rule. Points far above the fit (peaks)
// lose weight, points at or below the fit keep it.
//
// # Usage
//
// For a single spectrum:
//
//	opts := baseline.DefaultOptions()
//	opts.Lambda = 1e5
//	res, err := baseline.EstimateBaseline(y, opts)
//	if err != nil {
//		return err
//	}
//	if !res.Converged() {
//		// res.Baseline is the estimate at the iteration cap.
//	}
//
// For interchangeable algorithms, build an [Estimator]:
//
//	est, err := baseline.New(baseline.MethodARPLS, opts)
//	res, err := est.Estimate(y)
//
// # Concurrency
//
// Every call owns its weights, penalty operator and residuals. Estimators
// are immutable values and may be shared between goroutines, so columns of a
// signal matrix can be solved in parallel without locking.
//
// # Errors
//
// Malformed input yields [ErrInvalidInput]. A residual distribution that
// leaves the reweighting rule undefined yields [ErrDegenerateResidual]. A
// failed banded Cholesky solve yields [ErrLinearSystem]. Hitting the
// iteration cap is not an error: the result carries
// [StatusIterationCapReached] together with the last estimate.
package baseline
