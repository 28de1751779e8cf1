package baseline

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// solver holds the per-call scratch for repeated (W + H)·z = W·y solves.
type solver struct {
	penalty *Penalty
	chol    mat.BandCholesky
	rhs     []float64
}

func newSolver(p *Penalty) *solver {
	return &solver{
		penalty: p,
		rhs:     make([]float64, p.Len()),
	}
}

// solve writes the weighted penalized least-squares fit of y into z.
//
// A condition warning from gonum is ignored; only a failed factorization or
// a non-finite solution is an error.
func (s *solver) solve(z, w, y []float64) error {
	if !s.chol.Factorize(s.penalty.withWeights(w)) {
		return fmt.Errorf("%w: W+H is not positive definite", ErrLinearSystem)
	}

	vecmath.MulBlock(s.rhs, w, y)

	dst := mat.NewVecDense(len(z), z)
	if err := s.chol.SolveVecTo(dst, mat.NewVecDense(len(s.rhs), s.rhs)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("%w: %w", ErrLinearSystem, err)
		}
	}

	for i, v := range z {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite solution at index %d", ErrLinearSystem, i)
		}
	}
	return nil
}
