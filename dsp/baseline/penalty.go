package baseline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// penaltyBandwidth is the number of super-diagonals of D·Dᵀ for second
// differences.
const penaltyBandwidth = 2

// secondDiff is the column stencil of the second-order difference operator.
var secondDiff = [penaltyBandwidth + 1]float64{1, -2, 1}

// Penalty is the smoothness operator H = λ·D·Dᵀ for signals of a fixed
// length, with D the (n × n−2) second-difference operator.
//
// H is symmetric positive-semidefinite and pentadiagonal. It is stored in
// upper band form and never modified after construction, so one Penalty can
// serve every iteration of a solve.
type Penalty struct {
	n      int
	lambda float64
	band   []float64 // row-major upper band, stride penaltyBandwidth+1
}

// NewPenalty builds H for signals of length n and smoothness lambda.
func NewPenalty(n int, lambda float64) (*Penalty, error) {
	if n < minSamples {
		return nil, fmt.Errorf("%w: penalty size must be >= %d: %d", ErrInvalidInput, minSamples, n)
	}
	if err := validateLambda(lambda); err != nil {
		return nil, err
	}

	const stride = penaltyBandwidth + 1
	band := make([]float64, n*stride)

	// Column j of D has the stencil at rows j, j+1, j+2, so it contributes
	// λ·c[a]·c[b] to H[j+a][j+b].
	for j := 0; j+penaltyBandwidth < n; j++ {
		for a := 0; a <= penaltyBandwidth; a++ {
			for b := a; b <= penaltyBandwidth; b++ {
				band[(j+a)*stride+(b-a)] += lambda * secondDiff[a] * secondDiff[b]
			}
		}
	}

	return &Penalty{n: n, lambda: lambda, band: band}, nil
}

// Len returns the signal length H was built for.
func (p *Penalty) Len() int { return p.n }

// Lambda returns the smoothness strength.
func (p *Penalty) Lambda() float64 { return p.lambda }

// At returns H[i][j]. Entries outside the band are zero.
func (p *Penalty) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= p.n || j >= p.n {
		panic("baseline: penalty index out of range")
	}
	if i > j {
		i, j = j, i
	}
	if j-i > penaltyBandwidth {
		return 0
	}
	return p.band[i*(penaltyBandwidth+1)+(j-i)]
}

// Matrix returns a copy of H as a symmetric band matrix.
func (p *Penalty) Matrix() *mat.SymBandDense {
	data := make([]float64, len(p.band))
	copy(data, p.band)
	return mat.NewSymBandDense(p.n, penaltyBandwidth, data)
}

// withWeights returns W + H for the weight vector w.
func (p *Penalty) withWeights(w []float64) *mat.SymBandDense {
	const stride = penaltyBandwidth + 1
	data := make([]float64, len(p.band))
	copy(data, p.band)
	for i, wi := range w {
		data[i*stride] += wi
	}
	return mat.NewSymBandDense(p.n, penaltyBandwidth, data)
}
