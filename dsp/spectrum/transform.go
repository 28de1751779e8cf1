package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	// ErrLength reports a non-positive transform length or a buffer whose
	// length does not match the transformer.
	ErrLength = errors.New("spectrum: invalid transform length")
)

// Backend names the FFT implementation behind a [Transformer].
type Backend string

const (
	BackendAlgoFFT Backend = "algo-fft"
	BackendGonum   Backend = "gonum"
)

// Transformer computes forward and normalized inverse DFTs of a fixed length.
//
// A Transformer is not safe for concurrent use; create one per goroutine.
type Transformer struct {
	n        int
	plan     *algofft.Plan[complex128]
	fallback *fourier.CmplxFFT
}

// NewTransformer creates a transformer for length n.
func NewTransformer(n int) (*Transformer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return &Transformer{n: n, fallback: fourier.NewCmplxFFT(n)}, nil
	}
	return &Transformer{n: n, plan: plan}, nil
}

// Len returns the transform length.
func (t *Transformer) Len() int { return t.n }

// Backend reports which FFT implementation is in use.
func (t *Transformer) Backend() Backend {
	if t.plan != nil {
		return BackendAlgoFFT
	}
	return BackendGonum
}

// Forward computes dst = DFT(src). dst and src must have length Len().
func (t *Transformer) Forward(dst, src []complex128) error {
	if err := t.check(dst, src); err != nil {
		return err
	}
	if t.plan != nil {
		if err := t.plan.Forward(dst, src); err != nil {
			return fmt.Errorf("spectrum: forward FFT failed: %w", err)
		}
		return nil
	}
	t.fallback.Coefficients(dst, src)
	return nil
}

// Inverse computes dst = IDFT(src) scaled by 1/n, so that Inverse after
// Forward restores the input.
func (t *Transformer) Inverse(dst, src []complex128) error {
	if err := t.check(dst, src); err != nil {
		return err
	}
	if t.plan != nil {
		if err := t.plan.Inverse(dst, src); err != nil {
			return fmt.Errorf("spectrum: inverse FFT failed: %w", err)
		}
		return nil
	}

	t.fallback.Sequence(dst, src)
	scale := complex(1/float64(t.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// ForwardReal transforms a real sequence.
func (t *Transformer) ForwardReal(src []float64) ([]complex128, error) {
	if len(src) != t.n {
		return nil, fmt.Errorf("%w: input %d, transformer %d", ErrLength, len(src), t.n)
	}
	in := make([]complex128, t.n)
	for i, v := range src {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, t.n)
	if err := t.Forward(out, in); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Transformer) check(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: dst %d, src %d, transformer %d", ErrLength, len(dst), len(src), t.n)
	}
	return nil
}
