package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Split writes the real and imaginary parts of in to re and im.
// All slices must have the same length.
func Split(re, im []float64, in []complex128) {
	if len(re) != len(in) || len(im) != len(in) {
		panic("spectrum: Split length mismatch")
	}
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Combine writes re[k] + i·im[k] to dst. All slices must have the same length.
func Combine(dst []complex128, re, im []float64) {
	if len(re) != len(dst) || len(im) != len(dst) {
		panic("spectrum: Combine length mismatch")
	}
	for i := range dst {
		dst[i] = complex(re[i], im[i])
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	Split(re, im, in)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// PhaseFromParts writes atan2(im[k], re[k]) in radians to dst.
func PhaseFromParts(dst, re, im []float64) {
	if len(re) != len(dst) || len(im) != len(dst) {
		panic("spectrum: PhaseFromParts length mismatch")
	}
	for i := range dst {
		dst[i] = math.Atan2(im[i], re[i])
	}
}
