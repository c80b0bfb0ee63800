package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf pools the real/imaginary planes used to unpack complex bins
// for the vectorized kernels.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// unpack splits in into pooled re/im planes. The caller must release buf
// when done with the planes.
func unpack(in []complex128) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * len(in)
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	re, im = buf.data[:len(in)], buf.data[len(in):need]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |X[k]| per bin. Scratch memory is pooled, so in steady
// state only the output slice allocates.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))

	re, im, buf := unpack(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// Power returns |X[k]|^2 per bin, pooled like [Magnitude].
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))

	re, im, buf := unpack(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)

	return out
}

// PowerInto computes |X[k]|^2 into dst, which must have length len(in).
// This is the zero-allocation path for Welch segment accumulation.
func PowerInto(dst []float64, in []complex128) {
	re, im, buf := unpack(in)
	vecmath.Power(dst, re, im)
	scratchPool.Put(buf)
}
