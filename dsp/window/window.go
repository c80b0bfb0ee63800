// Package window provides the taper functions used to frame EEG segments
// before spectral estimation, plus the normalization terms Welch averaging
// needs.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// Each family is a cosine series evaluated over the window span. The
// rectangular window is the degenerate single-term series.
var families = map[Type]struct {
	name   string
	series []float64
}{
	TypeRectangular: {"rectangular", []float64{1}},
	TypeHann:        {"hann", []float64{0.5, -0.5}},
	TypeHamming:     {"hamming", []float64{0.54, -0.46}},
	TypeBlackman:    {"blackman", []float64{0.42, -0.5, 0.08}},
}

func (t Type) String() string {
	if f, ok := families[t]; ok {
		return f.name
	}

	return "unknown"
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing instead of
// the symmetric form used for filter design.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// fall back to rectangular.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	series := families[TypeRectangular].series
	if f, ok := families[t]; ok {
		series = f.series
	}

	den := float64(length)
	if !cfg.periodic {
		den = float64(length - 1)
	}

	out := make([]float64, length)

	for i := range out {
		if den == 0 {
			out[i] = 1
			continue
		}

		phase := 2 * math.Pi * float64(i) / den

		v := 0.0
		for k, c := range series {
			v += c * math.Cos(float64(k)*phase)
		}

		out[i] = v
	}

	return out
}

// Apply tapers buf in place with the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, errBadSize(size)
	}

	return Generate(TypeHann, size, opts...), nil
}

// Hamming returns Hamming window coefficients.
func Hamming(size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, errBadSize(size)
	}

	return Generate(TypeHamming, size, opts...), nil
}

// Blackman returns Blackman window coefficients.
func Blackman(size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, errBadSize(size)
	}

	return Generate(TypeBlackman, size, opts...), nil
}

// SumSquares returns the energy of the coefficients. Welch PSD scaling
// divides by this term so the integrated spectrum matches signal power.
func SumSquares(coeffs []float64) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}

	return sum
}

// EquivalentNoiseBandwidth returns the ENBW in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmptyCoefficients
	}

	sum := 0.0
	energy := 0.0

	for _, c := range coeffs {
		sum += c
		energy += c * c
	}

	if sum == 0 {
		return 0, ErrZeroCoherentGain
	}

	return float64(len(coeffs)) * energy / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with precomputed coefficients into a
// fresh slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, ErrLengthMismatch
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with precomputed coefficients
// in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrLengthMismatch
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
