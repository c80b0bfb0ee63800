package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/window"
)

// MinSignalLen is the shortest signal Welch will analyze; anything below is
// reported as insufficient data rather than a degraded estimate.
const MinSignalLen = 32

const defaultSegmentLength = 256

// PSDResult is a one-sided power spectral density estimate. PSD and Freqs
// are parallel slices; Freqs is strictly increasing from 0 to Nyquist.
type PSDResult struct {
	PSD   []float64
	Freqs []float64
}

// Resolution returns the bin spacing in Hz.
func (r *PSDResult) Resolution() float64 {
	if len(r.Freqs) < 2 {
		return 0
	}

	return r.Freqs[1] - r.Freqs[0]
}

// WelchOption configures the Welch estimator.
type WelchOption func(*welchConfig)

type welchConfig struct {
	segmentLength int
	windowType    window.Type
}

// WithSegmentLength sets the target sub-segment length. It is capped at the
// signal length and rounded down to a power of two.
func WithSegmentLength(n int) WelchOption {
	return func(cfg *welchConfig) {
		if n > 0 {
			cfg.segmentLength = n
		}
	}
}

// WithWindowType overrides the Hann default.
func WithWindowType(t window.Type) WelchOption {
	return func(cfg *welchConfig) {
		cfg.windowType = t
	}
}

// Welch estimates the one-sided PSD by averaging modified periodograms over
// 50%-overlapping windowed sub-segments. Scaling is 1/(sampleRate * sum(w^2))
// with the usual factor-2 one-sided correction applied to every bin except
// DC and Nyquist. Units: input^2 per Hz.
func Welch(signal []float64, sampleRate float64, opts ...WelchOption) (*PSDResult, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("welch: sample rate must be > 0: %f", sampleRate)
	}

	if len(signal) < MinSignalLen {
		return nil, fmt.Errorf("welch: need at least %d samples, have %d", MinSignalLen, len(signal))
	}

	cfg := welchConfig{
		segmentLength: defaultSegmentLength,
		windowType:    window.TypeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	segLen := cfg.segmentLength
	if segLen > len(signal) {
		segLen = len(signal)
	}

	segLen = PrevPowerOf2(segLen)
	if segLen < 2 {
		return nil, fmt.Errorf("welch: segment length too small: %d", segLen)
	}

	plan, err := algofft.NewPlan64(segLen)
	if err != nil {
		return nil, fmt.Errorf("welch: %w", err)
	}

	coeffs := window.Generate(cfg.windowType, segLen, window.WithPeriodic())
	winEnergy := window.SumSquares(coeffs)

	half := segLen / 2
	psd := make([]float64, half+1)
	segPower := make([]float64, segLen)
	windowed := make([]float64, segLen)
	in := make([]complex128, segLen)
	out := make([]complex128, segLen)

	step := segLen / 2 // 50% overlap

	segments := 0
	for pos := 0; pos+segLen <= len(signal); pos += step {
		copy(windowed, signal[pos:pos+segLen])

		if err := window.ApplyCoefficientsInPlace(windowed, coeffs); err != nil {
			return nil, fmt.Errorf("welch: %w", err)
		}

		for i, v := range windowed {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("welch: %w", err)
		}

		PowerInto(segPower, out)

		for k := 0; k <= half; k++ {
			psd[k] += segPower[k]
		}

		segments++
	}

	if segments == 0 {
		return nil, fmt.Errorf("welch: no complete segments in %d samples", len(signal))
	}

	scale := 1 / (sampleRate * winEnergy * float64(segments))
	for k := range psd {
		psd[k] *= scale
		if k != 0 && k != half {
			psd[k] *= 2 // one-sided correction, DC and Nyquist excluded
		}
	}

	freqs := make([]float64, half+1)
	binHz := sampleRate / float64(segLen)
	for k := range freqs {
		freqs[k] = float64(k) * binHz
	}

	return &PSDResult{PSD: psd, Freqs: freqs}, nil
}
