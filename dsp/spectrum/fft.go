package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// FFT computes a forward complex FFT of the real-valued segment, zero-padded
// to fftSize. fftSize must be a power of two (radix-2 plans).
func FFT(segment []float64, fftSize int) ([]complex128, error) {
	if len(segment) == 0 {
		return nil, fmt.Errorf("fft: empty segment")
	}

	if fftSize < len(segment) {
		return nil, fmt.Errorf("fft: size %d smaller than segment %d", fftSize, len(segment))
	}

	if fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft: size must be a power of two: %d", fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fft: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range segment {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft: %w", err)
	}

	return out, nil
}

// NextPowerOf2 returns the smallest power of two >= n (minimum 1).
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// PrevPowerOf2 returns the largest power of two <= n (0 for n < 1).
func PrevPowerOf2(n int) int {
	if n < 1 {
		return 0
	}

	p := 1
	for p*2 <= n {
		p <<= 1
	}

	return p
}
