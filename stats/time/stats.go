// Package time computes time-domain signal statistics in a single pass.
package time

import (
	"math"
	"sort"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Range         float64 // max - min
	Energy        float64 // sum of squares
	Power         float64 // energy / length
	Variance      float64 // population variance
	StdDev        float64
	ZeroCrossings int
}

// Calculate computes all time-domain statistics in a single pass using
// Welford's online algorithm for a numerically stable variance.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
	)

	// Running aggregates.
	var (
		sumSq         float64
		maxVal        = signal[0]
		maxPos        int
		minVal        = signal[0]
		minPos        int
		zeroCrossings int
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	variance := m2 / nf

	return Stats{
		Length:        n,
		Mean:          mean,
		RMS:           math.Sqrt(sumSq / nf),
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Range:         maxVal - minVal,
		Energy:        sumSq,
		Power:         sumSq / nf,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		ZeroCrossings: zeroCrossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Median returns the median of the signal. The input is not modified.
func Median(signal []float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	sorted := append([]float64(nil), signal...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// IsDegenerate reports whether the signal carries no usable information:
// empty, constant (zero range) or with a standard deviation below eps.
// Disconnected or dummy sensors produce exactly this shape of input.
func IsDegenerate(signal []float64, eps float64) bool {
	if len(signal) == 0 {
		return true
	}

	if eps <= 0 {
		eps = 1e-10
	}

	s := Calculate(signal)

	return s.Range == 0 || s.StdDev < eps
}
