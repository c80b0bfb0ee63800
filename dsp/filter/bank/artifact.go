package bank

import (
	"math"

	timestats "github.com/Prem-Aravindan/brainlink-dsp/stats/time"
)

const (
	outlierSigma   = 3.0
	artifactWindow = 10 // samples to each side of an outlier
)

// RemoveArtifacts replaces outlier samples in-place. A sample is an outlier
// when |x| exceeds mean + 3*std of the whole batch; it is replaced by the
// median of non-outlier values within ±10 samples, or by the global batch
// median when the local window holds no clean samples.
//
// The whole batch is inspected before any replacement, so this stage is
// blocking within a batch: batch size trades latency against rejection
// quality.
func RemoveArtifacts(batch []float64) {
	if len(batch) == 0 {
		return
	}

	s := timestats.Calculate(batch)
	if s.StdDev == 0 {
		return
	}

	threshold := s.Mean + outlierSigma*s.StdDev

	outlier := make([]bool, len(batch))

	any := false
	for i, x := range batch {
		if math.Abs(x) > threshold {
			outlier[i] = true
			any = true
		}
	}

	if !any {
		return
	}

	globalMedian := timestats.Median(batch)

	// Replacements reference the original values, not earlier replacements.
	original := append([]float64(nil), batch...)

	window := make([]float64, 0, 2*artifactWindow+1)

	for i := range batch {
		if !outlier[i] {
			continue
		}

		window = window[:0]

		lo := i - artifactWindow
		if lo < 0 {
			lo = 0
		}

		hi := i + artifactWindow
		if hi >= len(batch) {
			hi = len(batch) - 1
		}

		for j := lo; j <= hi; j++ {
			if !outlier[j] {
				window = append(window, original[j])
			}
		}

		if len(window) == 0 {
			batch[i] = globalMedian
			continue
		}

		batch[i] = timestats.Median(window)
	}
}
