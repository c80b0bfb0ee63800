package spectrum

import "math"

// FreqRange is a half-open frequency interval in Hz used for SNR reference
// bands.
type FreqRange struct {
	LoHz float64
	HiHz float64
}

// PeakSNR returns the ratio of the maximum PSD value inside the signal band
// to the mean PSD over the noise ranges. It returns NaN when the signal band
// or every noise range is empty, and +Inf when the mean noise is exactly
// zero.
func PeakSNR(psd *PSDResult, signalLoHz, signalHiHz float64, noise ...FreqRange) float64 {
	if psd == nil || len(psd.PSD) == 0 {
		return math.NaN()
	}

	lo, hi := binRange(psd.Freqs, signalLoHz, signalHiHz)
	if lo > hi {
		return math.NaN()
	}

	peak := psd.PSD[lo]
	for _, v := range psd.PSD[lo : hi+1] {
		if v > peak {
			peak = v
		}
	}

	sum := 0.0
	count := 0

	for _, r := range noise {
		nlo, nhi := binRange(psd.Freqs, r.LoHz, r.HiHz)
		for i := nlo; i <= nhi && i >= 0; i++ {
			sum += psd.PSD[i]
			count++
		}
	}

	if count == 0 {
		return math.NaN()
	}

	mean := sum / float64(count)
	if mean == 0 {
		return math.Inf(1)
	}

	return peak / mean
}

// BroadbandSNR returns bandPower / (totalBroadband - bandPower), the power
// of one band against everything else. Returns +Inf when the band holds all
// the power.
func BroadbandSNR(bandPower, totalBroadband float64) float64 {
	rest := totalBroadband - bandPower
	if rest == 0 {
		return math.Inf(1)
	}

	return bandPower / rest
}
