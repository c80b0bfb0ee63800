package spectrum

// BandPower integrates the PSD over [loHz, hiHz] using composite Simpson's
// rule on the in-band bins, with a trapezoidal correction for a leftover
// interval. A band covering a single bin contributes power x 1 Hz. The
// result is non-negative for any non-negative PSD.
func BandPower(psd *PSDResult, loHz, hiHz float64) float64 {
	if psd == nil || len(psd.PSD) == 0 || hiHz <= loHz {
		return 0
	}

	lo, hi := binRange(psd.Freqs, loHz, hiHz)
	if lo > hi {
		return 0
	}

	y := psd.PSD[lo : hi+1]
	if len(y) == 1 {
		return y[0] // power x 1 Hz
	}

	h := psd.Resolution()

	total := 0.0

	// Composite Simpson over pairs of intervals.
	i := 0
	for ; i+2 < len(y); i += 2 {
		total += h / 3 * (y[i] + 4*y[i+1] + y[i+2])
	}

	// Odd interval left over: trapezoid.
	if i+1 < len(y) {
		total += h / 2 * (y[i] + y[i+1])
	}

	return total
}

// binRange returns the inclusive index range of bins whose frequency lies
// inside [loHz, hiHz]. freqs must be sorted ascending. Returns lo > hi when
// the band contains no bins.
func binRange(freqs []float64, loHz, hiHz float64) (int, int) {
	lo := 0
	for lo < len(freqs) && freqs[lo] < loHz {
		lo++
	}

	hi := len(freqs) - 1
	for hi >= 0 && freqs[hi] > hiHz {
		hi--
	}

	return lo, hi
}
