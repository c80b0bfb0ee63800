// Package core holds numeric helpers and the shared processor
// configuration used across the DSP packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to [lo, hi]. Swapped bounds are tolerated.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(value, lo), hi)
}

// NearlyEqual reports whether a and b agree within eps, absolutely for
// small magnitudes and relatively for large ones. A non-positive eps uses
// the package default.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return false
	}

	return diff/scale <= eps
}

// AllFinite reports whether values contains no NaN or Inf. The filter
// chain uses it to decide whether a batch must be rolled back.
func AllFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// FlushDenormals snaps values below the denormal threshold to zero.
// IIR delay registers decay toward denormal range on silent input and
// denormal arithmetic is slow on most CPUs.
func FlushDenormals(x float64) float64 {
	const threshold = 1e-30

	if x > -threshold && x < threshold {
		return 0
	}

	return x
}

// DBPowerToLinear converts a power quantity from dB (10*log10).
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearPowerToDB converts a power quantity to dB (10*log10).
// Zero maps to -Inf and negative power to NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	default:
		return 10 * math.Log10(power)
	}
}
