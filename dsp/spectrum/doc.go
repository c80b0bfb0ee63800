// Package spectrum estimates power spectral densities and derives band
// powers and signal-to-noise ratios from them.
//
// The estimator is Welch's method: Hann-windowed 50%-overlapping
// sub-segments, radix-2 FFTs, averaged one-sided periodograms. Band powers
// integrate the PSD with composite Simpson's rule over the in-band bins.
package spectrum
