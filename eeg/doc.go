// Package eeg derives band powers and theta-activity metrics from
// single-channel EEG analysis windows.
//
// The five canonical bands (delta through gamma) are integrated from a
// Welch PSD estimate; theta activity is reported as an SNR-gated share of
// total signal power with exponential smoothing across analysis cycles.
package eeg
