// Package bank implements the EEG preprocessing chain: within-batch
// artifact rejection followed by a mains notch and a two-section bandpass.
//
// The causal path (Process) keeps persistent filter state for the real-time
// display stream. The zero-phase path (ZeroPhase) filters complete windows
// forward-backward for spectral analysis and shares coefficients, never
// state, with the causal path.
package bank
