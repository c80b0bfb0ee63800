// Package biquad implements second-order IIR sections and cascades in
// Direct Form II Transposed, the building blocks of the EEG preprocessing
// chain. Delay-line state is explicit and restorable so callers can keep a
// stream causally continuous across batches and roll a batch back after a
// numeric failure.
package biquad

import "github.com/Prem-Aravindan/brainlink-dsp/dsp/core"

// Coefficients is the transfer function of one second-order section with
// a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity returns pass-through coefficients (y = x).
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Section is one stateful biquad. The two-register transposed form keeps
// the recurrence short:
//
//	y  = B0*x + z1
//	z1 = B1*x - A1*y + z2
//	z2 = B2*x - A2*y
//
// The registers persist across ProcessBlock calls; only Reset clears them.
type Section struct {
	Coefficients

	z1, z2 float64
}

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.z1
	s.z1 = s.B1*x - s.A1*y + s.z2
	s.z2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place without allocating.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	z1, z2 := s.z1, s.z2

	for i, x := range buf {
		y := b0*x + z1
		z1 = b1*x - a1*y + z2
		z2 = b2*x - a2*y
		buf[i] = y
	}

	// Silent input decays the registers into denormal range; flushing at
	// block boundaries keeps the hot loop out of slow-path arithmetic.
	s.z1 = core.FlushDenormals(z1)
	s.z2 = core.FlushDenormals(z2)
}

// Reset zeroes the delay registers.
func (s *Section) Reset() {
	s.z1 = 0
	s.z2 = 0
}

// State snapshots the delay registers [z1, z2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.z1, s.z2}
}

// SetState restores a snapshot taken with State.
func (s *Section) SetState(state [2]float64) {
	s.z1 = state[0]
	s.z2 = state[1]
}
