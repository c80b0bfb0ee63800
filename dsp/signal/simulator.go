package signal

import (
	"math"
	"math/rand"
)

// Simulator produces an EEG-like sample stream one value at a time: a
// dominant theta rhythm, weaker alpha and beta components, slow baseline
// drift and Gaussian noise. It is deliberately non-clinical; it exists to
// exercise the pipeline with a signal whose band structure is known.
type Simulator struct {
	sampleRate float64
	phase      float64
	rng        *rand.Rand

	ThetaHz  float64
	ThetaAmp float64
	AlphaHz  float64
	AlphaAmp float64
	BetaHz   float64
	BetaAmp  float64
	NoiseStd float64
}

// NewSimulator returns a theta-dominant simulator at the given rate.
func NewSimulator(sampleRate float64, seed int64) *Simulator {
	if sampleRate <= 0 {
		sampleRate = 512
	}

	return &Simulator{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(seed)),
		ThetaHz:    6,
		ThetaAmp:   100,
		AlphaHz:    10,
		AlphaAmp:   20,
		BetaHz:     20,
		BetaAmp:    10,
		NoiseStd:   5,
	}
}

// Next returns the next sample and advances time.
func (s *Simulator) Next() float64 {
	t := s.phase
	s.phase += 1 / s.sampleRate

	baseline := 8 * math.Sin(2*math.Pi*0.2*t)

	v := s.ThetaAmp*math.Sin(2*math.Pi*s.ThetaHz*t) +
		s.AlphaAmp*math.Sin(2*math.Pi*s.AlphaHz*t) +
		s.BetaAmp*math.Sin(2*math.Pi*s.BetaHz*t) +
		baseline

	if s.NoiseStd > 0 {
		v += s.rng.NormFloat64() * s.NoiseStd
	}

	return v
}

// Fill writes n samples into a new slice.
func (s *Simulator) Fill(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}

	return out
}
