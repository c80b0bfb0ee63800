package bank

import "github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/biquad"

// zeroPhasePad is the reflected-edge padding per pass, enough to settle the
// second-order sections before real samples arrive.
const zeroPhasePad = 12

// ZeroPhase runs the notch and bandpass forward then backward over a
// complete window, cancelling phase distortion. It is the offline
// counterpart of Process for spectral recomputation: it trades the ability
// to run in real time for a zero-phase response.
//
// Artifact removal is not applied here; callers hand in the window they
// want analyzed. The causal chain's delay lines are never touched - each
// call filters with fresh state, and the input slice is left unmodified.
func (b *Bank) ZeroPhase(window []float64) []float64 {
	out := append([]float64(nil), window...)
	if len(out) < minBatchLen {
		return out
	}

	chain := biquad.NewChain(b.notch.Coefficients, b.hp.Coefficients, b.lp.Coefficients)

	pad := zeroPhasePad
	if pad > len(out)-1 {
		pad = len(out) - 1
	}

	// Odd reflection around the endpoints suppresses edge transients.
	ext := make([]float64, 0, len(out)+2*pad)
	for i := pad; i >= 1; i-- {
		ext = append(ext, 2*out[0]-out[i])
	}

	ext = append(ext, out...)

	last := len(out) - 1
	for i := 1; i <= pad; i++ {
		ext = append(ext, 2*out[last]-out[last-i])
	}

	chain.ProcessBlock(ext)
	reverse(ext)

	chain.Reset()
	chain.ProcessBlock(ext)
	reverse(ext)

	copy(out, ext[pad:pad+len(out)])

	return out
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
