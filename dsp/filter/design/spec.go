package design

import (
	"fmt"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/biquad"
)

// Kind enumerates the filter shapes this package can design.
type Kind int

const (
	KindNotch Kind = iota
	KindLowpass
	KindHighpass
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNotch:
		return "notch"
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is an explicit filter design request. FrequencyHz is the notch
// center or the cutoff depending on Kind. Q applies to second-order
// designs and is ignored for Order 1. Order may be 1 or 2; zero defaults
// to 2.
type Spec struct {
	Kind         Kind
	FrequencyHz  float64
	SampleRateHz float64
	Q            float64
	Order        int
}

// Design computes coefficients for the spec. Designs that would place the
// critical frequency at or beyond Nyquist fail.
func (s Spec) Design() (biquad.Coefficients, error) {
	if s.SampleRateHz <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("design %s: sample rate must be > 0: %f", s.Kind, s.SampleRateHz)
	}

	if s.FrequencyHz <= 0 || s.FrequencyHz >= s.SampleRateHz/2 {
		return biquad.Coefficients{}, fmt.Errorf("design %s: frequency %f Hz outside (0, %f)", s.Kind, s.FrequencyHz, s.SampleRateHz/2)
	}

	order := s.Order
	if order == 0 {
		order = 2
	}

	switch s.Kind {
	case KindNotch:
		if order != 2 {
			return biquad.Coefficients{}, fmt.Errorf("design notch: order must be 2: %d", order)
		}

		return Notch(s.FrequencyHz, s.Q, s.SampleRateHz), nil
	case KindLowpass:
		if order == 1 {
			return FirstOrderLowpass(s.FrequencyHz, s.SampleRateHz), nil
		}

		return Lowpass(s.FrequencyHz, s.Q, s.SampleRateHz), nil
	case KindHighpass:
		if order == 1 {
			return FirstOrderHighpass(s.FrequencyHz, s.SampleRateHz), nil
		}

		return Highpass(s.FrequencyHz, s.Q, s.SampleRateHz), nil
	default:
		return biquad.Coefficients{}, fmt.Errorf("design: unknown kind %d", int(s.Kind))
	}
}
