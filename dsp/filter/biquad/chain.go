package biquad

// Chain cascades sections in series: each section's output is the next
// section's input. The zero-phase filter path builds a fresh chain per
// window; the causal path holds one chain for the whole session.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade, one section per coefficient set, in the order
// given.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i, cf := range coeffs {
		c.sections[i].Coefficients = cf
	}

	return c
}

// ProcessSample runs one sample through the full cascade.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, section by section.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes every section's delay registers.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the cascade length.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// State snapshots all delay registers, one [z1, z2] pair per section.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores a snapshot taken with State. The slice length must
// match NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
