package stream

import (
	"math"
	"sync"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/core"
)

// Pacer converts bursty filtered batches into a steady per-tick sample flow
// at the display rate. It keeps a fractional accumulator of samples owed per
// tick (input rate / display rate) and emits the integer part each tick, so
// the display and sensor clocks never drift apart cumulatively.
//
// The queue is capped at a time-equivalent backlog; overflow drops the
// oldest samples and counts them. Lossy: bounded display latency beats
// completeness here.
type Pacer struct {
	mu sync.Mutex

	displayRateHz float64
	inputRateHz   float64
	capSeconds    float64

	queue   []float64
	acc     float64
	dropped uint64
	emitted uint64
}

// NewPacer returns a Pacer with the given backlog cap (seconds of samples
// at the input rate) and display tick rate.
func NewPacer(capSeconds, displayRateHz float64) *Pacer {
	if capSeconds <= 0 {
		capSeconds = 3
	}

	if displayRateHz <= 0 {
		displayRateHz = 60
	}

	return &Pacer{
		displayRateHz: displayRateHz,
		inputRateHz:   512,
		capSeconds:    capSeconds,
	}
}

// SetInputRate updates the measured input sample rate. The sensor's true
// rate drifts (512-625 Hz observed), so callers feed the measured value
// rather than a nominal constant.
func (p *Pacer) SetInputRate(hz float64) {
	if hz <= 0 {
		return
	}

	p.mu.Lock()
	p.inputRateHz = hz
	p.mu.Unlock()
}

// InputRate returns the rate currently used for pacing.
func (p *Pacer) InputRate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.inputRateHz
}

// Offer appends samples to the pending queue, dropping the oldest entries
// when the time-equivalent cap is exceeded.
func (p *Pacer) Offer(samples []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = append(p.queue, samples...)

	limit := int(p.capSeconds * p.inputRateHz)
	if limit < 1 {
		limit = 1
	}

	if over := len(p.queue) - limit; over > 0 {
		p.queue = p.queue[over:]
		p.dropped += uint64(over)
	}
}

// Tick emits the samples owed for one display tick. It returns nil when the
// queue cannot cover the owed amount yet; the debt stays in the accumulator
// (bounded at one second) and is repaid on later ticks.
func (p *Pacer) Tick() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Bound the debt a stalled producer can accumulate at one second.
	p.acc = core.Clamp(p.acc+p.inputRateHz/p.displayRateHz, 0, p.inputRateHz)

	n := int(math.Floor(p.acc))
	if n <= 0 {
		return nil
	}

	if n > len(p.queue) {
		n = len(p.queue)
	}

	if n == 0 {
		return nil
	}

	out := make([]float64, n)
	copy(out, p.queue[:n])
	p.queue = p.queue[n:]

	p.acc -= float64(n)
	p.emitted += uint64(n)

	return out
}

// Pending returns the queued sample count.
func (p *Pacer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

// Dropped returns how many samples overflow has discarded.
func (p *Pacer) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dropped
}

// Emitted returns how many samples Tick has released in total.
func (p *Pacer) Emitted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.emitted
}

// Reset drops the queue, accumulator and counters.
func (p *Pacer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = nil
	p.acc = 0
	p.dropped = 0
	p.emitted = 0
}
