package buffer

import (
	"sync"
	"time"
)

// Sample is one raw sensor reading. Immutable once ingested.
type Sample struct {
	Value     float64
	Timestamp time.Time
}

// Ring is a fixed-capacity circular buffer of samples. Push overwrites the
// oldest entry on overflow, so the producer never blocks; dropped history is
// acceptable for a real-time display path, and the overwrite count is kept
// for diagnostics.
//
// One producer and one consumer are supported; all methods are safe to call
// from those two goroutines concurrently.
type Ring struct {
	mu          sync.Mutex
	samples     []Sample
	head        int // index of oldest sample
	length      int
	overwritten uint64
}

// NewRing returns an empty ring with the given capacity.
// Capacity values below 1 are treated as 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring{samples: make([]Sample, capacity)}
}

// Push appends a sample, overwriting the oldest entry when full. O(1).
func (r *Ring) Push(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tail := (r.head + r.length) % len(r.samples)
	r.samples[tail] = s

	if r.length < len(r.samples) {
		r.length++
		return
	}

	// Full: the slot we just wrote was the oldest sample.
	r.head = (r.head + 1) % len(r.samples)
	r.overwritten++
}

// DrainAvailable removes and returns up to maxBatch samples in arrival
// order. It returns nil without mutating the ring when fewer than minBatch
// samples are buffered; that starvation signal is an expected condition for
// the caller to skip a cycle on, not an error.
func (r *Ring) DrainAvailable(minBatch, maxBatch int) []Sample {
	if minBatch < 1 {
		minBatch = 1
	}

	if maxBatch < minBatch {
		maxBatch = minBatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.length < minBatch {
		return nil
	}

	n := r.length
	if n > maxBatch {
		n = maxBatch
	}

	out := make([]Sample, n)
	for i := range out {
		out[i] = r.samples[(r.head+i)%len(r.samples)]
	}

	r.head = (r.head + n) % len(r.samples)
	r.length -= n

	return out
}

// Len returns the current number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.length
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.samples)
}

// Utilization returns the fill level as a fraction in [0, 1].
func (r *Ring) Utilization() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return float64(r.length) / float64(len(r.samples))
}

// Overwritten returns how many samples have been lost to overflow.
func (r *Ring) Overwritten() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.overwritten
}

// Reset empties the ring and clears the overwrite counter.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head = 0
	r.length = 0
	r.overwritten = 0
}
