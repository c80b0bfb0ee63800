package buffer

import "sync"

// Pool provides sync.Pool-based reuse of batch value slices to reduce GC
// pressure in the per-cycle processing loop.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				s := make([]float64, 0)
				return &s
			},
		},
	}
}

// GetBatch returns a zeroed slice with the requested length.
// Callers must return it via PutBatch when done.
func (p *Pool) GetBatch(length int) []float64 {
	sp := p.pool.Get().(*[]float64)
	s := *sp

	if cap(s) < length {
		s = make([]float64, length)
	} else {
		s = s[:length]
		for i := range s {
			s[i] = 0
		}
	}

	*sp = s

	return s
}

// PutBatch returns a slice obtained from GetBatch to the pool.
// The caller must not use the slice after calling PutBatch.
func (p *Pool) PutBatch(s []float64) {
	if s == nil {
		return
	}

	p.pool.Put(&s)
}
