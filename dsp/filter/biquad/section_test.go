package biquad

import (
	"math"
	"testing"
)

func TestIdentityPassThrough(t *testing.T) {
	s := NewSection(Identity())

	in := []float64{1, -0.5, 0.25, 0, 3}
	for _, x := range in {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("identity section: got=%f want=%f", y, x)
		}
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.15}
	a := NewSection(c)
	b := NewSection(c)

	in := make([]float64, 257)
	for i := range in {
		in[i] = math.Sin(0.1 * float64(i))
	}

	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = a.ProcessSample(x)
	}

	got := append([]float64(nil), in...)
	b.ProcessBlock(got)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("block/sample mismatch at %d: %g vs %g", i, got[i], want[i])
		}
	}

	if a.State() != b.State() {
		t.Fatalf("state mismatch after block processing")
	}
}

func TestStatePersistsAcrossBlocks(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.5, A1: -0.2}
	whole := NewSection(c)
	split := NewSection(c)

	in := make([]float64, 100)
	for i := range in {
		in[i] = float64(i%7) - 3
	}

	want := append([]float64(nil), in...)
	whole.ProcessBlock(want)

	got := append([]float64(nil), in...)
	split.ProcessBlock(got[:37])
	split.ProcessBlock(got[37:])

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("split block mismatch at %d", i)
		}
	}
}

func TestResetRestoresFreshBehavior(t *testing.T) {
	c := Coefficients{B0: 0.9, B1: -0.3, B2: 0.2, A1: 0.1, A2: -0.05}
	s := NewSection(c)

	firstOutput := s.ProcessSample(1)

	// Drive the filter into a non-trivial state.
	for i := 0; i < 50; i++ {
		s.ProcessSample(float64(i))
	}

	if s.State() == ([2]float64{}) {
		t.Fatalf("expected non-zero state before reset")
	}

	s.Reset()

	if s.State() != ([2]float64{}) {
		t.Fatalf("state not zeroed by Reset: %v", s.State())
	}

	if got := s.ProcessSample(1); got != firstOutput {
		t.Fatalf("post-reset output %f differs from fresh output %f", got, firstOutput)
	}
}

func TestStateSaveRestore(t *testing.T) {
	c := Coefficients{B0: 1, B1: 0.5, A1: -0.3}
	s := NewSection(c)

	s.ProcessSample(1)
	s.ProcessSample(-1)

	saved := s.State()
	next := s.ProcessSample(0.5)

	s.SetState(saved)

	if got := s.ProcessSample(0.5); got != next {
		t.Fatalf("restored state produced %f want %f", got, next)
	}
}

func TestChainCascadeOrder(t *testing.T) {
	c1 := Coefficients{B0: 2}
	c2 := Coefficients{B0: 0.25}

	ch := NewChain(c1, c2)
	if ch.NumSections() != 2 {
		t.Fatalf("NumSections=%d want=2", ch.NumSections())
	}

	if y := ch.ProcessSample(4); y != 2 {
		t.Fatalf("cascade output=%f want=2", y)
	}
}

func TestChainStateRoundTrip(t *testing.T) {
	c := Coefficients{B0: 0.7, B1: 0.2, A1: -0.1}
	ch := NewChain(c, c)

	buf := []float64{1, 2, 3, 4}
	ch.ProcessBlock(buf)

	saved := ch.State()
	ref := ch.ProcessSample(1)

	ch.SetState(saved)

	if got := ch.ProcessSample(1); got != ref {
		t.Fatalf("chain state restore mismatch: %f vs %f", got, ref)
	}

	ch.Reset()
	for _, st := range ch.State() {
		if st != ([2]float64{}) {
			t.Fatalf("chain Reset left state %v", st)
		}
	}
}
