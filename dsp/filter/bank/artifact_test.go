package bank

import (
	"math"
	"testing"
)

func TestRemoveArtifactsReplacesSpike(t *testing.T) {
	batch := make([]float64, 101)
	for i := range batch {
		batch[i] = math.Sin(2 * math.Pi * 6 * float64(i) / 512)
	}

	batch[50] = 1000 // obvious spike

	RemoveArtifacts(batch)

	if math.Abs(batch[50]) > 2 {
		t.Fatalf("spike not replaced: %f", batch[50])
	}

	// Clean neighbors stay untouched.
	want := math.Sin(2 * math.Pi * 6 * 49 / 512)
	if batch[49] != want {
		t.Fatalf("clean sample modified: %f want %f", batch[49], want)
	}
}

func TestRemoveArtifactsConstantBatch(t *testing.T) {
	batch := []float64{65, 65, 65, 65}
	RemoveArtifacts(batch)

	for _, v := range batch {
		if v != 65 {
			t.Fatalf("constant batch modified: %v", batch)
		}
	}
}

func TestRemoveArtifactsCleanSignalUntouched(t *testing.T) {
	batch := make([]float64, 64)
	for i := range batch {
		batch[i] = math.Sin(0.2 * float64(i))
	}

	saved := append([]float64(nil), batch...)
	RemoveArtifacts(batch)

	for i := range batch {
		if batch[i] != saved[i] {
			t.Fatalf("clean signal modified at %d", i)
		}
	}
}

func TestRemoveArtifactsAdjacentSpikes(t *testing.T) {
	batch := make([]float64, 64)
	for i := range batch {
		batch[i] = math.Sin(0.3 * float64(i))
	}

	// A burst of adjacent outliers; replacements must come from the
	// original clean values, not from already-replaced neighbors.
	for i := 30; i < 34; i++ {
		batch[i] = 500
	}

	RemoveArtifacts(batch)

	for i := 30; i < 34; i++ {
		if math.Abs(batch[i]) > 2 {
			t.Fatalf("burst outlier %d not replaced: %f", i, batch[i])
		}
	}
}

func TestRemoveArtifactsEmpty(t *testing.T) {
	RemoveArtifacts(nil) // must not panic
}
