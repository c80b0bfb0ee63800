package spectrum

import (
	"math"
	"testing"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	return out
}

func TestWelchPeakAtToneFrequency(t *testing.T) {
	const sr = 512.0

	signal := sine(6, sr, 1024)

	psd, err := Welch(signal, sr)
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}

	if len(psd.PSD) != len(psd.Freqs) {
		t.Fatalf("parallel slices differ in length")
	}

	peakBin := 0
	for i, v := range psd.PSD {
		if v > psd.PSD[peakBin] {
			peakBin = i
		}
	}

	if math.Abs(psd.Freqs[peakBin]-6) > psd.Resolution() {
		t.Fatalf("peak at %f Hz want ~6 Hz", psd.Freqs[peakBin])
	}
}

func TestWelchFreqAxis(t *testing.T) {
	const sr = 512.0

	psd, err := Welch(sine(10, sr, 512), sr, WithSegmentLength(256))
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}

	if psd.Freqs[0] != 0 {
		t.Fatalf("first bin must be DC: %f", psd.Freqs[0])
	}

	last := psd.Freqs[len(psd.Freqs)-1]
	if math.Abs(last-sr/2) > 1e-9 {
		t.Fatalf("last bin must be Nyquist: %f", last)
	}

	for i := 1; i < len(psd.Freqs); i++ {
		if psd.Freqs[i] <= psd.Freqs[i-1] {
			t.Fatalf("freqs not strictly increasing at %d", i)
		}
	}

	if math.Abs(psd.Resolution()-2) > 1e-12 {
		t.Fatalf("resolution=%f want=2 Hz", psd.Resolution())
	}
}

func TestWelchParsevalSine(t *testing.T) {
	const sr = 512.0

	// A unit sine has power 0.5; integrating the PSD over all frequencies
	// must recover it approximately.
	signal := sine(20, sr, 2048)

	psd, err := Welch(signal, sr, WithSegmentLength(512))
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}

	total := 0.0
	h := psd.Resolution()
	for _, v := range psd.PSD {
		total += v * h
	}

	if math.Abs(total-0.5) > 0.05 {
		t.Fatalf("integrated PSD=%f want~0.5", total)
	}
}

func TestWelchNonNegative(t *testing.T) {
	signal := make([]float64, 1024)
	seed := uint64(12345)
	for i := range signal {
		// Cheap deterministic pseudo-noise.
		seed = seed*6364136223846793005 + 1442695040888963407
		signal[i] = float64(int64(seed>>11))/float64(1<<52) - 1
	}

	psd, err := Welch(signal, 512)
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}

	for i, v := range psd.PSD {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("invalid PSD bin %d: %f", i, v)
		}
	}
}

func TestWelchTooShort(t *testing.T) {
	if _, err := Welch(make([]float64, MinSignalLen-1), 512); err == nil {
		t.Fatalf("expected error for short signal")
	}

	if _, err := Welch(nil, 512); err == nil {
		t.Fatalf("expected error for empty signal")
	}

	if _, err := Welch(make([]float64, 512), 0); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestWelchSegmentCappedAtSignalLength(t *testing.T) {
	const sr = 512.0

	// Signal shorter than the requested segment: the estimator caps and
	// rounds down to a power of two instead of failing.
	signal := sine(8, sr, 100)

	psd, err := Welch(signal, sr, WithSegmentLength(256))
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}

	// 100 -> 64-point segments -> 33 one-sided bins.
	if len(psd.PSD) != 33 {
		t.Fatalf("bin count=%d want=33", len(psd.PSD))
	}
}

func TestFFTValidation(t *testing.T) {
	if _, err := FFT(nil, 8); err == nil {
		t.Fatalf("expected error for empty input")
	}

	if _, err := FFT(make([]float64, 16), 8); err == nil {
		t.Fatalf("expected error for fftSize < len")
	}

	if _, err := FFT(make([]float64, 8), 12); err == nil {
		t.Fatalf("expected error for non power of two")
	}

	bins, err := FFT([]float64{1, 0, 0, 0}, 8)
	if err != nil {
		t.Fatalf("FFT: %v", err)
	}

	// Impulse: flat unit spectrum.
	for i, b := range bins {
		if math.Abs(real(b)-1) > 1e-12 || math.Abs(imag(b)) > 1e-12 {
			t.Fatalf("impulse spectrum bin %d = %v want 1", i, b)
		}
	}
}

func TestPowerOf2Helpers(t *testing.T) {
	if NextPowerOf2(100) != 128 || NextPowerOf2(128) != 128 || NextPowerOf2(1) != 1 {
		t.Fatalf("NextPowerOf2 wrong")
	}

	if PrevPowerOf2(100) != 64 || PrevPowerOf2(128) != 128 || PrevPowerOf2(0) != 0 {
		t.Fatalf("PrevPowerOf2 wrong")
	}
}
