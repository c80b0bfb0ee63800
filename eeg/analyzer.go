package eeg

import (
	"errors"
	"fmt"
	"math"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/spectrum"
	timestats "github.com/Prem-Aravindan/brainlink-dsp/stats/time"
)

// Sentinel errors for the taxonomy of skipped analysis cycles. None of them
// is fatal: the caller keeps its previous metrics and tries again next cycle.
var (
	ErrInsufficientData = errors.New("analysis window too short")
	ErrDegenerateSignal = errors.New("signal has no variance")
	ErrNumeric          = errors.New("band power is not finite")
)

// Theta SNR reference geometry: peak inside [3,9] Hz against the mean of
// the flanking [2,3] and [9,10] Hz bands.
const (
	thetaSignalLoHz = 3
	thetaSignalHiHz = 9
)

var thetaNoiseBands = []spectrum.FreqRange{
	{LoHz: 2, HiHz: 3},
	{LoHz: 9, HiHz: 10},
}

// Config holds analyzer parameters. Zero values take defaults.
type Config struct {
	SampleRate     float64
	SmoothingAlpha float64 // EMA weight for smoothed theta, default 0.3
	SNRGate        float64 // minimum peak SNR for a trusted reading, default 0.2
	MinSamples     int     // shortest window accepted, default 128
	SegmentLength  int     // Welch sub-segment target, default 256
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 512
	}

	if cfg.SmoothingAlpha <= 0 || cfg.SmoothingAlpha > 1 {
		cfg.SmoothingAlpha = 0.3
	}

	if cfg.SNRGate <= 0 {
		cfg.SNRGate = 0.2
	}

	if cfg.MinSamples <= 0 {
		cfg.MinSamples = 128
	}

	if cfg.MinSamples < spectrum.MinSignalLen {
		cfg.MinSamples = spectrum.MinSignalLen
	}

	if cfg.SegmentLength <= 0 {
		cfg.SegmentLength = 256
	}

	return cfg
}

// Metrics is one spectral analysis result.
type Metrics struct {
	TotalPower           float64 // population variance of the window
	Bands                BandPowers
	NormalizedBands      BandPowers // percent of band sum
	ThetaContributionPct float64    // SNR-gated share of total power
	ThetaPeakSNR         float64
	ThetaBroadbandSNR    float64
	SmoothedThetaPct     float64 // EMA over ThetaContributionPct
}

// Analyzer computes band powers and theta metrics over analysis windows.
// Its only cross-call state is the exponential smoothing accumulator, which
// must live as long as the session; errors leave it untouched.
type Analyzer struct {
	cfg Config

	smoothed    float64
	initialized bool
}

// NewAnalyzer returns an Analyzer with normalized configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: normalizeConfig(cfg)}
}

// Config returns the resolved configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze computes metrics over one window of (already filtered) samples.
//
// Short windows return ErrInsufficientData and constant/zero-variance
// windows return ErrDegenerateSignal, so callers can distinguish "no
// signal" from "signal with low activity". A non-finite band power returns
// ErrNumeric. In every error case the smoothing state is left unchanged and
// the zero Metrics value is returned.
func (a *Analyzer) Analyze(win []float64) (Metrics, error) {
	if len(win) < a.cfg.MinSamples {
		return Metrics{}, fmt.Errorf("%w: need %d have %d", ErrInsufficientData, a.cfg.MinSamples, len(win))
	}

	if timestats.IsDegenerate(win, 0) {
		return Metrics{}, ErrDegenerateSignal
	}

	psd, err := spectrum.Welch(win, a.cfg.SampleRate, spectrum.WithSegmentLength(a.cfg.SegmentLength))
	if err != nil {
		return Metrics{}, fmt.Errorf("analyze: %w", err)
	}

	bands := BandPowers{
		Delta: spectrum.BandPower(psd, Delta.LoHz, Delta.HiHz),
		Theta: spectrum.BandPower(psd, Theta.LoHz, Theta.HiHz),
		Alpha: spectrum.BandPower(psd, Alpha.LoHz, Alpha.HiHz),
		Beta:  spectrum.BandPower(psd, Beta.LoHz, Beta.HiHz),
		Gamma: spectrum.BandPower(psd, Gamma.LoHz, Gamma.HiHz),
	}

	for _, p := range []float64{bands.Delta, bands.Theta, bands.Alpha, bands.Beta, bands.Gamma} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Metrics{}, ErrNumeric
		}
	}

	totalPower := timestats.Calculate(win).Variance
	peakSNR := spectrum.PeakSNR(psd, thetaSignalLoHz, thetaSignalHiHz, thetaNoiseBands...)

	contribution := 0.0
	if totalPower > 0 {
		contribution = bands.Theta / totalPower * 100
	}

	// Low-confidence readings are suppressed entirely rather than reported
	// as noisy numbers; confident ones are weighted by a saturating factor.
	if !math.IsInf(peakSNR, 0) && !math.IsNaN(peakSNR) && peakSNR >= a.cfg.SNRGate {
		contribution *= peakSNR / (peakSNR + 1)
	} else {
		contribution = 0
	}

	if a.initialized {
		a.smoothed = a.cfg.SmoothingAlpha*contribution + (1-a.cfg.SmoothingAlpha)*a.smoothed
	} else {
		a.smoothed = contribution
		a.initialized = true
	}

	return Metrics{
		TotalPower:           totalPower,
		Bands:                bands,
		NormalizedBands:      bands.Normalized(),
		ThetaContributionPct: contribution,
		ThetaPeakSNR:         peakSNR,
		ThetaBroadbandSNR:    spectrum.BroadbandSNR(bands.Theta, bands.Sum()),
		SmoothedThetaPct:     a.smoothed,
	}, nil
}

// Reset clears the smoothing state, as on disconnect.
func (a *Analyzer) Reset() {
	a.smoothed = 0
	a.initialized = false
}
