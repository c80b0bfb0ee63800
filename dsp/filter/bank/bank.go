package bank

import (
	"errors"
	"fmt"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/core"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/biquad"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/design"
)

// ErrNumeric reports a NaN or Infinity escaping a filter stage. The batch
// and filter state are rolled back, so a skipped cycle is the only effect.
var ErrNumeric = errors.New("filter output is not finite")

// minBatchLen is the filter order: batches shorter than this pass through
// unfiltered rather than priming the delay lines with a fragment.
const minBatchLen = 3

// Config holds the preprocessing chain parameters.
type Config struct {
	SampleRate   float64
	NotchHz      float64 // mains frequency, 50 or 60
	NotchQ       float64
	LowCutoffHz  float64 // bandpass low edge (highpass cutoff)
	HighCutoffHz float64 // bandpass high edge (lowpass cutoff)
}

// DefaultConfig returns the EEG preprocessing defaults: 512 Hz input,
// 50 Hz mains notch, 1-45 Hz analysis band.
func DefaultConfig() Config {
	return Config{
		SampleRate:   512,
		NotchHz:      50,
		NotchQ:       30,
		LowCutoffHz:  1,
		HighCutoffHz: 45,
	}
}

// Bank is the causal EEG preprocessing chain: artifact rejection, mains
// notch, then a bandpass built as two cascaded first-order sections
// (highpass at the low cutoff, lowpass at the high cutoff). The cascade is
// deliberately not a higher-order Butterworth bandpass: downstream metrics
// depend on the gentle two-section rolloff.
//
// Section state persists across batches so the filtered stream stays
// continuous; Reset is the only way to clear it.
type Bank struct {
	cfg Config

	notch *biquad.Section
	hp    *biquad.Section
	lp    *biquad.Section
}

// New builds a Bank from the config. Zero-valued fields take defaults.
func New(cfg Config) (*Bank, error) {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}

	if cfg.NotchHz == 0 {
		cfg.NotchHz = def.NotchHz
	}

	if cfg.NotchQ <= 0 {
		cfg.NotchQ = def.NotchQ
	}

	if cfg.LowCutoffHz <= 0 {
		cfg.LowCutoffHz = def.LowCutoffHz
	}

	if cfg.HighCutoffHz <= 0 {
		cfg.HighCutoffHz = def.HighCutoffHz
	}

	if cfg.LowCutoffHz >= cfg.HighCutoffHz {
		return nil, fmt.Errorf("bank: low cutoff %f >= high cutoff %f", cfg.LowCutoffHz, cfg.HighCutoffHz)
	}

	notch, err := design.Spec{
		Kind:         design.KindNotch,
		FrequencyHz:  cfg.NotchHz,
		SampleRateHz: cfg.SampleRate,
		Q:            cfg.NotchQ,
	}.Design()
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}

	hp, err := design.Spec{
		Kind:         design.KindHighpass,
		FrequencyHz:  cfg.LowCutoffHz,
		SampleRateHz: cfg.SampleRate,
		Order:        1,
	}.Design()
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}

	lp, err := design.Spec{
		Kind:         design.KindLowpass,
		FrequencyHz:  cfg.HighCutoffHz,
		SampleRateHz: cfg.SampleRate,
		Order:        1,
	}.Design()
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}

	return &Bank{
		cfg:   cfg,
		notch: biquad.NewSection(notch),
		hp:    biquad.NewSection(hp),
		lp:    biquad.NewSection(lp),
	}, nil
}

// Config returns the resolved configuration.
func (b *Bank) Config() Config {
	return b.cfg
}

// Process runs the causal chain over batch in-place: artifact removal,
// notch, highpass, lowpass. Batches shorter than the filter order pass
// through untouched (degraded mode for tiny fragments, not an error).
//
// If any stage produces a non-finite value the batch and all delay lines
// are rolled back to their pre-call state and ErrNumeric is returned.
func (b *Bank) Process(batch []float64) error {
	if len(batch) < minBatchLen {
		return nil
	}

	savedBatch := append([]float64(nil), batch...)
	savedNotch := b.notch.State()
	savedHP := b.hp.State()
	savedLP := b.lp.State()

	RemoveArtifacts(batch)

	b.notch.ProcessBlock(batch)
	b.hp.ProcessBlock(batch)
	b.lp.ProcessBlock(batch)

	if !core.AllFinite(batch) {
		copy(batch, savedBatch)
		b.notch.SetState(savedNotch)
		b.hp.SetState(savedHP)
		b.lp.SetState(savedLP)

		return ErrNumeric
	}

	return nil
}

// Reset zeroes every delay line. The next sample then sees the same
// unprimed chain a fresh Bank would apply.
func (b *Bank) Reset() {
	b.notch.Reset()
	b.hp.Reset()
	b.lp.Reset()
}
