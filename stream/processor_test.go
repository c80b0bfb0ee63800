package stream

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/core"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/signal"
)

func quietConfig() Config {
	return Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func ingestSignal(p *Processor, values []float64, rate float64) {
	start := time.Now()
	step := time.Duration(float64(time.Second) / rate)

	for i, v := range values {
		p.Ingest(v, start.Add(time.Duration(i)*step))
	}
}

// drain runs batch cycles until the ring is starved, without timers.
func drain(p *Processor) {
	for p.ring.Len() >= p.cfg.MinBatch {
		p.processBatch()
	}
}

// thetaSignal mixes a dominant theta tone with weaker alpha and beta
// activity plus noise, all inside the analysis band so the bandpass does
// not strip the competition away.
func thetaSignal(t *testing.T, samples int) []float64 {
	t.Helper()

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(512)},
		signal.WithSeed(42),
	)

	sig, err := gen.Sine(6, 100, samples)
	require.NoError(t, err)

	for _, tone := range []struct{ freq, amp float64 }{{10, 50}, {20, 40}} {
		part, err := gen.Sine(tone.freq, tone.amp, samples)
		require.NoError(t, err)

		sig, err = signal.Add(sig, part)
		require.NoError(t, err)
	}

	noise, err := gen.GaussianNoise(10, samples)
	require.NoError(t, err)

	sig, err = signal.Add(sig, noise)
	require.NoError(t, err)

	return sig
}

func TestProcessorEndToEndTheta(t *testing.T) {
	cfg := quietConfig()

	var snapshots []MetricsSnapshot
	cfg.OnMetrics = func(s MetricsSnapshot) { snapshots = append(snapshots, s) }

	p, err := New(cfg)
	require.NoError(t, err)

	ingestSignal(p, thetaSignal(t, 3*512), 512)
	drain(p)
	p.computeMetrics()

	require.Len(t, snapshots, 1)
	snap := snapshots[0]
	require.True(t, snap.Fresh)
	require.False(t, snap.UpdatedAt.IsZero())

	m := snap.Metrics
	assert.Greater(t, m.Bands.Theta, m.Bands.Delta)
	assert.Greater(t, m.Bands.Theta, m.Bands.Alpha)
	assert.Greater(t, m.Bands.Theta, m.Bands.Beta)
	assert.Greater(t, m.Bands.Theta, m.Bands.Gamma)

	assert.Greater(t, m.ThetaPeakSNR, 1.0)
	assert.Greater(t, m.ThetaContributionPct, 10.0)
	assert.Less(t, m.ThetaContributionPct, 90.0)

	counters := p.Counters()
	assert.NotZero(t, counters.SamplesProcessed)
	assert.Zero(t, counters.SkippedMetricCycles)
}

func TestProcessorDegenerateSignalSkipsMetrics(t *testing.T) {
	cfg := quietConfig()

	var snapshots []MetricsSnapshot
	cfg.OnMetrics = func(s MetricsSnapshot) { snapshots = append(snapshots, s) }

	p, err := New(cfg)
	require.NoError(t, err)

	constant := make([]float64, 2*512)
	for i := range constant {
		constant[i] = 65
	}

	ingestSignal(p, constant, 512)
	drain(p)
	p.computeMetrics()

	require.Len(t, snapshots, 1)
	assert.False(t, snapshots[0].Fresh)
	assert.Zero(t, snapshots[0].Metrics.TotalPower)
	assert.EqualValues(t, 1, p.Counters().SkippedMetricCycles)
}

func TestProcessorRetainsLastGoodMetrics(t *testing.T) {
	cfg := quietConfig()

	p, err := New(cfg)
	require.NoError(t, err)

	ingestSignal(p, thetaSignal(t, 2*512), 512)
	drain(p)
	p.computeMetrics()

	good := p.Metrics()
	require.True(t, good.Fresh)

	// A failing cycle keeps the values but clears the freshness tag.
	p.window = p.window[:4]
	p.computeMetrics()

	stale := p.Metrics()
	assert.False(t, stale.Fresh)
	assert.Equal(t, good.Metrics, stale.Metrics)
	assert.Equal(t, good.UpdatedAt, stale.UpdatedAt)
}

func TestProcessorChunkStats(t *testing.T) {
	cfg := quietConfig()

	var chunks []Chunk
	cfg.OnChunk = func(c Chunk) { chunks = append(chunks, c) }

	p, err := New(cfg)
	require.NoError(t, err)

	ingestSignal(p, thetaSignal(t, 512), 512)
	drain(p)

	for i := 0; i < 60 && len(chunks) == 0; i++ {
		p.emitChunk()
	}

	require.NotEmpty(t, chunks)
	c := chunks[0]
	assert.NotEmpty(t, c.Samples)
	assert.GreaterOrEqual(t, c.Stats.AvgProcessingTimeMs, 0.0)
	assert.GreaterOrEqual(t, c.Stats.BufferUtilizationPct, 0.0)
	assert.LessOrEqual(t, c.Stats.BufferUtilizationPct, 100.0)
	assert.NotZero(t, c.Stats.SamplesProcessed)
	assert.InDelta(t, 512, c.Stats.SamplingRateHz, 50)
}

func TestProcessorStopIsPause(t *testing.T) {
	p, err := New(quietConfig())
	require.NoError(t, err)

	session := p.SessionID()
	require.NotEmpty(t, session)

	ingestSignal(p, thetaSignal(t, 2*512), 512)
	drain(p)
	p.computeMetrics()

	require.NoError(t, p.Start(context.Background()))
	p.Stop()

	// Pause keeps the session and the last metrics.
	assert.Equal(t, session, p.SessionID())
	assert.True(t, p.Metrics().Fresh)
	assert.NotZero(t, p.Counters().SamplesProcessed)
}

func TestProcessorResetIsDisconnect(t *testing.T) {
	p, err := New(quietConfig())
	require.NoError(t, err)

	session := p.SessionID()

	ingestSignal(p, thetaSignal(t, 2*512), 512)
	drain(p)
	p.computeMetrics()
	require.True(t, p.Metrics().Fresh)

	require.NoError(t, p.Reset())

	assert.NotEqual(t, session, p.SessionID())
	assert.Equal(t, MetricsSnapshot{}, p.Metrics())
	assert.Equal(t, Counters{}, p.Counters())
	assert.Zero(t, p.ring.Len())
	assert.Empty(t, p.window)
}

func TestProcessorResetWhileRunning(t *testing.T) {
	p, err := New(quietConfig())
	require.NoError(t, err)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.ErrorIs(t, p.Reset(), ErrRunning)
	require.ErrorIs(t, p.Start(context.Background()), ErrRunning)
}

func TestProcessorStarvation(t *testing.T) {
	p, err := New(quietConfig())
	require.NoError(t, err)

	ingestSignal(p, thetaSignal(t, 32), 512) // below MinBatch
	p.processBatch()

	counters := p.Counters()
	assert.EqualValues(t, 1, counters.StarvedCycles)
	assert.Zero(t, counters.SamplesProcessed)
	assert.EqualValues(t, 32, p.ring.Len())
}
