package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/buffer"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/bank"
	"github.com/Prem-Aravindan/brainlink-dsp/eeg"
	timestats "github.com/Prem-Aravindan/brainlink-dsp/stats/time"
)

// ErrRunning is returned by operations that require a stopped processor.
var ErrRunning = errors.New("processor is running")

// ChunkStats describes the pipeline state accompanying a display chunk.
type ChunkStats struct {
	AvgProcessingTimeMs  float64
	BufferUtilizationPct float64
	SamplesProcessed     uint64
	SamplingRateHz       float64
}

// Chunk is one paced slice of the filtered display stream.
type Chunk struct {
	Samples []float64
	Stats   ChunkStats
}

// MetricsSnapshot carries the latest spectral metrics with an explicit
// freshness tag: Fresh is true only when the most recent analyzer cycle
// succeeded, while Metrics always holds the last good values so consumers
// never see a flicker back to zero.
type MetricsSnapshot struct {
	Metrics   eeg.Metrics
	Fresh     bool
	UpdatedAt time.Time
}

// Counters aggregates the pipeline's diagnostic counts.
type Counters struct {
	StarvedCycles       uint64
	SkippedMetricCycles uint64
	DroppedSamples      uint64
	OverwrittenSamples  uint64
	SamplesProcessed    uint64
}

// Config holds the processor wiring. Zero values take defaults.
type Config struct {
	SampleRate            float64       // nominal rate, refined by measurement
	RingCapacity          int           // default 8192 samples
	BatchInterval         time.Duration // default 250ms
	MetricsInterval       time.Duration // default 1s
	DisplayRateHz         float64       // default 60
	MinBatch              int           // default 64
	MaxBatch              int           // default 256
	AnalysisWindowSeconds float64       // default 2
	QueueCapSeconds       float64       // default 3
	Filter                bank.Config
	Analyzer              eeg.Config

	Logger    *slog.Logger
	OnChunk   func(Chunk)
	OnMetrics func(MetricsSnapshot)
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 512
	}

	if cfg.RingCapacity <= 0 {
		cfg.RingCapacity = 8192
	}

	if cfg.BatchInterval <= 0 {
		cfg.BatchInterval = 250 * time.Millisecond
	}

	if cfg.MetricsInterval <= 0 {
		cfg.MetricsInterval = time.Second
	}

	if cfg.DisplayRateHz <= 0 {
		cfg.DisplayRateHz = 60
	}

	if cfg.MinBatch <= 0 {
		cfg.MinBatch = 64
	}

	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 256
	}

	if cfg.MaxBatch < cfg.MinBatch {
		cfg.MaxBatch = cfg.MinBatch
	}

	if cfg.AnalysisWindowSeconds <= 0 {
		cfg.AnalysisWindowSeconds = 2
	}

	if cfg.QueueCapSeconds <= 0 {
		cfg.QueueCapSeconds = 3
	}

	if cfg.Filter.SampleRate <= 0 {
		cfg.Filter.SampleRate = cfg.SampleRate
	}

	if cfg.Analyzer.SampleRate <= 0 {
		cfg.Analyzer.SampleRate = cfg.SampleRate
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return cfg
}

// Processor is the streaming pipeline: ring-buffer ingestion, timer-driven
// filtering and spectral analysis, and a paced display stream.
//
// Ingest may be called from the sensor's delivery goroutine; everything
// else mutates state on the single worker goroutine, so the pipeline is a
// single-producer single-consumer design with no further locking.
type Processor struct {
	cfg Config
	log *slog.Logger

	ring     *buffer.Ring
	bank     *bank.Bank
	analyzer *eeg.Analyzer
	pacer    *Pacer
	pool     *buffer.Pool

	// Worker-owned state.
	window           []float64 // rolling analysis window of filtered samples
	windowCap        int
	measuredRateHz   float64
	avgProcessingMs  float64
	samplesProcessed uint64
	starvedCycles    uint64
	skippedMetrics   uint64
	snapshot         MetricsSnapshot

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	sessionID string
}

// New builds a Processor. The filter bank is designed eagerly so parameter
// errors surface at construction, not mid-stream.
func New(cfg Config) (*Processor, error) {
	cfg = normalizeConfig(cfg)

	fb, err := bank.New(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("processor: %w", err)
	}

	p := &Processor{
		cfg:            cfg,
		log:            cfg.Logger,
		ring:           buffer.NewRing(cfg.RingCapacity),
		bank:           fb,
		analyzer:       eeg.NewAnalyzer(cfg.Analyzer),
		pacer:          NewPacer(cfg.QueueCapSeconds, cfg.DisplayRateHz),
		pool:           buffer.NewPool(),
		windowCap:      int(cfg.AnalysisWindowSeconds * cfg.SampleRate),
		measuredRateHz: cfg.SampleRate,
		sessionID:      uuid.NewString(),
	}

	p.pacer.SetInputRate(cfg.SampleRate)

	return p, nil
}

// SessionID identifies the current session; Reset issues a new one.
func (p *Processor) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.sessionID
}

// Ingest accepts one raw sample from the sensor. Non-blocking and O(1); it
// never stalls the delivery callback, at worst overwriting the oldest
// unprocessed sample.
func (p *Processor) Ingest(value float64, ts time.Time) {
	p.ring.Push(buffer.Sample{Value: value, Timestamp: ts})
}

// Start launches the worker goroutine. The processor stops when ctx is
// cancelled or Stop is called.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx)

	return nil
}

// Stop halts the timers and waits for the worker to exit. Filter state,
// ring contents and smoothing state survive, so a later Start resumes the
// session (pause semantics). Use Reset for disconnect semantics.
func (p *Processor) Stop() {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()
		return
	}

	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

// Reset clears every piece of session state - ring, filter delay lines,
// smoothing accumulator, pacer queue, counters, metrics - and issues a new
// session ID. The processor must be stopped first.
func (p *Processor) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}

	p.ring.Reset()
	p.bank.Reset()
	p.analyzer.Reset()
	p.pacer.Reset()

	p.window = nil
	p.measuredRateHz = p.cfg.SampleRate
	p.avgProcessingMs = 0
	p.samplesProcessed = 0
	p.starvedCycles = 0
	p.skippedMetrics = 0
	p.snapshot = MetricsSnapshot{}
	p.sessionID = uuid.NewString()

	return nil
}

// Metrics returns the current snapshot: the last good metrics plus the
// freshness tag.
func (p *Processor) Metrics() MetricsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot
}

// Counters returns the diagnostic counts.
func (p *Processor) Counters() Counters {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Counters{
		StarvedCycles:       p.starvedCycles,
		SkippedMetricCycles: p.skippedMetrics,
		DroppedSamples:      p.pacer.Dropped(),
		OverwrittenSamples:  p.ring.Overwritten(),
		SamplesProcessed:    p.samplesProcessed,
	}
}

func (p *Processor) run(ctx context.Context) {
	defer close(p.done)

	batchTicker := time.NewTicker(p.cfg.BatchInterval)
	defer batchTicker.Stop()

	metricsTicker := time.NewTicker(p.cfg.MetricsInterval)
	defer metricsTicker.Stop()

	displayTicker := time.NewTicker(time.Duration(float64(time.Second) / p.cfg.DisplayRateHz))
	defer displayTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-batchTicker.C:
			p.processBatch()
		case <-metricsTicker.C:
			p.computeMetrics()
		case <-displayTicker.C:
			p.emitChunk()
		}
	}
}

// processBatch drains one batch, filters it and queues it for display.
func (p *Processor) processBatch() {
	have := p.ring.Len()

	batch := p.ring.DrainAvailable(p.cfg.MinBatch, p.cfg.MaxBatch)
	if batch == nil {
		p.mu.Lock()
		p.starvedCycles++
		p.mu.Unlock()

		p.log.Debug("batch starved", "need", p.cfg.MinBatch, "have", have)

		return
	}

	start := time.Now()

	values := p.pool.GetBatch(len(batch))
	defer p.pool.PutBatch(values)

	for i, s := range batch {
		values[i] = s.Value
	}

	p.updateMeasuredRate(batch)

	// The analysis window keeps raw samples; metrics run the zero-phase
	// path over it, while the display stream gets the causal filter.
	p.appendWindow(values)

	if err := p.bank.Process(values); err != nil {
		p.log.Warn("filter cycle skipped", "err", err, "batch", len(values))
		return
	}

	p.pacer.Offer(values)

	elapsedMs := float64(time.Since(start).Microseconds()) / 1000

	p.mu.Lock()
	if p.avgProcessingMs == 0 {
		p.avgProcessingMs = elapsedMs
	} else {
		p.avgProcessingMs = 0.2*elapsedMs + 0.8*p.avgProcessingMs
	}
	p.samplesProcessed += uint64(len(values))
	p.mu.Unlock()
}

// computeMetrics reruns the spectral analysis over the rolling window.
func (p *Processor) computeMetrics() {
	metrics, err := p.analyzeWindow()
	if err != nil {
		p.mu.Lock()
		p.skippedMetrics++
		p.snapshot.Fresh = false
		snapshot := p.snapshot
		p.mu.Unlock()

		switch {
		case errors.Is(err, eeg.ErrInsufficientData):
			p.log.Debug("metrics skipped", "err", err)
		case errors.Is(err, eeg.ErrDegenerateSignal):
			p.log.Info("metrics skipped: degenerate signal", "window", len(p.window))
		default:
			p.log.Warn("metrics skipped", "err", err)
		}

		if p.cfg.OnMetrics != nil {
			p.cfg.OnMetrics(snapshot)
		}

		return
	}

	snapshot := MetricsSnapshot{Metrics: metrics, Fresh: true, UpdatedAt: time.Now()}

	p.mu.Lock()
	p.snapshot = snapshot
	p.mu.Unlock()

	if p.cfg.OnMetrics != nil {
		p.cfg.OnMetrics(snapshot)
	}
}

// analyzeWindow rejects a flat raw window before filtering: a railed or
// disconnected sensor yields a constant stream, and the highpass would
// turn it into an edge transient that looks like signal.
func (p *Processor) analyzeWindow() (eeg.Metrics, error) {
	if len(p.window) >= p.analyzer.Config().MinSamples && timestats.IsDegenerate(p.window, 0) {
		return eeg.Metrics{}, eeg.ErrDegenerateSignal
	}

	return p.analyzer.Analyze(p.bank.ZeroPhase(p.window))
}

// emitChunk releases one display tick's worth of samples.
func (p *Processor) emitChunk() {
	samples := p.pacer.Tick()
	if len(samples) == 0 || p.cfg.OnChunk == nil {
		return
	}

	p.mu.Lock()
	stats := ChunkStats{
		AvgProcessingTimeMs:  p.avgProcessingMs,
		BufferUtilizationPct: p.ring.Utilization() * 100,
		SamplesProcessed:     p.samplesProcessed,
		SamplingRateHz:       p.measuredRateHz,
	}
	p.mu.Unlock()

	p.cfg.OnChunk(Chunk{Samples: samples, Stats: stats})
}

// updateMeasuredRate estimates the true input rate from batch timestamps.
// The nominal rate is only a starting point; hardware drifts.
func (p *Processor) updateMeasuredRate(batch []buffer.Sample) {
	if len(batch) < 2 {
		return
	}

	span := batch[len(batch)-1].Timestamp.Sub(batch[0].Timestamp)
	if span <= 0 {
		return
	}

	rate := float64(len(batch)-1) / span.Seconds()
	if rate <= 0 {
		return
	}

	// Smooth the estimate so one jittery batch cannot yank the pacer.
	p.measuredRateHz = 0.2*rate + 0.8*p.measuredRateHz
	p.pacer.SetInputRate(p.measuredRateHz)
}

// appendWindow keeps the rolling analysis window at its configured span.
func (p *Processor) appendWindow(values []float64) {
	p.window = append(p.window, values...)

	if over := len(p.window) - p.windowCap; over > 0 {
		p.window = p.window[over:]
	}
}
