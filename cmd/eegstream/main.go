// Command eegstream runs the streaming EEG pipeline against a simulated
// 512 Hz theta-dominant source and prints the live metrics.
//
// Usage:
//
//	eegstream [flags]
//
// Examples:
//
//	eegstream
//	eegstream -duration 30s -notch 60
//	eegstream -rate 256 -verbose
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Prem-Aravindan/brainlink-dsp/dsp/core"
	"github.com/Prem-Aravindan/brainlink-dsp/dsp/filter/bank"
	dspsignal "github.com/Prem-Aravindan/brainlink-dsp/dsp/signal"
	"github.com/Prem-Aravindan/brainlink-dsp/eeg"
	"github.com/Prem-Aravindan/brainlink-dsp/stream"
)

func main() {
	var (
		rate     = flag.Float64("rate", 512, "simulated sample rate in Hz")
		duration = flag.Duration("duration", 10*time.Second, "how long to run (0 = until interrupted)")
		notch    = flag.Float64("notch", 50, "mains notch frequency in Hz")
		seed     = flag.Int64("seed", 1, "simulator random seed")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *rate, *duration, *notch, *seed); err != nil {
		logger.Error("eegstream failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, rate float64, duration time.Duration, notchHz float64, seed int64) error {
	proc, err := stream.New(stream.Config{
		SampleRate: rate,
		Filter:     bank.Config{SampleRate: rate, NotchHz: notchHz},
		Analyzer:   eeg.Config{SampleRate: rate},
		Logger:     logger,
		OnMetrics:  printMetrics,
	})
	if err != nil {
		return err
	}

	ctx, stop := signalContext(duration)
	defer stop()

	if err := proc.Start(ctx); err != nil {
		return err
	}

	logger.Info("session started", "session", proc.SessionID(), "rate", rate, "notch", notchHz)

	feedSimulator(ctx, proc, rate, seed)

	proc.Stop()

	c := proc.Counters()
	logger.Info("session finished",
		"processed", c.SamplesProcessed,
		"starved_cycles", c.StarvedCycles,
		"skipped_metrics", c.SkippedMetricCycles,
		"dropped", c.DroppedSamples,
		"overwritten", c.OverwrittenSamples,
	)

	return nil
}

// feedSimulator pushes simulated samples at the wall-clock rate until the
// context ends. Samples are delivered in small bursts the way a Bluetooth
// transport would hand them over.
func feedSimulator(ctx context.Context, proc *stream.Processor, rate float64, seed int64) {
	const burst = 32

	sim := dspsignal.NewSimulator(rate, seed)
	interval := time.Duration(float64(burst) / rate * float64(time.Second))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			step := time.Duration(float64(time.Second) / rate)
			for i := 0; i < burst; i++ {
				proc.Ingest(sim.Next(), now.Add(time.Duration(i)*step))
			}
		}
	}
}

func printMetrics(s stream.MetricsSnapshot) {
	if !s.Fresh {
		return
	}

	m := s.Metrics
	fmt.Printf("theta %6.2f%% (smoothed %6.2f%%)  snr %6.2f dB  bands d/t/a/b/g %%: %5.1f %5.1f %5.1f %5.1f %5.1f\n",
		m.ThetaContributionPct, m.SmoothedThetaPct, core.LinearPowerToDB(m.ThetaPeakSNR),
		m.NormalizedBands.Delta, m.NormalizedBands.Theta, m.NormalizedBands.Alpha,
		m.NormalizedBands.Beta, m.NormalizedBands.Gamma)
}

func signalContext(duration time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if duration > 0 {
		ctx, cancelTimeout := context.WithTimeout(ctx, duration)
		return ctx, func() { cancelTimeout(); stop() }
	}

	return ctx, stop
}
