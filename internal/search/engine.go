package search

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omnivanity/omnivanity/internal/chain"
	"github.com/omnivanity/omnivanity/internal/pattern"
)

// Config is the caller-supplied search configuration. WorkerCount 0
// selects the host's logical CPU count.
type Config struct {
	WorkerCount     int
	BatchSize       int
	MaxKeys         uint64
	MaxWallDuration time.Duration
	UseGPU          bool

	// TelemetryWriter, when non-nil, receives one carriage-return
	// overwritable progress line every 250ms for the duration of the search
	// (callers typically pass os.Stderr).
	TelemetryWriter io.Writer
}

func (c Config) withDefaults() Config {
	if c.WorkerCount <= 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1000
	}
	return c
}

// Outcome tags why a search stopped, mirroring the DONE(...) states of the
// the search's termination state machine.
type Outcome int

const (
	OutcomeHit Outcome = iota
	OutcomeMiss
	OutcomeCancelled
)

// Result is what the reader receives once a search terminates.
type Result struct {
	Outcome  Outcome
	Address  *chain.GeneratedAddress
	Stats    Stats
	Elapsed  time.Duration
}

// Engine owns a chain adapter, an address-type selection, a matcher and a
// stats object for the duration of exactly one search.
type Engine struct {
	adapter     chain.Adapter
	addressType chain.AddressType
	pattern     *pattern.Pattern
	cfg         Config
	gpu         gpuBackend
}

// New validates the pattern against the adapter's alphabet for the chosen
// address type and constructs an Engine. Configuration errors are
// surfaced here, synchronously — the search never starts on bad input.
func New(adapter chain.Adapter, addressType chain.AddressType, value string, kind pattern.Kind, caseInsensitive bool, cfg Config) (*Engine, error) {
	if addressType == chain.DefaultType {
		addressType = adapter.DefaultAddressType()
	}
	supported := false
	for _, t := range adapter.SupportedTypes() {
		if t == addressType {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("search: chain %s does not support address type %s", adapter.Ticker(), addressType)
	}

	p, err := pattern.New(value, kind, caseInsensitive, adapter.Alphabet(addressType))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		adapter:     adapter,
		addressType: addressType,
		pattern:     p,
		cfg:         cfg.withDefaults(),
	}

	if e.cfg.UseGPU {
		backend, err := newGPUBackend(adapter, addressType, p)
		if err != nil {
			// Transient backend fault: fall back to CPU.
			log.Warn().Err(err).Str("chain", adapter.Ticker()).Msg("gpu backend unavailable, falling back to cpu path")
			e.cfg.UseGPU = false
		} else {
			e.gpu = backend
		}
	}

	return e, nil
}

// Difficulty returns the pattern's analytic difficulty against this
// engine's chain alphabet, for callers that want to display it before
// starting the search.
func (e *Engine) Difficulty() float64 {
	return e.pattern.Difficulty(len(e.adapter.Alphabet(e.addressType)))
}

// Run blocks the caller until the search terminates, returning the final
// Result. ctx cancellation is the external-cancel path.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	stats, resultCh, wait := e.start(ctx)

	if e.cfg.TelemetryWriter != nil {
		go RunReporter(ctx, stats, e.Difficulty(), e.cfg.TelemetryWriter)
	}

	wait()
	return e.collect(ctx, stats, resultCh), nil
}

// Progress is the snapshot handed to RunWithProgress's callback once per
// reporting interval.
type Progress struct {
	KeysTested uint64
	Rate       float64
	Elapsed    time.Duration
}

// RunWithProgress runs the workers in the background and drives onProgress
// on the caller's goroutine every 250ms until the search terminates,
// then returns the final Result. The callback variant of Run.
func (e *Engine) RunWithProgress(ctx context.Context, onProgress func(Progress)) (*Result, error) {
	stats, resultCh, wait := e.start(ctx)

	finished := make(chan struct{})
	go func() {
		wait()
		close(finished)
	}()

	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-finished:
			return e.collect(ctx, stats, resultCh), nil
		case <-ticker.C:
			if onProgress != nil {
				onProgress(Progress{
					KeysTested: stats.KeysTested(),
					Rate:       stats.RateKeysPerSec(),
					Elapsed:    stats.Elapsed(),
				})
			}
		}
	}
}

// start launches the worker pool (or the GPU outer loop) plus the watchdog
// and returns the shared stats, the single-slot result channel, and a wait
// function that blocks until every goroutine has drained.
func (e *Engine) start(ctx context.Context) (*Stats, chan *chain.GeneratedAddress, func()) {
	stats := newStats()
	resultCh := make(chan *chain.GeneratedAddress, 1)

	done := make(chan struct{})
	var closeOnce sync.Once
	stop := func() {
		stats.Stop()
		closeOnce.Do(func() { close(done) })
	}

	var wg sync.WaitGroup

	if e.cfg.UseGPU && e.gpu != nil && e.gpu.SupportsTurbo(e.adapter) {
		log.Info().Str("chain", e.adapter.Ticker()).Msg("search started (gpu turbo)")
		wg.Add(1)
		go e.runTurbo(ctx, stats, resultCh, done, stop, &wg)
	} else if e.cfg.UseGPU && e.gpu != nil {
		log.Info().Str("chain", e.adapter.Ticker()).Msg("search started (gpu hybrid)")
		wg.Add(1)
		go e.runHybrid(ctx, stats, resultCh, done, stop, &wg)
	} else {
		log.Info().Str("chain", e.adapter.Ticker()).Int("workers", e.cfg.WorkerCount).Msg("search started (cpu)")
		for i := 0; i < e.cfg.WorkerCount; i++ {
			wg.Add(1)
			go e.worker(ctx, stats, resultCh, done, stop, &wg)
		}
	}

	wg.Add(1)
	go e.watchdog(ctx, stats, done, stop, &wg)

	return stats, resultCh, func() {
		wg.Wait()
		stats.Stop()
	}
}

// collect drains the single-slot result channel and tags the outcome.
func (e *Engine) collect(ctx context.Context, stats *Stats, resultCh chan *chain.GeneratedAddress) *Result {
	elapsed := stats.Elapsed()
	log.Info().Uint64("keys_tested", stats.KeysTested()).Dur("elapsed", elapsed).Msg("search stopped")

	select {
	case addr := <-resultCh:
		return &Result{Outcome: OutcomeHit, Address: addr, Stats: *stats, Elapsed: elapsed}
	default:
	}

	if ctx.Err() != nil {
		return &Result{Outcome: OutcomeCancelled, Stats: *stats, Elapsed: elapsed}
	}
	return &Result{Outcome: OutcomeMiss, Stats: *stats, Elapsed: elapsed}
}

// watchdog enforces the max_keys / max_wall_seconds bounds and external
// context cancellation, all of which translate to the same Stop() signal.
func (e *Engine) watchdog(ctx context.Context, stats *Stats, done chan struct{}, stop func(), wg *sync.WaitGroup) {
	defer wg.Done()
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			stop()
			return
		case <-ticker.C:
			if e.cfg.MaxKeys > 0 && stats.KeysTested() >= e.cfg.MaxKeys {
				stop()
				return
			}
			if e.cfg.MaxWallDuration > 0 && stats.Elapsed() >= e.cfg.MaxWallDuration {
				stop()
				return
			}
		}
	}
}

// worker is the CPU main loop: check bounds, run a batch,
// add to the counter, repeat.
func (e *Engine) worker(ctx context.Context, stats *Stats, resultCh chan<- *chain.GeneratedAddress, done chan struct{}, stop func(), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		var batchKeys uint64
		hit := false
		for i := 0; i < e.cfg.BatchSize; i++ {
			addrStr, secret, err := e.adapter.GenerateAddressOnly(e.addressType)
			batchKeys++
			if err != nil {
				continue
			}
			if !e.pattern.Matches(addrStr, e.adapter.VisiblePrefix(e.addressType)) {
				continue
			}

			full, err := e.adapter.GenerateFromSecret(secret, e.addressType)
			if err != nil {
				continue
			}

			select {
			case resultCh <- full:
				stats.markFound()
				stop()
			default:
				// Another worker already published the winning result;
				// this one's hit is dropped under the first-wins policy.
			}
			hit = true
			break
		}
		stats.addKeys(batchKeys)
		if hit {
			return
		}
	}
}
