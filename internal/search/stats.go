// Package search implements the parallel vanity-address search engine:
// the worker pool, batch loop, statistics aggregation, termination state
// machine and the CPU/GPU hybrid protocol.
package search

import (
	"sync/atomic"
	"time"
)

// Stats is the process-shared record every worker updates via atomic
// operations with relaxed ordering, and the reporter samples every 250ms.
type Stats struct {
	keysTested uint64
	running    int32
	found      int32
	startedAt  time.Time
}

func newStats() *Stats {
	return &Stats{running: 1, startedAt: time.Now()}
}

// KeysTested returns the monotonic counter's current value. Its observed
// value at any instant is a lower bound on work actually done.
func (s *Stats) KeysTested() uint64 {
	return atomic.LoadUint64(&s.keysTested)
}

func (s *Stats) addKeys(n uint64) {
	atomic.AddUint64(&s.keysTested, n)
}

// Running reports whether the search has not yet been told to stop.
func (s *Stats) Running() bool {
	return atomic.LoadInt32(&s.running) != 0
}

// Stop clears the running flag. The engine calls it as soon as the search
// is told to stop (match, bound or cancellation), together with closing the
// done channel that workers check at each batch boundary; the reporter
// observes the flag at its next tick.
func (s *Stats) Stop() {
	atomic.StoreInt32(&s.running, 0)
}

// Found reports whether a worker has published a winning result.
func (s *Stats) Found() bool {
	return atomic.LoadInt32(&s.found) != 0
}

func (s *Stats) markFound() {
	atomic.StoreInt32(&s.found, 1)
}

// Elapsed returns the wall-clock time since the search started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.startedAt)
}

// RateKeysPerSec returns the current throughput, keys tested per second of
// wall-clock elapsed since the search started.
func (s *Stats) RateKeysPerSec() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.KeysTested()) / elapsed
}
