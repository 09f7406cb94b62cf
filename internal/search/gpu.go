package search

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/omnivanity/omnivanity/internal/chain"
)

// gpuBackend is the device-side half of the hybrid search: batched pattern
// filtering over CPU-generated addresses, or (for Ed25519-family chains)
// the full on-device "turbo" search. Both build variants (gpu_opencl.go,
// gpu_stub.go) implement this interface; only the stub is usable without
// the opencl build tag.
type gpuBackend interface {
	// FilterBatch uploads addresses, runs one workgroup per 256 of them,
	// and returns the indices the device flagged as possible matches.
	// The host re-verifies every flagged index on CPU before trusting it.
	FilterBatch(ctx context.Context, addresses []string) ([]int, error)

	// SupportsTurbo reports whether this backend can run the full
	// on-device Ed25519 search for the given chain instead of the
	// filter-only hybrid loop.
	SupportsTurbo(adapter chain.Adapter) bool

	// RunTurboBatch dispatches one full on-device generate-and-match round
	// over keysPerDispatch candidate seeds built from baseSeed (24 fixed
	// bytes) plus each thread's 8-byte global ID, returning the global IDs
	// the device flagged as a pattern match. The caller reconstructs and
	// re-verifies every flagged ID on CPU before trusting it.
	RunTurboBatch(ctx context.Context, baseSeed [24]byte, keysPerDispatch uint64) ([]uint64, error)

	// Close releases device resources. Safe to call once per backend.
	Close()
}

// gpuBatchSize is the address count uploaded per dispatch; the device
// partitions it into one workgroup per 256 addresses.
const gpuBatchSize = 65536

// turboKeysPerDispatch is the candidate count a single turbo kernel launch
// covers; each thread derives and tests exactly one full Ed25519 keypair.
const turboKeysPerDispatch = 1 << 20

// hybridCPUCoreFraction caps CPU-side candidate generation at 75% of
// cores to leave headroom for the GPU driver thread.
const hybridCPUCoreFraction = 0.75

func hybridCPUWorkers() int {
	n := int(float64(runtime.NumCPU()) * hybridCPUCoreFraction)
	if n < 1 {
		n = 1
	}
	return n
}

// runHybrid is the outer loop of the hybrid GPU path: CPU candidate
// generation, GPU batched filtering, CPU re-verification and
// reconstruction of any confirmed hit.
func (e *Engine) runHybrid(ctx context.Context, stats *Stats, resultCh chan<- *chain.GeneratedAddress, done chan struct{}, stop func(), wg *sync.WaitGroup) {
	defer wg.Done()

	type candidate struct {
		address string
		secret  []byte
	}

	workers := hybridCPUWorkers()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		batch := make([]candidate, gpuBatchSize)
		var genWG sync.WaitGroup
		perWorker := gpuBatchSize / workers
		if perWorker < 1 {
			perWorker = 1
		}
		for w := 0; w < workers; w++ {
			start := w * perWorker
			end := start + perWorker
			if w == workers-1 {
				end = gpuBatchSize
			}
			if start >= end {
				continue
			}
			genWG.Add(1)
			go func(start, end int) {
				defer genWG.Done()
				for i := start; i < end; i++ {
					addr, secret, err := e.adapter.GenerateAddressOnly(e.addressType)
					if err != nil {
						continue
					}
					batch[i] = candidate{address: addr, secret: secret}
				}
			}(start, end)
		}
		genWG.Wait()
		stats.addKeys(uint64(gpuBatchSize))

		addrs := make([]string, gpuBatchSize)
		for i, c := range batch {
			addrs[i] = c.address
		}

		flagged, err := e.gpu.FilterBatch(ctx, addrs)
		if err != nil {
			// Transient backend fault: fall back to a CPU-only scan of
			// this same batch instead of losing the generated work.
			flagged = cpuScanFallback(e, addrs)
		}

		for _, idx := range flagged {
			c := batch[idx]
			if !e.pattern.Matches(c.address, e.adapter.VisiblePrefix(e.addressType)) {
				continue // GPU false positive; confirmed false by CPU.
			}
			full, err := e.adapter.GenerateFromSecret(c.secret, e.addressType)
			if err != nil {
				continue
			}
			select {
			case resultCh <- full:
				stats.markFound()
				stop()
			default:
			}
			return
		}
	}
}

// runTurbo is the full-GPU Ed25519 path's outer loop: each round draws a
// fresh random 24-byte base seed, dispatches one kernel launch covering
// turboKeysPerDispatch candidates, and for every global ID the device
// flags, rebuilds the exact seed it used and re-derives + re-verifies the
// address on CPU through the real chain adapter — the device never decides
// a hit by itself.
func (e *Engine) runTurbo(ctx context.Context, stats *Stats, resultCh chan<- *chain.GeneratedAddress, done chan struct{}, stop func(), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		var baseSeed [24]byte
		if _, err := rand.Read(baseSeed[:]); err != nil {
			continue
		}

		flagged, err := e.gpu.RunTurboBatch(ctx, baseSeed, turboKeysPerDispatch)
		if err != nil {
			// Transient backend fault: fall back to the CPU worker loop
			// for this round instead of losing the dispatch entirely.
			e.turboCPUFallbackRound(ctx, stats, resultCh, stop)
			stats.addKeys(turboKeysPerDispatch)
			continue
		}
		stats.addKeys(turboKeysPerDispatch)

		for _, gid := range flagged {
			seed := make([]byte, 32)
			copy(seed, baseSeed[:])
			binary.BigEndian.PutUint64(seed[24:], gid)

			full, err := e.adapter.GenerateFromSecret(seed, e.addressType)
			if err != nil {
				continue
			}
			if !e.pattern.Matches(full.Address, e.adapter.VisiblePrefix(e.addressType)) {
				continue // device false positive; confirmed false by CPU.
			}
			select {
			case resultCh <- full:
				stats.markFound()
				stop()
			default:
			}
			return
		}
	}
}

// turboCPUFallbackRound scans a CPU-generated batch the size of one turbo
// dispatch so a transient device fault doesn't stall the search entirely.
func (e *Engine) turboCPUFallbackRound(ctx context.Context, stats *Stats, resultCh chan<- *chain.GeneratedAddress, stop func()) {
	for i := uint64(0); i < turboKeysPerDispatch; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		addr, secret, err := e.adapter.GenerateAddressOnly(e.addressType)
		if err != nil {
			continue
		}
		if !e.pattern.Matches(addr, e.adapter.VisiblePrefix(e.addressType)) {
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
		}
		return
	}
}

func cpuScanFallback(e *Engine, addrs []string) []int {
	var flagged []int
	for i, a := range addrs {
		if e.pattern.Matches(a, e.adapter.VisiblePrefix(e.addressType)) {
			flagged = append(flagged, i)
		}
	}
	return flagged
}
