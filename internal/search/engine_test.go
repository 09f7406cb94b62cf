package search

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/omnivanity/omnivanity/internal/chain"
	"github.com/omnivanity/omnivanity/internal/encoding"
	"github.com/omnivanity/omnivanity/internal/pattern"
)

// TestEngineFindsEasyPrefix exercises the easy-pattern hit path: a one
// hex-character prefix on ETH should hit within a small key budget.
func TestEngineFindsEasyPrefix(t *testing.T) {
	r := chain.NewRegistry()
	eth, ok := r.Lookup("ETH")
	if !ok {
		t.Fatal("ETH not registered")
	}

	cfg := Config{WorkerCount: 4, BatchSize: 200, MaxKeys: 2_000_000}
	engine, err := New(eth, chain.DefaultType, "0", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("outcome = %v, want OutcomeHit (keys_tested=%d)", result.Outcome, result.Stats.KeysTested())
	}

	addr := result.Address.Address
	if len(addr) < 3 || addr[:3] != "0x0" {
		t.Errorf("address %s does not start with 0x0", addr)
	}

	// The pattern test evaluated against the
	// hit's address returns true.
	p, err := pattern.New("0", pattern.Prefix, false, eth.Alphabet(chain.DefaultType))
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	if !p.Matches(addr, eth.VisiblePrefix(chain.DefaultType)) {
		t.Errorf("returned hit %s does not satisfy its own pattern", addr)
	}
}

// TestEngineFindsBech32Prefix searches BTC's native segwit form for a "q"
// prefix: 'q' is a valid Bech32 data character, so the pattern is accepted
// and the hit begins "bc1qq".
func TestEngineFindsBech32Prefix(t *testing.T) {
	r := chain.NewRegistry()
	btc, ok := r.Lookup("BTC")
	if !ok {
		t.Fatal("BTC not registered")
	}

	cfg := Config{WorkerCount: 4, BatchSize: 100, MaxKeys: 500_000}
	engine, err := New(btc, chain.SegWitBech32, "q", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("outcome = %v, want OutcomeHit (keys_tested=%d)", result.Outcome, result.Stats.KeysTested())
	}
	if addr := result.Address.Address; len(addr) < 5 || addr[:5] != "bc1qq" {
		t.Errorf("address %s does not start with bc1qq", addr)
	}
}

// TestEngineSolanaHitRoundTrip searches Solana for a one-character Base58
// prefix, then confirms the hit Base58-decodes to a 32-byte public key and
// that generate_from_secret on the returned secret reproduces the same
// address.
func TestEngineSolanaHitRoundTrip(t *testing.T) {
	r := chain.NewRegistry()
	sol, ok := r.Lookup("SOL")
	if !ok {
		t.Fatal("SOL not registered")
	}

	cfg := Config{WorkerCount: 4, BatchSize: 50, MaxKeys: 200_000}
	engine, err := New(sol, chain.DefaultType, "S", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("outcome = %v, want OutcomeHit (keys_tested=%d)", result.Outcome, result.Stats.KeysTested())
	}

	addr := result.Address.Address
	decoded, err := encoding.Base58Decode(addr)
	if err != nil {
		t.Fatalf("Base58Decode(%s): %v", addr, err)
	}
	if len(decoded) != 32 {
		t.Errorf("decoded address is %d bytes, want 32", len(decoded))
	}

	secret, err := hex.DecodeString(result.Address.SecretHex)
	if err != nil {
		t.Fatalf("decode secret hex: %v", err)
	}
	again, err := sol.GenerateFromSecret(secret, chain.DefaultType)
	if err != nil {
		t.Fatalf("GenerateFromSecret: %v", err)
	}
	if again.Address != addr {
		t.Errorf("reconstructed address %s, want %s", again.Address, addr)
	}
}

// TestEngineMaxKeysBound covers the max_keys termination bound: a search with
// a small max_keys bound terminates having tested between N and
// N + worker_count*batch_size keys, and reports a miss for an
// unreachable pattern.
func TestEngineMaxKeysBound(t *testing.T) {
	r := chain.NewRegistry()
	eth, _ := r.Lookup("ETH")

	const maxKeys = 5000
	workers := 4
	batch := 500
	cfg := Config{WorkerCount: workers, BatchSize: batch, MaxKeys: maxKeys}

	// A pattern long enough that a hit inside maxKeys is astronomically
	// unlikely, so the bound (not a match) decides termination.
	engine, err := New(eth, chain.DefaultType, "ffffffffffffffffffffff", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeMiss {
		t.Fatalf("outcome = %v, want OutcomeMiss", result.Outcome)
	}

	keys := result.Stats.KeysTested()
	upperBound := uint64(maxKeys + workers*batch)
	if keys < maxKeys {
		t.Errorf("keys_tested = %d, want >= %d", keys, maxKeys)
	}
	if keys > upperBound {
		t.Errorf("keys_tested = %d, want <= %d", keys, upperBound)
	}
}

// TestEngineWallClockBound covers the wall-clock termination bound: an
// unreachable pattern bounded by max_wall_seconds terminates close to the
// bound with no hit and a positive key count.
func TestEngineWallClockBound(t *testing.T) {
	r := chain.NewRegistry()
	eth, _ := r.Lookup("ETH")

	cfg := Config{WorkerCount: 2, BatchSize: 200, MaxWallDuration: 300 * time.Millisecond}
	engine, err := New(eth, chain.DefaultType, "fffffffffffffffffff", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	result, err := engine.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Outcome != OutcomeMiss {
		t.Fatalf("outcome = %v, want OutcomeMiss", result.Outcome)
	}
	if result.Stats.KeysTested() == 0 {
		t.Error("keys_tested = 0, want > 0")
	}
	if elapsed < 300*time.Millisecond {
		t.Errorf("elapsed = %s, want >= 300ms", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("elapsed = %s, want within grace period of the 300ms bound", elapsed)
	}
}

// TestEngineRejectsInvalidPatternChar covers the configuration-error path
// an invalid character is rejected synchronously, before
// any search starts.
func TestEngineRejectsInvalidPatternChar(t *testing.T) {
	r := chain.NewRegistry()
	eth, _ := r.Lookup("ETH")

	cfg := Config{WorkerCount: 1, BatchSize: 10}
	if _, err := New(eth, chain.DefaultType, "zz$$", pattern.Prefix, false, cfg); err == nil {
		t.Error("expected an error for a pattern containing a non-hex character")
	}
}

// TestEngineExternalCancel confirms context cancellation stops the search
// promptly and is reported distinctly from a miss.
func TestEngineExternalCancel(t *testing.T) {
	r := chain.NewRegistry()
	eth, _ := r.Lookup("ETH")

	cfg := Config{WorkerCount: 2, BatchSize: 200}
	engine, err := New(eth, chain.DefaultType, "fffffffffffffffffff", pattern.Prefix, false, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(150*time.Millisecond, cancel)

	result, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeCancelled {
		t.Fatalf("outcome = %v, want OutcomeCancelled", result.Outcome)
	}
}
