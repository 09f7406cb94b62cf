// Command omnivanity is a thin, non-interactive wrapper over the search
// engine, exercising the library end to end the way the teacher's
// cmd/hexhunter exercised its own generator package. It is not itself
// part of the specified surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omnivanity/omnivanity/internal/chain"
	"github.com/omnivanity/omnivanity/internal/pattern"
	"github.com/omnivanity/omnivanity/internal/search"
)

func main() {
	ticker := flag.String("chain", "ETH", "chain ticker to search (e.g. ETH, BTC, SOL)")
	value := flag.String("pattern", "", "pattern to search for")
	kindFlag := flag.String("kind", "prefix", "prefix | suffix | contains")
	caseInsensitive := flag.Bool("ci", false, "case-insensitive match (defaults on for EVM chains)")
	workers := flag.Int("workers", 0, "worker count (0 = all logical CPUs)")
	batchSize := flag.Int("batch", 1000, "per-worker batch size")
	maxKeys := flag.Uint64("max-keys", 0, "stop after this many keys tested (0 = unbounded)")
	maxSeconds := flag.Float64("max-seconds", 0, "stop after this many wall-clock seconds (0 = unbounded)")
	useGPU := flag.Bool("gpu", false, "use the GPU hybrid path if available")
	flag.Parse()

	if *value == "" {
		fmt.Fprintln(os.Stderr, "error: -pattern is required")
		os.Exit(1)
	}

	var kind pattern.Kind
	switch *kindFlag {
	case "prefix":
		kind = pattern.Prefix
	case "suffix":
		kind = pattern.Suffix
	case "contains":
		kind = pattern.Contains
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -kind %q\n", *kindFlag)
		os.Exit(1)
	}

	registry := chain.NewRegistry()
	adapter, ok := registry.Lookup(*ticker)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown chain ticker %q\n", *ticker)
		os.Exit(1)
	}

	// EVM addresses carry value bits independent of their EIP-55 casing, so
	// case-insensitive is the default there unless the user said otherwise.
	ciSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "ci" {
			ciSet = true
		}
	})
	ci := *caseInsensitive
	if !ciSet && chain.CaseInsensitiveDefault(adapter.Family()) {
		ci = true
	}

	cfg := search.Config{
		WorkerCount:     *workers,
		BatchSize:       *batchSize,
		MaxKeys:         *maxKeys,
		MaxWallDuration: time.Duration(*maxSeconds * float64(time.Second)),
		UseGPU:          *useGPU,
		TelemetryWriter: os.Stderr,
	}

	engine, err := search.New(adapter, adapter.DefaultAddressType(), *value, kind, ci, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("searching %s for %s %q (difficulty ~%.0f)\n", adapter.DisplayName(), *kindFlag, *value, engine.Difficulty())

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := engine.Run(ctx)
	signal.Stop(sigCh)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch result.Outcome {
	case search.OutcomeHit:
		a := result.Address
		fmt.Printf("\nhit after %d keys in %s\n", result.Stats.KeysTested(), result.Elapsed)
		fmt.Printf("  address:     %s\n", a.Address)
		fmt.Printf("  private key: %s\n", a.SecretNative)
		fmt.Printf("  public key:  %s\n", a.PubKeyHex)
	case search.OutcomeCancelled:
		fmt.Printf("\ncancelled after %d keys in %s\n", result.Stats.KeysTested(), result.Elapsed)
	default:
		fmt.Printf("\nno hit after %d keys in %s\n", result.Stats.KeysTested(), result.Elapsed)
	}
}
