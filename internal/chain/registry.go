package chain

import "strings"

// Registry resolves a ticker symbol to its Adapter, including common
// aliases (POL -> MATIC, XDG -> DOGE, and so on). Lookups are
// case-insensitive; registration is not safe for concurrent use, so every
// chain family registers during construction, before any search starts.
type Registry struct {
	byTicker map[string]Adapter
	aliases  map[string]string
}

// NewRegistry builds the default registry: every family the module
// implements, registered in one pass.
func NewRegistry() *Registry {
	r := &Registry{
		byTicker: make(map[string]Adapter),
		aliases:  make(map[string]string),
	}
	registerEVMFamily(r)
	registerUTXOFamily(r)
	registerCosmosFamily(r)
	registerEd25519Family(r)
	registerSpecialisedFamily(r)
	return r
}

func (r *Registry) register(a Adapter) {
	r.byTicker[strings.ToUpper(a.Ticker())] = a
}

// alias maps an additional symbol to an already-registered canonical
// ticker (e.g. USDT trading on the Ethereum chain).
func (r *Registry) alias(alias, canonical string) {
	r.aliases[strings.ToUpper(alias)] = strings.ToUpper(canonical)
}

// Lookup resolves ticker (case-insensitively, following aliases) to its
// Adapter.
func (r *Registry) Lookup(ticker string) (Adapter, bool) {
	key := strings.ToUpper(ticker)
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	a, ok := r.byTicker[key]
	return a, ok
}

// Tickers returns every canonical ticker the registry knows, in map
// iteration order (not stable between calls, so callers needing a stable
// display order should sort the result themselves).
func (r *Registry) Tickers() []string {
	out := make([]string, 0, len(r.byTicker))
	for t := range r.byTicker {
		out = append(out, t)
	}
	return out
}
