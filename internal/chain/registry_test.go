package chain

import (
	"encoding/hex"
	"strings"
	"testing"
)

// scalarOne is the secp256k1/Ed25519 "secret = 1" fixture used by the
// known-answer vectors below.
var scalarOne = func() []byte {
	b := make([]byte, 32)
	b[31] = 1
	return b
}()

func TestSecp256k1ScalarOnePublicKey(t *testing.T) {
	const want = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	r := NewRegistry()
	eth, ok := r.Lookup("ETH")
	if !ok {
		t.Fatal("ETH not registered")
	}
	rec, err := eth.GenerateFromSecret(scalarOne, DefaultType)
	if err != nil {
		t.Fatalf("GenerateFromSecret: %v", err)
	}
	// PubKeyHex is compressed (33 bytes); the x-coordinate is bytes [1:33].
	if !strings.HasSuffix(rec.PubKeyHex, want) {
		t.Fatalf("pubkey x-coordinate = %s, want suffix %s", rec.PubKeyHex, want)
	}
}

func TestBTCScalarOneAddressAndWIF(t *testing.T) {
	const wantAddr = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	const wantWIF = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"

	r := NewRegistry()
	btc, ok := r.Lookup("BTC")
	if !ok {
		t.Fatal("BTC not registered")
	}
	rec, err := btc.GenerateFromSecret(scalarOne, Legacy)
	if err != nil {
		t.Fatalf("GenerateFromSecret: %v", err)
	}
	if rec.Address != wantAddr {
		t.Errorf("address = %s, want %s", rec.Address, wantAddr)
	}
	if rec.SecretNative != wantWIF {
		t.Errorf("WIF = %s, want %s", rec.SecretNative, wantWIF)
	}
}

func TestEVMScalarOneAddress(t *testing.T) {
	const want = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"

	r := NewRegistry()
	eth, _ := r.Lookup("ETH")
	rec, err := eth.GenerateFromSecret(scalarOne, DefaultType)
	if err != nil {
		t.Fatalf("GenerateFromSecret: %v", err)
	}
	if strings.ToLower(rec.Address) != want {
		t.Errorf("address = %s, want (case-folded) %s", rec.Address, want)
	}
}

func TestRegistryAliases(t *testing.T) {
	r := NewRegistry()
	cases := map[string]string{
		"POL":        "MATIC",
		"AVALANCHE":  "AVAX",
		"USDT":       "ETH",
		"USDT-ERC20": "ETH",
		"XDG":        "DOGE",
		"XNO":        "NANO",
	}
	for alias, canonical := range cases {
		aliasAdapter, ok := r.Lookup(alias)
		if !ok {
			t.Errorf("alias %s not found", alias)
			continue
		}
		canonicalAdapter, ok := r.Lookup(canonical)
		if !ok {
			t.Fatalf("canonical %s not found", canonical)
		}
		if aliasAdapter.Ticker() != canonicalAdapter.Ticker() {
			t.Errorf("alias %s resolved to %s, want %s", alias, aliasAdapter.Ticker(), canonicalAdapter.Ticker())
		}
	}
}

func TestRegistryLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("eth"); !ok {
		t.Error("lowercase ticker lookup failed")
	}
	if _, ok := r.Lookup("Eth"); !ok {
		t.Error("mixed-case ticker lookup failed")
	}
}

// representativeTickers spans every family for the round-trip test below.
var representativeTickers = []struct {
	ticker string
	atype  AddressType
}{
	{"ETH", DefaultType},
	{"BTC", Legacy},
	{"BTC", SegWitBech32},
	{"BTC", Taproot},
	{"LTC", NestedSegWit},
	{"KAS", DefaultType},
	{"TRX", DefaultType},
	{"ZEC", DefaultType},
	{"BCH", DefaultType},
	{"ATOM", DefaultType},
	{"SOL", DefaultType},
	{"APT", DefaultType},
	{"SUI", DefaultType},
	{"XLM", DefaultType},
	{"ALGO", DefaultType},
	{"XMR", DefaultType},
	{"XRP", DefaultType},
	{"FIL", DefaultType},
	{"ADA", DefaultType},
	{"XTZ", DefaultType},
	{"STX", DefaultType},
	{"NANO", DefaultType},
	{"DOT", DefaultType},
	{"TON", DefaultType},
	{"ICP", DefaultType},
	{"IOTA", DefaultType},
	{"HBAR", DefaultType},
}

// TestGenerateFromSecretRoundTrip covers a core address invariant: for
// each chain and address type in representativeTickers, generate then
// generate_from_secret on the same secret reproduces an identical address
// and public key.
func TestGenerateFromSecretRoundTrip(t *testing.T) {
	r := NewRegistry()
	for _, tc := range representativeTickers {
		tc := tc
		t.Run(tc.ticker+"/"+tc.atype.String(), func(t *testing.T) {
			adapter, ok := r.Lookup(tc.ticker)
			if !ok {
				t.Fatalf("%s not registered", tc.ticker)
			}

			first, err := adapter.Generate(tc.atype)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			secret, err := hex.DecodeString(strings.TrimPrefix(first.SecretHex, "0x"))
			if err != nil {
				t.Fatalf("decode secret hex: %v", err)
			}

			second, err := adapter.GenerateFromSecret(secret, tc.atype)
			if err != nil {
				t.Fatalf("GenerateFromSecret: %v", err)
			}

			if first.Address != second.Address {
				t.Errorf("address mismatch: %s vs %s", first.Address, second.Address)
			}
			if first.PubKeyHex != second.PubKeyHex {
				t.Errorf("pubkey mismatch: %s vs %s", first.PubKeyHex, second.PubKeyHex)
			}
		})
	}
}

// TestAddressUsesDeclaredAlphabet covers another core address invariant: every
// character of a generated address (after stripping the visible prefix)
// belongs to the adapter's declared alphabet.
func TestAddressUsesDeclaredAlphabet(t *testing.T) {
	r := NewRegistry()
	for _, tc := range representativeTickers {
		tc := tc
		t.Run(tc.ticker+"/"+tc.atype.String(), func(t *testing.T) {
			adapter, _ := r.Lookup(tc.ticker)
			rec, err := adapter.Generate(tc.atype)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			addr := rec.Address
			if vp := adapter.VisiblePrefix(tc.atype); vp != "" && strings.HasPrefix(addr, vp) {
				addr = addr[len(vp):]
			}

			alphabet := adapter.Alphabet(tc.atype)
			for _, ch := range addr {
				if !alphabet[ch] {
					t.Errorf("address %q contains char %q outside declared alphabet", rec.Address, ch)
					break
				}
			}
		})
	}
}
