package chain

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// ed25519Deriver computes a chain-specific address string from a raw
// ed25519 public key. Each Ed25519-family chain differs only in this
// function, following the teacher's per-network matcher.go files
// (aptos/matcher.go, sui/matcher.go) generalized into one table-driven
// adapter instead of one package per chain.
type ed25519Deriver func(pub []byte) string

// ed25519NativeSecret formats the secret the way the chain's wallets expect
// it: Solana's 64-byte JSON array, Stellar's seed StrKey, plain hex
// elsewhere.
type ed25519NativeSecret func(kp *cryptoprim.Ed25519Keypair) string

type ed25519Adapter struct {
	ticker   string
	name     string
	deriveFn ed25519Deriver
	nativeFn ed25519NativeSecret
	prefix   string
}

func (e *ed25519Adapter) Ticker() string      { return e.ticker }
func (e *ed25519Adapter) DisplayName() string { return e.name }
func (e *ed25519Adapter) Family() Family      { return FamilyEd25519 }

func (e *ed25519Adapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (e *ed25519Adapter) DefaultAddressType() AddressType { return DefaultType }

func (e *ed25519Adapter) Alphabet(AddressType) map[rune]bool {
	switch e.ticker {
	case "SOL":
		return runeSetFromString(encoding.BitcoinAlphabet)
	case "XLM", "ALGO":
		return runeSetFromString(encoding.RFC4648UpperAlphabet)
	default:
		return runeSetFromString(hexAlphabet)
	}
}

func (e *ed25519Adapter) VisiblePrefix(AddressType) string { return e.prefix }

func (e *ed25519Adapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	return e.build(kp)
}

func (e *ed25519Adapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	return e.build(kp)
}

func (e *ed25519Adapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	return e.deriveFn(kp.Pub), kp.Seed[:], nil
}

func (e *ed25519Adapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr := e.deriveFn(kp.Pub)
	native := hex.EncodeToString(kp.Seed[:])
	if e.nativeFn != nil {
		native = e.nativeFn(kp)
	}
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: native,
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  e.ticker,
		AddressType:  DefaultType,
	}, nil
}

func deriveSolana(pub []byte) string {
	return encoding.Base58Encode(pub)
}

func deriveAptos(pub []byte) string {
	h := cryptoprim.Sha3_256(append(append([]byte{}, pub...), 0x00))
	return "0x" + hex.EncodeToString(h[:])
}

func deriveSui(pub []byte) string {
	h := cryptoprim.Blake2b256(append([]byte{0x00}, pub...))
	return "0x" + hex.EncodeToString(h[:])
}

func deriveNear(pub []byte) string {
	return hex.EncodeToString(pub)
}

func deriveAlgorand(pub []byte) string {
	checksum := sha512.Sum512_256(pub)
	full := append(append([]byte{}, pub...), checksum[28:]...)
	return encoding.Base32Encode(full, false)
}

func deriveStellar(pub []byte) string {
	return encoding.StellarStrKeyEncode(6<<3, pub)
}

// solanaNativeSecret renders the 64-byte seed||pub expanded key as the JSON
// byte array Solana wallets import.
func solanaNativeSecret(kp *cryptoprim.Ed25519Keypair) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range kp.Priv {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// stellarNativeSecret renders the seed as an "S..." StrKey (verbyte 18<<3).
func stellarNativeSecret(kp *cryptoprim.Ed25519Keypair) string {
	return encoding.StellarStrKeyEncode(18<<3, kp.Seed[:])
}

func registerEd25519Family(r *Registry) {
	chains := []struct {
		ticker, name, prefix string
		derive               ed25519Deriver
		native               ed25519NativeSecret
	}{
		{"SOL", "Solana", "", deriveSolana, solanaNativeSecret},
		{"APT", "Aptos", "0x", deriveAptos, nil},
		{"SUI", "Sui", "0x", deriveSui, nil},
		{"NEAR", "NEAR Protocol", "", deriveNear, nil},
		{"ALGO", "Algorand", "", deriveAlgorand, nil},
		{"XLM", "Stellar", "G", deriveStellar, stellarNativeSecret},
		// IOTA shares Sui's exact derivation (blake2b_256(0x00 || pk), hex,
		// 0x-prefixed) per spec.md §6's numeric-constants table, which lists
		// them together as one formula.
		{"IOTA", "IOTA", "0x", deriveSui, nil},
	}
	for _, c := range chains {
		r.register(&ed25519Adapter{ticker: c.ticker, name: c.name, prefix: c.prefix, deriveFn: c.derive, nativeFn: c.native})
	}
}
