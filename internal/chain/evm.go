package chain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// evmAdapter implements every EVM-compatible chain with one recipe:
// secp256k1 keygen, Keccak-256(pubkey[1:]) truncated to the low 20 bytes,
// EIP-55 mixed-case checksum hex. Chains differ only in ticker/display
// name, matching the teacher's single CPUGenerator.workerEthereum path and
// the factory.go pattern of one NewEVMAddress(chainID) constructor per
// ticker (other_examples/.../factory.go).
type evmAdapter struct {
	ticker string
	name   string
}

func newEVM(ticker, name string) *evmAdapter {
	return &evmAdapter{ticker: ticker, name: name}
}

func (e *evmAdapter) Ticker() string      { return e.ticker }
func (e *evmAdapter) DisplayName() string { return e.name }
func (e *evmAdapter) Family() Family      { return FamilyEVM }

func (e *evmAdapter) SupportedTypes() []AddressType    { return []AddressType{DefaultType} }
func (e *evmAdapter) DefaultAddressType() AddressType  { return DefaultType }

func (e *evmAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(hexAlphabet)
}

func (e *evmAdapter) VisiblePrefix(AddressType) string { return "0x" }

func (e *evmAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	return e.build(kp)
}

func (e *evmAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	return e.build(kp)
}

func (e *evmAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", e.ticker, err)
	}
	addr := e.deriveAddress(kp.Pub.SerializeUncompressed())
	return addr, kp.Secret[:], nil
}

func (e *evmAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr := e.deriveAddress(kp.Pub.SerializeUncompressed())
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    "0x" + hex.EncodeToString(kp.Secret[:]),
		SecretNative: "0x" + hex.EncodeToString(kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  e.ticker,
		AddressType:  DefaultType,
	}, nil
}

// deriveAddress computes an EVM address from an uncompressed (65-byte,
// 0x04-prefixed) public key: Keccak256(pubkey[1:])[12:], EIP-55 checksummed.
func (e *evmAdapter) deriveAddress(uncompressedPub []byte) string {
	hash := cryptoprim.Keccak256(uncompressedPub[1:])
	raw := hash[12:]
	lower := strings.ToLower(hex.EncodeToString(raw))
	return encoding.EIP55Checksum(lower)
}

func registerEVMFamily(r *Registry) {
	evmChains := []struct{ ticker, name string }{
		{"ETH", "Ethereum"},
		{"BSC", "BNB Smart Chain"},
		{"MATIC", "Polygon"},
		{"ARB", "Arbitrum One"},
		{"OP", "Optimism"},
		{"AVAX", "Avalanche C-Chain"},
		{"FTM", "Fantom"},
		{"BASE", "Base"},
		{"ETC", "Ethereum Classic"},
		// Hedera's EVM-alias address is the exact same recipe as any other
		// EVM chain (spec.md §6: "Hedera alias = EVM derivation"); this
		// adapter does not attempt the native 0.0.<num> account-ID form,
		// which isn't derivable from a key in isolation.
		{"HBAR", "Hedera (EVM alias)"},
	}
	for _, c := range evmChains {
		r.register(newEVM(c.ticker, c.name))
	}
	r.alias("POL", "MATIC")
	r.alias("AVALANCHE", "AVAX")
	r.alias("USDT", "ETH")
	r.alias("USDT-ERC20", "ETH")
}
