package chain

import (
	"encoding/hex"
	"fmt"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// cosmosAdapter implements the Cosmos SDK address recipe: secp256k1
// keygen, HASH160 (SHA256 then RIPEMD160) of the compressed pubkey, plain
// Bech32 (no witness version byte) with a chain-specific HRP. One recipe
// serves every Cosmos SDK chain, parameterized only by HRP and ticker,
// generalizing the teacher's per-network worker split
// (pkg/generator/generator.go's Network enum) the way
// other_examples/.../factory.go generalizes NewCosmosAddress(hrp).
type cosmosAdapter struct {
	ticker string
	name   string
	hrp    string
}

func (c *cosmosAdapter) Ticker() string      { return c.ticker }
func (c *cosmosAdapter) DisplayName() string { return c.name }
func (c *cosmosAdapter) Family() Family      { return FamilyCosmos }

func (c *cosmosAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (c *cosmosAdapter) DefaultAddressType() AddressType { return DefaultType }

func (c *cosmosAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString("023456789acdefghjklmnpqrstuvwxyz")
}

func (c *cosmosAdapter) VisiblePrefix(AddressType) string { return c.hrp + "1" }

func (c *cosmosAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", c.ticker, err)
	}
	return c.build(kp)
}

func (c *cosmosAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", c.ticker, err)
	}
	return c.build(kp)
}

func (c *cosmosAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", c.ticker, err)
	}
	addr, err := c.deriveAddress(kp)
	if err != nil {
		return "", nil, err
	}
	return addr, kp.Secret[:], nil
}

func (c *cosmosAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr, err := c.deriveAddress(kp)
	if err != nil {
		return nil, err
	}
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: hex.EncodeToString(kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  c.ticker,
		AddressType:  DefaultType,
	}, nil
}

func (c *cosmosAdapter) deriveAddress(kp *cryptoprim.Secp256k1Keypair) (string, error) {
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	return encoding.EncodeBech32Plain(c.hrp, hash)
}

func registerCosmosFamily(r *Registry) {
	chains := []struct{ ticker, name, hrp string }{
		{"ATOM", "Cosmos Hub", "cosmos"},
		{"OSMO", "Osmosis", "osmo"},
		{"JUNO", "Juno", "juno"},
		{"SCRT", "Secret Network", "secret"},
		{"BNB", "BNB Beacon Chain", "bnb"},
		{"AKT", "Akash Network", "akash"},
		{"EVMOS", "Evmos", "evmos"},
	}
	for _, c := range chains {
		r.register(&cosmosAdapter{ticker: c.ticker, name: c.name, hrp: c.hrp})
	}
}
