package chain

import (
	"encoding/hex"
	"fmt"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// tronAdapter derives Tron's Base58Check addresses: secp256k1 keygen,
// Keccak256(uncompressed_pub[1:])[12:] exactly like EVM, then Base58Check
// with Tron's 0x41 version byte instead of EIP-55 hex (teacher's
// pkg/generator/tron/address.go).
type tronAdapter struct{}

func newTron() Adapter { return &tronAdapter{} }

func (t *tronAdapter) Ticker() string                  { return "TRX" }
func (t *tronAdapter) DisplayName() string             { return "Tron" }
func (t *tronAdapter) Family() Family                  { return FamilyUTXO }
func (t *tronAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (t *tronAdapter) DefaultAddressType() AddressType { return DefaultType }
func (t *tronAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.BitcoinAlphabet)
}
func (t *tronAdapter) VisiblePrefix(AddressType) string { return "T" }

const tronAddressVersion = 0x41

func (t *tronAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/TRX: %w", err)
	}
	return t.build(kp)
}

func (t *tronAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/TRX: %w", err)
	}
	return t.build(kp)
}

func (t *tronAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/TRX: %w", err)
	}
	return t.deriveAddress(kp), kp.Secret[:], nil
}

func (t *tronAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr := t.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: hex.EncodeToString(kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "TRX",
		AddressType:  DefaultType,
	}, nil
}

func (t *tronAdapter) deriveAddress(kp *cryptoprim.Secp256k1Keypair) string {
	uncompressed := kp.Pub.SerializeUncompressed()
	hash := cryptoprim.Keccak256(uncompressed[1:])
	return encoding.Base58CheckEncodeV1(tronAddressVersion, hash[12:])
}
