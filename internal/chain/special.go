package chain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// moneroAdapter generates a Monero dual-key (spend + view) standard
// address. Unlike every other Ed25519 chain in this registry, Monero does
// not run the RFC-8032 keygen pipeline at all: spend_sk is the random seed
// reduced directly mod the group order (ScReduce32), spend_pub is
// spend_sk·B computed with a raw scalar-basepoint multiply (no SHA-512
// hash-and-clamp in between), and view_sk = ScReduce32(Keccak256(spend_sk))
// with view_pub derived the same way — generate_key_image's formula
// (original_source/.../monero.rs), encoded with Monero's block Base58 over
// network-byte || spend_pub || view_pub || checksum[:4]
// (other_examples/.../pkgs-address-monero.go.go).
type moneroAdapter struct{}

func newMonero() Adapter { return &moneroAdapter{} }

const moneroMainnetNetworkByte = 0x12

func (m *moneroAdapter) Ticker() string                  { return "XMR" }
func (m *moneroAdapter) DisplayName() string             { return "Monero" }
func (m *moneroAdapter) Family() Family                  { return FamilySpecialised }
func (m *moneroAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (m *moneroAdapter) DefaultAddressType() AddressType { return DefaultType }
func (m *moneroAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.BitcoinAlphabet)
}
func (m *moneroAdapter) VisiblePrefix(AddressType) string { return "4" }

// moneroKeys holds the canonical (already-reduced) scalars and their
// basepoint-multiplied public keys for both the spend and view keypairs.
type moneroKeys struct {
	spendSk, spendPub, viewSk, viewPub []byte
}

func (m *moneroAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	seed, err := cryptoprim.RandomSeed32()
	if err != nil {
		return nil, fmt.Errorf("chain/XMR: %w", err)
	}
	return m.build(seed[:])
}

func (m *moneroAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	if len(secret) != 32 {
		return nil, fmt.Errorf("chain/XMR: secret must be 32 bytes, got %d", len(secret))
	}
	return m.build(secret)
}

func (m *moneroAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	seed, err := cryptoprim.RandomSeed32()
	if err != nil {
		return "", nil, fmt.Errorf("chain/XMR: %w", err)
	}
	keys, err := m.deriveKeys(seed[:])
	if err != nil {
		return "", nil, err
	}
	return m.encodeAddress(keys), seed[:], nil
}

func (m *moneroAdapter) build(seed []byte) (*GeneratedAddress, error) {
	keys, err := m.deriveKeys(seed)
	if err != nil {
		return nil, err
	}
	addr := m.encodeAddress(keys)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(seed),
		SecretNative: hex.EncodeToString(keys.spendSk) + hex.EncodeToString(keys.viewSk),
		PubKeyHex:    hex.EncodeToString(keys.spendPub),
		ChainTicker:  "XMR",
		AddressType:  DefaultType,
	}, nil
}

// deriveKeys implements generate_key_image's formula
// (original_source/.../monero.rs), not the RFC-8032 keygen pipeline: the
// seed is reduced mod the group order to get the spend scalar directly,
// and both public keys are a raw scalar·B rather than a hash-and-clamp
// derived point.
func (m *moneroAdapter) deriveKeys(seed []byte) (*moneroKeys, error) {
	spendSkArr := cryptoprim.ScReduce32(seed)
	spendSk := spendSkArr[:]
	spendPub, err := cryptoprim.ScalarBaseMult(spendSk)
	if err != nil {
		return nil, fmt.Errorf("chain/XMR: spend key: %w", err)
	}

	hash := cryptoprim.Keccak256(spendSk)
	viewSkArr := cryptoprim.ScReduce32(hash[:])
	viewSk := viewSkArr[:]
	viewPub, err := cryptoprim.ScalarBaseMult(viewSk)
	if err != nil {
		return nil, fmt.Errorf("chain/XMR: view key: %w", err)
	}

	return &moneroKeys{
		spendSk:  spendSk,
		spendPub: spendPub,
		viewSk:   viewSk,
		viewPub:  viewPub,
	}, nil
}

func (m *moneroAdapter) encodeAddress(keys *moneroKeys) string {
	body := make([]byte, 0, 1+32+32)
	body = append(body, moneroMainnetNetworkByte)
	body = append(body, keys.spendPub...)
	body = append(body, keys.viewPub...)

	checksum := cryptoprim.Keccak256(body)
	full := append(body, checksum[:4]...)
	return encoding.MoneroBase58Encode(full)
}

// filecoinAdapter generates an f1 (secp256k1) Filecoin address: Blake2b-160
// of the uncompressed pubkey, protocol byte 1, Base32-lowercase payload and
// a 4-byte Blake2b-checksum suffix, "f1" + checksum-qualified body.
type filecoinAdapter struct{}

func newFilecoin() Adapter { return &filecoinAdapter{} }

func (f *filecoinAdapter) Ticker() string                  { return "FIL" }
func (f *filecoinAdapter) DisplayName() string             { return "Filecoin" }
func (f *filecoinAdapter) Family() Family                  { return FamilySpecialised }
func (f *filecoinAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (f *filecoinAdapter) DefaultAddressType() AddressType { return DefaultType }
func (f *filecoinAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.RFC4648LowerAlphabet)
}
func (f *filecoinAdapter) VisiblePrefix(AddressType) string { return "f1" }

func (f *filecoinAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/FIL: %w", err)
	}
	return f.build(kp)
}

func (f *filecoinAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/FIL: %w", err)
	}
	return f.build(kp)
}

func (f *filecoinAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/FIL: %w", err)
	}
	return f.deriveAddress(kp), kp.Secret[:], nil
}

func (f *filecoinAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr := f.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: hex.EncodeToString(kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "FIL",
		AddressType:  DefaultType,
	}, nil
}

func (f *filecoinAdapter) deriveAddress(kp *cryptoprim.Secp256k1Keypair) string {
	payload := cryptoprim.Blake2b160(kp.Pub.SerializeUncompressed())

	checksumPreimage := append([]byte{0x01}, payload...)
	checksum := cryptoprim.Blake2bChecksum4(checksumPreimage)

	body := append(append([]byte{}, payload...), checksum...)
	return "f1" + encoding.Base32Encode(body, true)
}

// cardanoAdapter generates an enterprise (no staking component) Shelley
// address: header byte 0x61 || Blake2b-224(ed25519 pubkey), Bech32 with HRP
// "addr" (other_examples/.../pkgs-address-cardano.go.go).
type cardanoAdapter struct{}

func newCardano() Adapter { return &cardanoAdapter{} }

const cardanoEnterpriseHeader = 0x61

func (c *cardanoAdapter) Ticker() string                  { return "ADA" }
func (c *cardanoAdapter) DisplayName() string             { return "Cardano" }
func (c *cardanoAdapter) Family() Family                  { return FamilySpecialised }
func (c *cardanoAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (c *cardanoAdapter) DefaultAddressType() AddressType { return DefaultType }
func (c *cardanoAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString("023456789acdefghjklmnpqrstuvwxyz")
}
func (c *cardanoAdapter) VisiblePrefix(AddressType) string { return "addr1" }

func (c *cardanoAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/ADA: %w", err)
	}
	return c.build(kp)
}

func (c *cardanoAdapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/ADA: %w", err)
	}
	return c.build(kp)
}

func (c *cardanoAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/ADA: %w", err)
	}
	addr, err := c.deriveAddress(kp)
	if err != nil {
		return "", nil, err
	}
	return addr, kp.Seed[:], nil
}

func (c *cardanoAdapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr, err := c.deriveAddress(kp)
	if err != nil {
		return nil, err
	}
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: hex.EncodeToString(kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  "ADA",
		AddressType:  DefaultType,
	}, nil
}

func (c *cardanoAdapter) deriveAddress(kp *cryptoprim.Ed25519Keypair) (string, error) {
	payload := cryptoprim.Blake2b224(kp.Pub)
	body := append([]byte{cardanoEnterpriseHeader}, payload...)
	return encoding.EncodeBech32Plain("addr", body)
}

// tezosAdapter generates a tz1 (ed25519) implicit account: Base58Check of a
// 3-byte prefix [6, 161, 159] (chosen so the Base58 output always begins
// "tz1") followed by Blake2b-160 of the raw pubkey.
type tezosAdapter struct{}

func newTezos() Adapter { return &tezosAdapter{} }

var (
	tz1Prefix  = []byte{6, 161, 159}
	edskPrefix = []byte{43, 246, 78, 7} // unencrypted ed25519 seed, "edsk..."
)

func (t *tezosAdapter) Ticker() string                  { return "XTZ" }
func (t *tezosAdapter) DisplayName() string             { return "Tezos" }
func (t *tezosAdapter) Family() Family                  { return FamilySpecialised }
func (t *tezosAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (t *tezosAdapter) DefaultAddressType() AddressType { return DefaultType }
func (t *tezosAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.BitcoinAlphabet)
}
func (t *tezosAdapter) VisiblePrefix(AddressType) string { return "tz1" }

func (t *tezosAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/XTZ: %w", err)
	}
	return t.build(kp)
}

func (t *tezosAdapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/XTZ: %w", err)
	}
	return t.build(kp)
}

func (t *tezosAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/XTZ: %w", err)
	}
	return t.deriveAddress(kp), kp.Seed[:], nil
}

func (t *tezosAdapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr := t.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: base58CheckTz(edskPrefix, kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  "XTZ",
		AddressType:  DefaultType,
	}, nil
}

func (t *tezosAdapter) deriveAddress(kp *cryptoprim.Ed25519Keypair) string {
	hash := cryptoprim.Blake2b160(kp.Pub)
	return base58CheckTz(tz1Prefix, hash)
}

func base58CheckTz(prefix, payload []byte) string {
	body := append(append([]byte{}, prefix...), payload...)
	checksum := cryptoprim.DoubleSha256(body)
	full := append(body, checksum[:4]...)
	return encoding.Base58Encode(full)
}

// stacksAdapter generates a Stacks (STX) address: secp256k1, HASH160 of the
// compressed pubkey, c32check over version byte 22 (mainnet single-sig),
// with visible prefix "SP".
type stacksAdapter struct{}

func newStacks() Adapter { return &stacksAdapter{} }

const stacksMainnetSingleSigVersion = 22

func (s *stacksAdapter) Ticker() string                  { return "STX" }
func (s *stacksAdapter) DisplayName() string             { return "Stacks" }
func (s *stacksAdapter) Family() Family                  { return FamilySpecialised }
func (s *stacksAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (s *stacksAdapter) DefaultAddressType() AddressType { return DefaultType }
func (s *stacksAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.CrockfordAlphabet)
}
func (s *stacksAdapter) VisiblePrefix(AddressType) string { return "SP" }

func (s *stacksAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/STX: %w", err)
	}
	return s.build(kp)
}

func (s *stacksAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/STX: %w", err)
	}
	return s.build(kp)
}

func (s *stacksAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/STX: %w", err)
	}
	return s.deriveAddress(kp), kp.Secret[:], nil
}

func (s *stacksAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr := s.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: encoding.WIFCompressed(0x80, kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "STX",
		AddressType:  DefaultType,
	}, nil
}

func (s *stacksAdapter) deriveAddress(kp *cryptoprim.Secp256k1Keypair) string {
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	return "SP" + encoding.C32CheckEncode(stacksMainnetSingleSigVersion, hash)
}

// nanoAdapter generates a Nano account: ed25519 keypair, Nano's custom
// Base32 alphabet over the raw pubkey, with a 5-byte Blake2b checksum
// suffix (reversed byte order, Nano's one real divergence from a plain
// Base32-of-hash scheme).
type nanoAdapter struct{}

func newNano() Adapter { return &nanoAdapter{} }

func (n *nanoAdapter) Ticker() string                  { return "NANO" }
func (n *nanoAdapter) DisplayName() string             { return "Nano" }
func (n *nanoAdapter) Family() Family                  { return FamilySpecialised }
func (n *nanoAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (n *nanoAdapter) DefaultAddressType() AddressType { return DefaultType }
func (n *nanoAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.NanoAlphabet)
}
func (n *nanoAdapter) VisiblePrefix(AddressType) string { return "nano_" }

func (n *nanoAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/NANO: %w", err)
	}
	return n.build(kp)
}

func (n *nanoAdapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/NANO: %w", err)
	}
	return n.build(kp)
}

func (n *nanoAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/NANO: %w", err)
	}
	return n.deriveAddress(kp), kp.Seed[:], nil
}

func (n *nanoAdapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr := n.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: hex.EncodeToString(kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  "NANO",
		AddressType:  DefaultType,
	}, nil
}

func (n *nanoAdapter) deriveAddress(kp *cryptoprim.Ed25519Keypair) string {
	// The checksum is the last 5 bytes of Blake2b-256(pubkey), byte-reversed,
	// which encodes to exactly 8 Base32 characters.
	digest := cryptoprim.Blake2b256(kp.Pub)
	tail := digest[len(digest)-5:]
	reversed := make([]byte, len(tail))
	for i, b := range tail {
		reversed[len(tail)-1-i] = b
	}

	// Pubkey and checksum are each Base32-encoded separately and
	// concatenated: 52 chars for the key, 8 for the checksum.
	return "nano_" + encoding.NanoEncode(kp.Pub) + encoding.NanoEncode(reversed)
}

// ss58Adapter covers Substrate/Polkadot-ecosystem chains sharing the SS58
// address format: ed25519 keypair, SS58Encode(prefix, pubkey).
type ss58Adapter struct {
	ticker, name string
	prefix       uint16
}

func (s *ss58Adapter) Ticker() string                  { return s.ticker }
func (s *ss58Adapter) DisplayName() string             { return s.name }
func (s *ss58Adapter) Family() Family                  { return FamilySpecialised }
func (s *ss58Adapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (s *ss58Adapter) DefaultAddressType() AddressType { return DefaultType }
func (s *ss58Adapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.BitcoinAlphabet)
}
// VisiblePrefix: Polkadot's network byte 0x00 always Base58-encodes to a
// leading '1'. Nonzero prefixes don't pin a single guaranteed character, so
// the other registered networks report none.
func (s *ss58Adapter) VisiblePrefix(AddressType) string {
	if s.prefix == 0 {
		return "1"
	}
	return ""
}

func (s *ss58Adapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", s.ticker, err)
	}
	return s.build(kp)
}

func (s *ss58Adapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", s.ticker, err)
	}
	return s.build(kp)
}

func (s *ss58Adapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", s.ticker, err)
	}
	addr, err := encoding.SS58Encode(s.prefix, kp.Pub)
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", s.ticker, err)
	}
	return addr, kp.Seed[:], nil
}

func (s *ss58Adapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr, err := encoding.SS58Encode(s.prefix, kp.Pub)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", s.ticker, err)
	}
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: hex.EncodeToString(kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  s.ticker,
		AddressType:  DefaultType,
	}, nil
}

// tonAdapter generates a TON "user-friendly" address: an ed25519 keypair
// whose raw public key stands in for the 32-byte account identifier (TON
// accounts are normally the hash of a deployed contract's init code, out
// of scope for a vanity-key generator with no contract deployment step),
// wrapped as flags(0x11, bounceable) || workchain(0x00, basechain) ||
// account || CRC16-CCITT(...), URL-safe Base64 with no padding
// (spec.md §4.2's "TON user-friendly" row).
type tonAdapter struct{}

func newTON() Adapter { return &tonAdapter{} }

const (
	tonBounceableFlag = 0x11
	tonBasechain      = 0x00
)

func (t *tonAdapter) Ticker() string                  { return "TON" }
func (t *tonAdapter) DisplayName() string             { return "TON" }
func (t *tonAdapter) Family() Family                  { return FamilySpecialised }
func (t *tonAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (t *tonAdapter) DefaultAddressType() AddressType { return DefaultType }
func (t *tonAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.Base64URLAlphabet)
}
// VisiblePrefix is "EQ": the fixed flags||workchain bytes (0x11, 0x00)
// base64url-encode to the same two leading characters for every key.
func (t *tonAdapter) VisiblePrefix(AddressType) string { return "EQ" }

func (t *tonAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/TON: %w", err)
	}
	return t.build(kp)
}

func (t *tonAdapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/TON: %w", err)
	}
	return t.build(kp)
}

func (t *tonAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/TON: %w", err)
	}
	return t.deriveAddress(kp), kp.Seed[:], nil
}

func (t *tonAdapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr := t.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: hex.EncodeToString(kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  "TON",
		AddressType:  DefaultType,
	}, nil
}

func (t *tonAdapter) deriveAddress(kp *cryptoprim.Ed25519Keypair) string {
	body := make([]byte, 0, 2+32)
	body = append(body, tonBounceableFlag, tonBasechain)
	body = append(body, kp.Pub...)
	crc := encoding.CRC16CCITTBE(body)
	full := append(body, crc[0], crc[1])
	return encoding.Base64URLEncode(full)
}

// icpAdapter generates an Internet Computer self-authenticating Principal:
// Base32-lower of sha224(DER(ed25519 pubkey)) || 0x02, hyphenated in groups
// of 5 characters (spec.md §6's "ICP Principal" row). The DER prefix is the
// fixed RFC-8410 SubjectPublicKeyInfo header for an Ed25519 key — it never
// varies, so it's a constant rather than a general ASN.1 encoder.
type icpAdapter struct{}

func newICP() Adapter { return &icpAdapter{} }

var icpEd25519DERPrefix = []byte{0x30, 0x2a, 0x30, 0x05, 0x06, 0x03, 0x2b, 0x65, 0x70, 0x03, 0x21, 0x00}

const icpSelfAuthenticatingSuffix = 0x02

func (i *icpAdapter) Ticker() string                  { return "ICP" }
func (i *icpAdapter) DisplayName() string             { return "Internet Computer" }
func (i *icpAdapter) Family() Family                  { return FamilySpecialised }
func (i *icpAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (i *icpAdapter) DefaultAddressType() AddressType { return DefaultType }
func (i *icpAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromStrings(encoding.RFC4648LowerAlphabet, "-")
}
func (i *icpAdapter) VisiblePrefix(AddressType) string { return "" }

func (i *icpAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("chain/ICP: %w", err)
	}
	return i.build(kp)
}

func (i *icpAdapter) GenerateFromSecret(seed []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Ed25519FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("chain/ICP: %w", err)
	}
	return i.build(kp)
}

func (i *icpAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateEd25519()
	if err != nil {
		return "", nil, fmt.Errorf("chain/ICP: %w", err)
	}
	return i.deriveAddress(kp), kp.Seed[:], nil
}

func (i *icpAdapter) build(kp *cryptoprim.Ed25519Keypair) (*GeneratedAddress, error) {
	addr := i.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Seed[:]),
		SecretNative: hex.EncodeToString(kp.Seed[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub),
		ChainTicker:  "ICP",
		AddressType:  DefaultType,
	}, nil
}

func (i *icpAdapter) deriveAddress(kp *cryptoprim.Ed25519Keypair) string {
	der := append(append([]byte{}, icpEd25519DERPrefix...), kp.Pub...)
	digest := cryptoprim.Sha224(der)
	full := append(digest[:], icpSelfAuthenticatingSuffix)
	encoded := encoding.Base32Encode(full, true)

	var sb strings.Builder
	for idx, c := range encoded {
		if idx > 0 && idx%5 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// xrpAdapter generates an XRPL classic address: secp256k1 keygen, HASH160 of
// the compressed pubkey, Base58Check against the XRPL alphabet with account
// version 0x00 (which renders the leading character as 'r').
type xrpAdapter struct{}

func newXRP() Adapter { return &xrpAdapter{} }

func (x *xrpAdapter) Ticker() string                  { return "XRP" }
func (x *xrpAdapter) DisplayName() string             { return "XRP Ledger" }
func (x *xrpAdapter) Family() Family                  { return FamilySpecialised }
func (x *xrpAdapter) SupportedTypes() []AddressType   { return []AddressType{DefaultType} }
func (x *xrpAdapter) DefaultAddressType() AddressType { return DefaultType }
func (x *xrpAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.RippleAlphabet)
}
func (x *xrpAdapter) VisiblePrefix(AddressType) string { return "r" }

func (x *xrpAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/XRP: %w", err)
	}
	return x.build(kp)
}

func (x *xrpAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/XRP: %w", err)
	}
	return x.build(kp)
}

func (x *xrpAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/XRP: %w", err)
	}
	return x.deriveAddress(kp), kp.Secret[:], nil
}

func (x *xrpAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	addr := x.deriveAddress(kp)
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: hex.EncodeToString(kp.Secret[:]),
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "XRP",
		AddressType:  DefaultType,
	}, nil
}

func (x *xrpAdapter) deriveAddress(kp *cryptoprim.Secp256k1Keypair) string {
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	return encoding.XrplBase58CheckEncode(0x00, hash)
}

func registerSpecialisedFamily(r *Registry) {
	r.register(newMonero())
	r.register(newXRP())
	r.register(newFilecoin())
	r.register(newCardano())
	r.register(newTezos())
	r.register(newStacks())
	r.register(newNano())
	r.register(newTON())
	r.register(newICP())

	ss58Chains := []struct {
		ticker, name string
		prefix       uint16
	}{
		{"DOT", "Polkadot", 0},
		{"KSM", "Kusama", 2},
		{"ACA", "Acala", 10},
		{"CFG", "Centrifuge", 36},
		{"HDX", "HydraDX", 63},
	}
	for _, c := range ss58Chains {
		r.register(&ss58Adapter{ticker: c.ticker, name: c.name, prefix: c.prefix})
	}

	r.alias("XNO", "NANO")
}
