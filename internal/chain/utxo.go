package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
	"github.com/omnivanity/omnivanity/internal/encoding"
)

// utxoAdapter implements the Bitcoin-family recipe: secp256k1 keygen,
// HASH160 of the compressed pubkey, Base58Check (legacy/nested-segwit) or
// Bech32/Bech32m (native segwit/taproot) encoding, WIF native secret
// format. One struct, parameterized per ticker, covering every
// Bitcoin-derived chain in the registry.
type utxoAdapter struct {
	ticker         string
	name           string
	p2pkhVersion   byte
	p2shVersion    byte
	wifVersion     byte
	bech32HRP      string // "" if the chain has no native-segwit/taproot form
	supportsTaproot bool
	// xOnlySegwitPayload is Kaspa's one divergence from the generic
	// P2WPKH SegWitBech32 path: the program is the 32-byte x-coordinate
	// of the compressed pubkey (Schnorr-style), not Hash160 of it
	// (original_source/.../kaspa.rs's kaspa_bech32_encode).
	xOnlySegwitPayload bool
	types              []AddressType
}

func (u *utxoAdapter) Ticker() string      { return u.ticker }
func (u *utxoAdapter) DisplayName() string { return u.name }
func (u *utxoAdapter) Family() Family      { return FamilyUTXO }

func (u *utxoAdapter) SupportedTypes() []AddressType { return u.types }

func (u *utxoAdapter) DefaultAddressType() AddressType {
	if u.bech32HRP != "" {
		if u.supportsTaproot {
			return Taproot
		}
		return SegWitBech32
	}
	return Legacy
}

func (u *utxoAdapter) Alphabet(t AddressType) map[rune]bool {
	if t == DefaultType {
		t = u.DefaultAddressType()
	}
	if t == SegWitBech32 || t == Taproot {
		return runeSetFromString("023456789acdefghjklmnpqrstuvwxyzACDEFGHJKLMNPQRSTUVWXYZ")
	}
	return runeSetFromString(encoding.BitcoinAlphabet)
}

func (u *utxoAdapter) VisiblePrefix(t AddressType) string {
	if t == DefaultType {
		t = u.DefaultAddressType()
	}
	switch t {
	case Legacy:
		return addressPrefixChar(u.p2pkhVersion)
	case NestedSegWit:
		return addressPrefixChar(u.p2shVersion)
	case SegWitBech32:
		return u.bech32HRP + "1q"
	case Taproot:
		return u.bech32HRP + "1p"
	default:
		return ""
	}
}

// addressPrefixChar returns the single leading Base58Check character a
// given version byte produces — version 0 -> '1', 0x30 -> 'L', 0x32 -> 'M', etc.
// This mirrors bitcoin.AddressPrefix in the teacher, generalized from a
// fixed switch to a byte-keyed lookup.
func addressPrefixChar(version byte) string {
	switch version {
	case 0x00:
		return "1"
	case 0x05:
		return "3"
	case 0x30, 0x31:
		return "L"
	case 0x32:
		return "M"
	case 0x1E:
		return "D"
	case 0x4C:
		return "X"
	case 0x3C:
		return "R"
	default:
		return ""
	}
}

func (u *utxoAdapter) Generate(t AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", u.ticker, err)
	}
	return u.build(kp, t)
}

func (u *utxoAdapter) GenerateFromSecret(secret []byte, t AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/%s: %w", u.ticker, err)
	}
	return u.build(kp, t)
}

func (u *utxoAdapter) GenerateAddressOnly(t AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/%s: %w", u.ticker, err)
	}
	addr, err := u.deriveAddress(kp.Pub, t)
	if err != nil {
		return "", nil, err
	}
	return addr, kp.Secret[:], nil
}

func (u *utxoAdapter) build(kp *cryptoprim.Secp256k1Keypair, t AddressType) (*GeneratedAddress, error) {
	addr, err := u.deriveAddress(kp.Pub, t)
	if err != nil {
		return nil, err
	}

	wifPayload := append(append([]byte{}, kp.Secret[:]...), 0x01)
	wif := encoding.Base58CheckEncodeV1(u.wifVersion, wifPayload)

	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: wif,
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  u.ticker,
		AddressType:  t,
	}, nil
}

func (u *utxoAdapter) deriveAddress(pub *btcec.PublicKey, t AddressType) (string, error) {
	switch t {
	case DefaultType:
		return u.deriveAddress(pub, u.DefaultAddressType())
	case Legacy:
		hash := cryptoprim.Hash160(pub.SerializeCompressed())
		return encoding.Base58CheckEncodeV1(u.p2pkhVersion, hash), nil
	case NestedSegWit:
		pubHash := cryptoprim.Hash160(pub.SerializeCompressed())
		witnessProgram := make([]byte, 0, 22)
		witnessProgram = append(witnessProgram, 0x00, 0x14)
		witnessProgram = append(witnessProgram, pubHash...)
		scriptHash := cryptoprim.Hash160(witnessProgram)
		return encoding.Base58CheckEncodeV1(u.p2shVersion, scriptHash), nil
	case SegWitBech32:
		if u.bech32HRP == "" {
			return "", fmt.Errorf("chain/%s: no native segwit form", u.ticker)
		}
		if u.xOnlySegwitPayload {
			compressed := pub.SerializeCompressed()
			return encoding.EncodeSegwitAddress(u.bech32HRP, 0, compressed[1:33])
		}
		hash := cryptoprim.Hash160(pub.SerializeCompressed())
		return encoding.EncodeSegwitAddress(u.bech32HRP, 0, hash)
	case Taproot:
		if u.bech32HRP == "" {
			return "", fmt.Errorf("chain/%s: no taproot form", u.ticker)
		}
		return deriveTaprootAddress(u.bech32HRP, pub)
	default:
		return "", fmt.Errorf("chain/%s: unsupported address type %s", u.ticker, t)
	}
}

// deriveTaprootAddress resolves Open Question (a): it tweaks the key per
// BIP-341's key-path formula, which IS a faithful Taproot output-key
// derivation for a key-path-only spend with no script tree, so this
// implementation resolves the open question by implementing the real
// tweak rather than refusing the type (see DESIGN.md).
func deriveTaprootAddress(hrp string, pub *btcec.PublicKey) (string, error) {
	xOnly := schnorr.SerializePubKey(pub)
	tweak := taggedHash("TapTweak", xOnly)

	// The tweak is added to the even-y point with this x-coordinate, which
	// is pub itself or its negation.
	internal, err := schnorr.ParsePubKey(xOnly)
	if err != nil {
		return "", fmt.Errorf("chain: taproot internal key: %w", err)
	}

	var tweakScalar btcec.ModNScalar
	tweakScalar.SetBytes((*[32]byte)(tweak))

	var tweakPoint btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&tweakScalar, &tweakPoint)

	var pubJacobian btcec.JacobianPoint
	internal.AsJacobian(&pubJacobian)

	var result btcec.JacobianPoint
	btcec.AddNonConst(&pubJacobian, &tweakPoint, &result)
	result.ToAffine()

	tweaked := btcec.NewPublicKey(&result.X, &result.Y)
	tweakedXOnly := schnorr.SerializePubKey(tweaked)

	return encoding.EncodeSegwitAddress(hrp, 1, tweakedXOnly)
}

func taggedHash(tag string, data []byte) []byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(data)
	return h.Sum(nil)
}

func registerUTXOFamily(r *Registry) {
	btc := &utxoAdapter{
		ticker: "BTC", name: "Bitcoin",
		p2pkhVersion: 0x00, p2shVersion: 0x05, wifVersion: 0x80,
		bech32HRP: "bc", supportsTaproot: true,
		types: []AddressType{Legacy, NestedSegWit, SegWitBech32, Taproot},
	}
	ltc := &utxoAdapter{
		ticker: "LTC", name: "Litecoin",
		p2pkhVersion: 0x30, p2shVersion: 0x32, wifVersion: 0xB0,
		bech32HRP: "ltc",
		types: []AddressType{Legacy, NestedSegWit, SegWitBech32},
	}
	doge := &utxoAdapter{
		ticker: "DOGE", name: "Dogecoin",
		p2pkhVersion: 0x1E, p2shVersion: 0x16, wifVersion: 0x9E,
		types: []AddressType{Legacy},
	}
	dash := &utxoAdapter{
		ticker: "DASH", name: "Dash",
		p2pkhVersion: 0x4C, p2shVersion: 0x10, wifVersion: 0xCC,
		types: []AddressType{Legacy},
	}
	dgb := &utxoAdapter{
		ticker: "DGB", name: "DigiByte",
		p2pkhVersion: 0x1E, p2shVersion: 0x3F, wifVersion: 0x80,
		bech32HRP: "dgb",
		types: []AddressType{Legacy, SegWitBech32},
	}
	rvn := &utxoAdapter{
		ticker: "RVN", name: "Ravencoin",
		p2pkhVersion: 0x3C, p2shVersion: 0x7A, wifVersion: 0x80,
		types: []AddressType{Legacy},
	}
	kaspa := &utxoAdapter{
		ticker: "KAS", name: "Kaspa",
		bech32HRP:          "kaspa",
		xOnlySegwitPayload: true,
		types:              []AddressType{SegWitBech32},
	}

	for _, a := range []*utxoAdapter{btc, ltc, doge, dash, dgb, rvn, kaspa} {
		r.register(a)
	}

	r.register(newZcash())
	r.register(newBitcoinCash())
	r.register(newTron())

	r.alias("XDG", "DOGE")
}

// zcashAdapter is Zcash's t-addr variant: Base58Check with a two-byte
// version prefix.
type zcashAdapter struct{}

func newZcash() Adapter { return &zcashAdapter{} }

func (z *zcashAdapter) Ticker() string                 { return "ZEC" }
func (z *zcashAdapter) DisplayName() string            { return "Zcash" }
func (z *zcashAdapter) Family() Family                 { return FamilyUTXO }
func (z *zcashAdapter) SupportedTypes() []AddressType  { return []AddressType{DefaultType} }
func (z *zcashAdapter) DefaultAddressType() AddressType { return DefaultType }
func (z *zcashAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString(encoding.BitcoinAlphabet)
}
func (z *zcashAdapter) VisiblePrefix(AddressType) string { return "t1" }

var zcashTAddrVersion = [2]byte{0x1C, 0xB8}

func (z *zcashAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/ZEC: %w", err)
	}
	return z.build(kp)
}

func (z *zcashAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/ZEC: %w", err)
	}
	return z.build(kp)
}

func (z *zcashAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/ZEC: %w", err)
	}
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	return encoding.Base58CheckEncodeV2(zcashTAddrVersion, hash), kp.Secret[:], nil
}

func (z *zcashAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	addr := encoding.Base58CheckEncodeV2(zcashTAddrVersion, hash)
	wif := encoding.WIFCompressed(0x80, kp.Secret[:]) // Zcash WIF is the same as Bitcoin's
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: wif,
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "ZEC",
		AddressType:  DefaultType,
	}, nil
}

// bchAdapter is Bitcoin Cash's CashAddr variant.
type bchAdapter struct{}

func newBitcoinCash() Adapter { return &bchAdapter{} }

func (b *bchAdapter) Ticker() string                 { return "BCH" }
func (b *bchAdapter) DisplayName() string            { return "Bitcoin Cash" }
func (b *bchAdapter) Family() Family                 { return FamilyUTXO }
func (b *bchAdapter) SupportedTypes() []AddressType  { return []AddressType{DefaultType} }
func (b *bchAdapter) DefaultAddressType() AddressType { return DefaultType }
func (b *bchAdapter) Alphabet(AddressType) map[rune]bool {
	return runeSetFromString("023456789acdefghjklmnpqrstuvwxyz")
}
func (b *bchAdapter) VisiblePrefix(AddressType) string { return "bitcoincash:q" }

func (b *bchAdapter) Generate(AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return nil, fmt.Errorf("chain/BCH: %w", err)
	}
	return b.build(kp)
}

func (b *bchAdapter) GenerateFromSecret(secret []byte, _ AddressType) (*GeneratedAddress, error) {
	kp, err := cryptoprim.Secp256k1FromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("chain/BCH: %w", err)
	}
	return b.build(kp)
}

func (b *bchAdapter) GenerateAddressOnly(AddressType) (string, []byte, error) {
	kp, err := cryptoprim.GenerateSecp256k1()
	if err != nil {
		return "", nil, fmt.Errorf("chain/BCH: %w", err)
	}
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	addr, err := encoding.CashAddrEncode("bitcoincash", 0x00, hash)
	if err != nil {
		return "", nil, err
	}
	return addr, kp.Secret[:], nil
}

func (b *bchAdapter) build(kp *cryptoprim.Secp256k1Keypair) (*GeneratedAddress, error) {
	hash := cryptoprim.Hash160(kp.Pub.SerializeCompressed())
	addr, err := encoding.CashAddrEncode("bitcoincash", 0x00, hash)
	if err != nil {
		return nil, err
	}
	wif := encoding.WIFCompressed(0x80, kp.Secret[:])
	return &GeneratedAddress{
		Address:      addr,
		SecretHex:    hex.EncodeToString(kp.Secret[:]),
		SecretNative: wif,
		PubKeyHex:    hex.EncodeToString(kp.Pub.SerializeCompressed()),
		ChainTicker:  "BCH",
		AddressType:  DefaultType,
	}, nil
}
