// Package chain implements the multi-chain address derivation pipeline:
// the recipe model and a registry of chain adapters covering five families
// (EVM, UTXO-secp256k1, Cosmos/Bech32, Ed25519, and specialised chains).
package chain

// Curve identifies the elliptic curve / key-generation scheme a recipe uses.
type Curve int

const (
	Secp256k1 Curve = iota
	Ed25519
	MoneroEd25519
)

// Family groups chains that share a derivation shape, for display and for
// table-driven registration.
type Family int

const (
	FamilyEVM Family = iota
	FamilyUTXO
	FamilyCosmos
	FamilyEd25519
	FamilySpecialised
)

func (f Family) String() string {
	switch f {
	case FamilyEVM:
		return "EVM"
	case FamilyUTXO:
		return "UTXO-secp256k1"
	case FamilyCosmos:
		return "Cosmos/Bech32"
	case FamilyEd25519:
		return "Ed25519"
	case FamilySpecialised:
		return "Specialised"
	default:
		return "Unknown"
	}
}

// AddressType distinguishes multiple address shapes a single chain may
// expose (e.g. Bitcoin's legacy/nested-segwit/segwit/taproot forms). Chains
// with only one shape use DefaultType.
type AddressType int

const (
	DefaultType AddressType = iota
	Legacy
	NestedSegWit
	SegWitBech32
	Taproot
)

func (a AddressType) String() string {
	switch a {
	case Legacy:
		return "legacy"
	case NestedSegWit:
		return "nested-segwit"
	case SegWitBech32:
		return "segwit-bech32"
	case Taproot:
		return "taproot"
	default:
		return "default"
	}
}

// GeneratedAddress is the record produced by one derivation.
type GeneratedAddress struct {
	Address       string
	SecretHex     string
	SecretNative  string
	PubKeyHex     string
	ChainTicker   string
	AddressType   AddressType
}

// Adapter is the interface every chain recipe implements.
// Adapters are stateless and safe for concurrent use by every search worker.
type Adapter interface {
	Ticker() string
	DisplayName() string
	Family() Family
	SupportedTypes() []AddressType
	DefaultAddressType() AddressType

	// Alphabet returns the set of characters legal in an address of the
	// given type, driving pattern validation.
	Alphabet(t AddressType) map[rune]bool

	// VisiblePrefix returns the literal leading substring a Prefix pattern
	// is matched after stripping.
	VisiblePrefix(t AddressType) string

	// Generate draws fresh random key material and derives an address of
	// the given type.
	Generate(t AddressType) (*GeneratedAddress, error)

	// GenerateFromSecret reconstructs the full record from saved secret
	// bytes, rejecting inputs of the wrong length. Used to verify
	// generate/generate_from_secret round trips and to reconstruct a GPU
	// hybrid-mode hit.
	GenerateFromSecret(secret []byte, t AddressType) (*GeneratedAddress, error)

	// GenerateAddressOnly is the hot-path variant used by GPU-hybrid mode:
	// it returns the address string and the raw secret bytes without
	// formatting the full record, deferring that work until a hit is
	// confirmed.
	GenerateAddressOnly(t AddressType) (address string, secret []byte, err error)
}

// CaseInsensitiveDefault reports whether user-facing tools should default
// prefix/suffix matching to case-insensitive for this chain (EVM addresses
// are hex and case-folded by convention; most Base58/Bech32 chains are not).
// The engine itself always treats the flag as a caller-supplied boolean;
// this is guidance for callers building a UI on top of the engine.
func CaseInsensitiveDefault(f Family) bool {
	return f == FamilyEVM
}

func runeSetFromString(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

func runeSetFromStrings(ss ...string) map[rune]bool {
	set := make(map[rune]bool)
	for _, s := range ss {
		for _, r := range s {
			set[r] = true
		}
	}
	return set
}

const hexAlphabet = "0123456789abcdefABCDEF"
