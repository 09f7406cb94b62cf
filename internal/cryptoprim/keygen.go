package cryptoprim

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Secp256k1Keypair is a generated secp256k1 key pair.
type Secp256k1Keypair struct {
	Secret [32]byte
	Priv   *btcec.PrivateKey
	Pub    *btcec.PublicKey
}

// GenerateSecp256k1 draws 32 uniformly random bytes and redraws whenever the
// resulting scalar is zero or falls outside [1, n). btcec.PrivKeyFromBytes
// reduces mod the curve order internally, so we additionally reject any draw
// whose raw bytes don't round-trip through Serialize() unchanged — that
// round-trip failing is exactly the "scalar >= n" case that must be discarded
// and redrawn rather than silently reduced.
func GenerateSecp256k1() (*Secp256k1Keypair, error) {
	for {
		var buf [32]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("cryptoprim: secp256k1 rng: %w", err)
		}

		allZero := true
		for _, b := range buf {
			if b != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			continue
		}

		priv, pub := btcec.PrivKeyFromBytes(buf[:])
		serialized := priv.Serialize()
		if !bytesEqual(serialized, buf[:]) {
			// buf encoded a scalar >= the curve order; btcec reduced it.
			// Discard and redraw instead of using the reduced value.
			continue
		}

		return &Secp256k1Keypair{Secret: buf, Priv: priv, Pub: pub}, nil
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ed25519Keypair is a generated Ed25519 key pair.
type Ed25519Keypair struct {
	Seed [32]byte
	Pub  ed25519.PublicKey  // 32 bytes
	Priv ed25519.PrivateKey // 64 bytes, seed||pub
}

// GenerateEd25519 draws a random RFC-8032 seed and derives the matching
// public key. crypto/ed25519 never fails on key generation with a crypto
// source, so this only returns an error if the system RNG itself fails.
func GenerateEd25519() (*Ed25519Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: ed25519 rng: %w", err)
	}
	var seed [32]byte
	copy(seed[:], priv.Seed())
	return &Ed25519Keypair{Seed: seed, Pub: pub, Priv: priv}, nil
}

// Ed25519FromSeed reconstructs a key pair from a saved 32-byte seed, used by
// generate_from_secret and by the GPU hybrid path's CPU-side reconstruction
// of a confirmed hit.
func Ed25519FromSeed(seed []byte) (*Ed25519Keypair, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("cryptoprim: ed25519 seed must be 32 bytes, got %d", len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	var s [32]byte
	copy(s[:], seed)
	return &Ed25519Keypair{Seed: s, Pub: pub, Priv: priv}, nil
}

// Secp256k1FromSecret reconstructs a key pair from a saved 32-byte scalar.
func Secp256k1FromSecret(secret []byte) (*Secp256k1Keypair, error) {
	if len(secret) != 32 {
		return nil, fmt.Errorf("cryptoprim: secp256k1 secret must be 32 bytes, got %d", len(secret))
	}
	priv, pub := btcec.PrivKeyFromBytes(secret)
	var buf [32]byte
	copy(buf[:], secret)
	return &Secp256k1Keypair{Secret: buf, Priv: priv, Pub: pub}, nil
}

// RandomSeed32 draws 32 uniformly random bytes directly from the system
// CSPRNG. Monero's key derivation does its own scalar reduction rather than
// RFC 8032's hash-and-clamp pipeline, so it needs a raw random seed instead
// of going through GenerateEd25519.
func RandomSeed32() ([32]byte, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return b, fmt.Errorf("cryptoprim: rng: %w", err)
	}
	return b, nil
}

// ScReduce32 reduces a 32-byte little-endian scalar modulo the Ed25519 group
// order ℓ. Monero derives its view key as ScReduce32(Keccak256(spend_sk)).
// This is the same reduction RFC 8032 performs internally on a clamped seed,
// implemented in scalar.go with math/big (bytes reversed to big-endian,
// reduced, reversed back) because Monero needs the reduced scalar as data (the spend/view secret),
// not just as an opaque signing key.
func ScReduce32(in []byte) [32]byte {
	return scReduce32(in)
}
