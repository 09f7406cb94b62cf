// Package cryptoprim implements the hash and keygen primitives that every
// chain recipe is built from: double-SHA256, HASH160, Keccak-256, SHA3-256,
// Blake2b variants, SHA-512/256, secp256k1 keygen and Ed25519 keygen.
package cryptoprim

import (
	"crypto/sha256"
	"crypto/sha512"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for HASH160
	"golang.org/x/crypto/sha3"
)

// Sha256 computes a single SHA-256 digest.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSha256 computes SHA-256(SHA-256(data)), the checksum primitive behind
// Base58Check.
func DoubleSha256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Hash160 computes RIPEMD160(SHA256(data)), used by every legacy/SegWit
// Bitcoin-family address.
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// Keccak256 computes the Ethereum/Tron/Monero flavour of Keccak-256 (the
// pre-standardization padding, distinct from NIST SHA3-256). Delegating to
// go-ethereum keeps this bit-for-bit identical with its own EVM address path.
func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}

// Sha3_256 computes the NIST-standard SHA3-256, used by Aptos. Distinct from
// Keccak256 above, which uses the pre-standardization Keccak padding.
func Sha3_256(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// Blake2b256 computes a 256-bit Blake2b digest (Sui and IOTA addresses, Nano
// checksum).
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2b224 computes a 224-bit Blake2b digest (Cardano enterprise key hash).
func Blake2b224(data []byte) []byte {
	h, err := blake2b.New(28, nil)
	if err != nil {
		panic("cryptoprim: blake2b-224 init: " + err.Error())
	}
	h.Write(data)
	return h.Sum(nil)
}

// Blake2b160 computes a 160-bit Blake2b digest (Filecoin f1 payload).
func Blake2b160(data []byte) []byte {
	h, err := blake2b.New(20, nil)
	if err != nil {
		panic("cryptoprim: blake2b-160 init: " + err.Error())
	}
	h.Write(data)
	return h.Sum(nil)
}

// Blake2bChecksum4 computes a 4-byte (32-bit) Blake2b digest, the Filecoin
// address checksum. A native 4-byte digest, not a truncation of a longer one.
func Blake2bChecksum4(data []byte) []byte {
	h, err := blake2b.New(4, nil)
	if err != nil {
		panic("cryptoprim: blake2b-32 init: " + err.Error())
	}
	h.Write(data)
	return h.Sum(nil)
}

// Blake2b512 computes a 512-bit Blake2b digest (SS58 checksum preimage hash).
func Blake2b512(data []byte) []byte {
	h := blake2b.Sum512(data)
	return h[:]
}

// Sha512_256 computes SHA-512/256, the truncated SHA-512 variant Algorand
// uses for its address checksum.
func Sha512_256(data []byte) [32]byte {
	return sha512.Sum512_256(data)
}

// Sha224 computes SHA-224, the truncated SHA-256 variant ICP uses over a
// DER-encoded public key to derive a self-authenticating Principal.
func Sha224(data []byte) [28]byte {
	return sha256.Sum224(data)
}
