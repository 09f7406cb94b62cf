package cryptoprim

import (
	"fmt"

	"filippo.io/edwards25519"
)

// ScalarBaseMult computes scalar·B on the Ed25519 basepoint for an
// already-reduced (canonical) little-endian scalar, returning the
// compressed 32-byte point. Monero derives both its spend and view public
// keys this way (Rust's generate_key_image / secret_key_to_public_key):
// sc_reduce32(x) then x·B directly, with no intervening SHA-512-hash-and-
// clamp step. That makes it a different primitive from crypto/ed25519's
// RFC-8032 keygen pipeline, which never exposes a raw scalar-times-
// basepoint operation — hence the dedicated dependency here
// (other_examples/.../edwards25519-extra__vrf-ecvrf.go.go uses the same
// filippo.io/edwards25519 Scalar/Point API for an analogous raw scalar
// operation).
func ScalarBaseMult(reducedScalarLE []byte) ([]byte, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(reducedScalarLE)
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: scalar base mult: %w", err)
	}
	p := edwards25519.NewIdentityPoint().ScalarBaseMult(s)
	return p.Bytes(), nil
}
