package encoding

import (
	"fmt"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
)

// Base58CheckEncodeV1 encodes payload with a single-byte version prefix and
// a 4-byte double-SHA256 checksum: Base58(version || payload || checksum).
// Used by Bitcoin-family P2PKH/P2SH, WIF, and Tron.
func Base58CheckEncodeV1(version byte, payload []byte) string {
	return base58CheckEncode([]byte{version}, payload)
}

// Base58CheckEncodeV2 encodes payload with a two-byte version prefix, used by
// Zcash t-addresses.
func Base58CheckEncodeV2(version [2]byte, payload []byte) string {
	return base58CheckEncode(version[:], payload)
}

func base58CheckEncode(version []byte, payload []byte) string {
	body := make([]byte, 0, len(version)+len(payload))
	body = append(body, version...)
	body = append(body, payload...)

	checksum := cryptoprim.DoubleSha256(body)
	full := append(body, checksum[:4]...)
	return Base58Encode(full)
}

// Base58CheckDecodeV1 decodes a single-byte-version Base58Check string,
// verifying the checksum, and returns the version byte and payload.
func Base58CheckDecodeV1(s string) (version byte, payload []byte, err error) {
	full, err := Base58Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(full) < 5 {
		return 0, nil, fmt.Errorf("encoding: base58check input too short")
	}
	body := full[:len(full)-4]
	checksum := full[len(full)-4:]
	want := cryptoprim.DoubleSha256(body)
	for i := 0; i < 4; i++ {
		if checksum[i] != want[i] {
			return 0, nil, fmt.Errorf("encoding: base58check checksum mismatch")
		}
	}
	return body[0], body[1:], nil
}

// XrplBase58CheckEncode is Base58Check with the XRPL alphabet substitution:
// the same version || payload || first4(doubleSha256) layout, rendered
// against Ripple's letter-shuffled alphabet (version 0 leads with 'r').
func XrplBase58CheckEncode(version byte, payload []byte) string {
	body := make([]byte, 0, 1+len(payload))
	body = append(body, version)
	body = append(body, payload...)

	checksum := cryptoprim.DoubleSha256(body)
	full := append(body, checksum[:4]...)
	return Base58EncodeAlphabet(full, RippleAlphabet)
}

// WIFCompressed encodes a secp256k1 secret in Wallet Import Format with the
// compressed-pubkey flag set: Base58Check(netVersion || sk || 0x01).
func WIFCompressed(netVersion byte, sk []byte) string {
	payload := make([]byte, 0, len(sk)+1)
	payload = append(payload, sk...)
	payload = append(payload, 0x01)
	return Base58CheckEncodeV1(netVersion, payload)
}
