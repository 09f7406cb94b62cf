package encoding

import (
	"fmt"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
)

// ss58Preimage is the fixed tag Substrate/Polkadot prepends before hashing
// the prefixed payload for the checksum.
var ss58Preimage = []byte("SS58PRE")

// SS58Encode encodes a public key for a given network prefix: Base58(prefix
// || pubkey || first2(Blake2b512("SS58PRE" || prefix || pubkey))). Network
// identifiers below 64 encode as a single prefix byte; 64..16383 use the
// two-byte form with Substrate's bit layout (bits 2..7 of the identifier land
// in the first byte under a 0b01 marker; bits 0..1 and 8..13 go into the
// second).
func SS58Encode(prefix uint16, pubkey []byte) (string, error) {
	if prefix >= 16384 {
		return "", fmt.Errorf("encoding: SS58 network identifier %d out of range", prefix)
	}
	if len(pubkey) != 32 {
		return "", fmt.Errorf("encoding: SS58 expects a 32-byte public key, got %d", len(pubkey))
	}

	body := make([]byte, 0, 2+32)
	if prefix < 64 {
		body = append(body, byte(prefix))
	} else {
		body = append(body,
			0x40|byte((prefix>>2)&0x3f),
			byte(prefix>>8)|byte(prefix&0x03)<<6)
	}
	body = append(body, pubkey...)

	preimage := make([]byte, 0, len(ss58Preimage)+len(body))
	preimage = append(preimage, ss58Preimage...)
	preimage = append(preimage, body...)
	checksum := cryptoprim.Blake2b512(preimage)

	full := append(body, checksum[:2]...)
	return Base58Encode(full), nil
}
