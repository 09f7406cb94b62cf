package encoding

import "github.com/omnivanity/omnivanity/internal/cryptoprim"

// C32CheckEncode encodes payload Stacks-style: Crockford-Base32(version ||
// payload || first4(doubleSha256(version||payload))). Callers prepend the
// chain's visible letter prefix ("SP", "SM", "ST", "SN") to the result
// themselves, the same way Base58CheckEncodeV1 callers prepend nothing
// because the Bitcoin version byte already encodes the leading digit.
func C32CheckEncode(version byte, payload []byte) string {
	body := make([]byte, 0, 1+len(payload))
	body = append(body, version)
	body = append(body, payload...)

	checksum := cryptoprim.DoubleSha256(body)
	full := append(body, checksum[:4]...)
	return CrockfordEncode(full)
}
