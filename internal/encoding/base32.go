package encoding

import (
	"fmt"
	"strings"
)

// RFC4648UpperAlphabet is the standard (uppercase) Base32 alphabet, used by
// Algorand and Stellar StrKey.
const RFC4648UpperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// RFC4648LowerAlphabet is the lowercase form used by Filecoin and ICP.
const RFC4648LowerAlphabet = "abcdefghijklmnopqrstuvwxyz234567"

// CrockfordAlphabet is Crockford's Base32, used by c32check (Stacks).
const CrockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NanoAlphabet is Nano's custom 32-character alphabet.
const NanoAlphabet = "13456789abcdefghijkmnopqrstuwxyz"

// base32EncodeNoPad encodes data 5 bits at a time against the given
// 32-character alphabet with no padding characters, MSB-first.
func base32EncodeNoPad(data []byte, alphabet string) string {
	if len(alphabet) != 32 {
		panic("encoding: base32 alphabet must have exactly 32 characters")
	}

	var sb strings.Builder
	var buf uint32
	bits := 0
	for _, b := range data {
		buf = (buf << 8) | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(buf>>uint(bits))&0x1f])
		}
	}
	if bits > 0 {
		sb.WriteByte(alphabet[(buf<<uint(5-bits))&0x1f])
	}
	return sb.String()
}

// base32DecodeNoPad is the inverse of base32EncodeNoPad.
func base32DecodeNoPad(s string, alphabet string) ([]byte, error) {
	index := make(map[byte]uint32, 32)
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = uint32(i)
	}

	var out []byte
	var buf uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v, ok := index[s[i]]
		if !ok {
			return nil, fmt.Errorf("encoding: invalid base32 character %q", s[i])
		}
		buf = (buf << 5) | v
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>uint(bits)))
		}
	}
	return out, nil
}

// Base32Encode encodes data as unpadded RFC4648 Base32 in the requested case.
func Base32Encode(data []byte, lower bool) string {
	if lower {
		return base32EncodeNoPad(data, RFC4648LowerAlphabet)
	}
	return base32EncodeNoPad(data, RFC4648UpperAlphabet)
}

// CrockfordEncode encodes data as Crockford Base32 (used for c32check).
func CrockfordEncode(data []byte) string {
	return base32EncodeNoPad(data, CrockfordAlphabet)
}

// CrockfordDecode decodes Crockford Base32, case-insensitively (Crockford's
// alphabet is designed to tolerate upper/lowercase and the 0/O, 1/I/L
// look-alike substitutions, but this implementation only folds case).
func CrockfordDecode(s string) ([]byte, error) {
	return base32DecodeNoPad(strings.ToUpper(s), CrockfordAlphabet)
}

// NanoEncode encodes data using Nano's custom Base32 alphabet.
func NanoEncode(data []byte) string {
	return base32EncodeNoPad(data, NanoAlphabet)
}
