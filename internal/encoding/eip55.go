package encoding

import (
	"encoding/hex"
	"strings"

	"github.com/omnivanity/omnivanity/internal/cryptoprim"
)

// EIP55Checksum applies the EIP-55 mixed-case checksum to a 20-byte address,
// returning the "0x"-prefixed, checksum-cased hex string. addr must be the
// lowercase hex representation (without "0x") of the 20 raw address bytes.
func EIP55Checksum(addrHexLower string) string {
	hash := cryptoprim.Keccak256([]byte(addrHexLower))
	hashHex := hex.EncodeToString(hash)

	var sb strings.Builder
	sb.WriteString("0x")
	for i := 0; i < len(addrHexLower); i++ {
		c := addrHexLower[i]
		if c >= '0' && c <= '9' {
			sb.WriteByte(c)
			continue
		}
		// hashHex[i] is a hex nibble; >= '8' means the corresponding nibble
		// value is >= 8.
		nibble := hashHex[i]
		if nibble >= '8' {
			sb.WriteByte(c - 'a' + 'A')
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
