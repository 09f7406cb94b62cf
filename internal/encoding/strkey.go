package encoding

import "fmt"

// StellarStrKeyEncode encodes payload as a Stellar StrKey: RFC4648 upper
// Base32 of (version || payload || CRC16-XModem(version||payload), little
// endian). Used for both account ("G...", version 6<<3) and seed ("S...",
// version 18<<3) StrKeys.
func StellarStrKeyEncode(version byte, payload []byte) string {
	body := make([]byte, 0, 1+len(payload))
	body = append(body, version)
	body = append(body, payload...)

	crc := CRC16XModemLE(body)
	full := append(body, crc[0], crc[1])
	return Base32Encode(full, false)
}

// StellarStrKeyDecode is the inverse of StellarStrKeyEncode, verifying the
// checksum.
func StellarStrKeyDecode(s string) (version byte, payload []byte, err error) {
	full, err := base32DecodeNoPad(s, RFC4648UpperAlphabet)
	if err != nil {
		return 0, nil, err
	}
	if len(full) < 3 {
		return 0, nil, fmt.Errorf("encoding: strkey input too short")
	}
	body := full[:len(full)-2]
	crc := full[len(full)-2:]
	want := CRC16XModemLE(body)
	if crc[0] != want[0] || crc[1] != want[1] {
		return 0, nil, fmt.Errorf("encoding: strkey checksum mismatch")
	}
	return body[0], body[1:], nil
}
