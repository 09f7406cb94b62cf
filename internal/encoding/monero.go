package encoding

import "fmt"

// encodedBlockSizes maps a full-or-partial input block length (0..8 bytes)
// to its Monero Base58 encoded character count.
var encodedBlockSizes = [...]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

// MoneroBase58Encode encodes data using Monero's block Base58 variant: input
// is split into 8-byte blocks (the tail may be shorter), each block is
// interpreted big-endian and encoded MSB-first into a fixed-width field
// (11 characters per full block, per encodedBlockSizes for the tail).
func MoneroBase58Encode(data []byte) string {
	out := make([]byte, 0, (len(data)/8+1)*11)
	for i := 0; i < len(data); i += 8 {
		end := i + 8
		if end > len(data) {
			end = len(data)
		}
		block := data[i:end]
		out = append(out, encodeMoneroBlock(block)...)
	}
	return string(out)
}

func encodeMoneroBlock(block []byte) []byte {
	width := encodedBlockSizes[len(block)]

	num := make([]byte, len(block))
	copy(num, block)

	digits := make([]byte, width)
	for i := range digits {
		digits[i] = BitcoinAlphabet[0]
	}

	// Repeated base-256 -> base-58 long division, MSB-first output.
	for pos := width - 1; pos >= 0; pos-- {
		var rem int
		for i := 0; i < len(num); i++ {
			cur := rem*256 + int(num[i])
			num[i] = byte(cur / 58)
			rem = cur % 58
		}
		digits[pos] = BitcoinAlphabet[rem]
	}
	return digits
}

// MoneroBase58Decode is the inverse of MoneroBase58Encode.
func MoneroBase58Decode(s string) ([]byte, error) {
	index := make(map[byte]int, 58)
	for i := 0; i < len(BitcoinAlphabet); i++ {
		index[BitcoinAlphabet[i]] = i
	}

	decodedSizes := map[int]int{0: 0, 2: 1, 3: 2, 5: 3, 6: 4, 7: 5, 9: 6, 10: 7, 11: 8}

	var out []byte
	for i := 0; i < len(s); {
		// Greedily consume a full 11-char block, or whatever remains.
		width := 11
		if len(s)-i < 11 {
			width = len(s) - i
		}
		block := s[i : i+width]
		size, ok := decodedSizes[width]
		if !ok {
			return nil, fmt.Errorf("encoding: invalid monero base58 block width %d", width)
		}

		digits := make([]int, len(block))
		for j := 0; j < len(block); j++ {
			v, ok := index[block[j]]
			if !ok {
				return nil, fmt.Errorf("encoding: invalid monero base58 character %q", block[j])
			}
			digits[j] = v
		}

		decoded := make([]byte, size)
		for pos := range digits {
			carry := digits[pos]
			for k := len(decoded) - 1; k >= 0; k-- {
				carry += 58 * int(decoded[k])
				decoded[k] = byte(carry & 0xff)
				carry >>= 8
			}
		}
		out = append(out, decoded...)
		i += width
	}
	return out, nil
}
