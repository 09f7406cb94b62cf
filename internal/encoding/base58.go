// Package encoding implements the address-text encodings used across the
// chain adapters: Base58 / Base58Check, Bech32 / Bech32m, the Base32
// alphabet variants, CashAddr, EIP-55, Stellar StrKey, SS58, c32check and
// Monero's block Base58.
package encoding

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// BitcoinAlphabet is the standard Base58 alphabet used by Bitcoin, Solana,
// Tron and most other Base58 chains (excludes 0, O, I, l).
const BitcoinAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// RippleAlphabet is the XRPL's letter-shuffled Base58 alphabet.
const RippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// Base58Encode encodes data using the standard Bitcoin alphabet.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode decodes a standard Base58 string.
func Base58Decode(s string) ([]byte, error) {
	out, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("encoding: base58 decode: %w", err)
	}
	return out, nil
}

// Base58EncodeAlphabet encodes data against a custom 58-character alphabet
// (e.g. the XRPL alphabet), counting leading zero bytes as leading "ones"
// in the target alphabet.
func Base58EncodeAlphabet(data []byte, alphabet string) string {
	zeros := 0
	for _, b := range data {
		if b != 0 {
			break
		}
		zeros++
	}

	size := len(data)*138/100 + 1
	buf := make([]byte, size)
	for _, b := range data {
		carry := int(b)
		for i := size - 1; i >= 0; i-- {
			carry += 256 * int(buf[i])
			buf[i] = byte(carry % 58)
			carry /= 58
		}
	}

	i := 0
	for i < size && buf[i] == 0 {
		i++
	}

	result := make([]byte, zeros+size-i)
	for j := 0; j < zeros; j++ {
		result[j] = alphabet[0]
	}
	for j := zeros; i < size; i, j = i+1, j+1 {
		result[j] = alphabet[buf[i]]
	}
	return string(result)
}

// Base58DecodeAlphabet is the inverse of Base58EncodeAlphabet.
func Base58DecodeAlphabet(s string, alphabet string) ([]byte, error) {
	index := make(map[byte]int, 58)
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = i
	}

	zeros := 0
	for i := 0; i < len(s) && s[i] == alphabet[0]; i++ {
		zeros++
	}

	size := len(s)*733/1000 + 1
	buf := make([]byte, size)
	for _, c := range []byte(s) {
		val, ok := index[c]
		if !ok {
			return nil, fmt.Errorf("encoding: invalid base58 character %q", c)
		}
		carry := val
		for i := size - 1; i >= 0; i-- {
			carry += 58 * int(buf[i])
			buf[i] = byte(carry % 256)
			carry /= 256
		}
	}

	i := 0
	for i < size && buf[i] == 0 {
		i++
	}

	out := make([]byte, zeros+size-i)
	for j := zeros; i < size; i, j = i+1, j+1 {
		out[j] = buf[i]
	}
	return out, nil
}
