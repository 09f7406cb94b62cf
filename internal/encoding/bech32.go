package encoding

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// EncodeSegwitAddress builds a Bech32 (witness v0) or Bech32m (witness v1+)
// address from an HRP, witness version and program, per BIP-173/BIP-350.
func EncodeSegwitAddress(hrp string, witnessVersion byte, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("encoding: bech32 convertbits: %w", err)
	}
	data := append([]byte{witnessVersion}, converted...)

	if witnessVersion == 0 {
		addr, err := bech32.Encode(hrp, data)
		if err != nil {
			return "", fmt.Errorf("encoding: bech32 encode: %w", err)
		}
		return addr, nil
	}
	addr, err := bech32.EncodeM(hrp, data)
	if err != nil {
		return "", fmt.Errorf("encoding: bech32m encode: %w", err)
	}
	return addr, nil
}

// DecodeSegwitAddress is the inverse of EncodeSegwitAddress, returning the
// HRP, witness version and program.
func DecodeSegwitAddress(addr string) (hrp string, witnessVersion byte, program []byte, err error) {
	h, data, err := bech32.Decode(addr)
	if err != nil {
		return "", 0, nil, fmt.Errorf("encoding: bech32 decode: %w", err)
	}
	if len(data) == 0 {
		return "", 0, nil, fmt.Errorf("encoding: empty bech32 payload")
	}
	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, fmt.Errorf("encoding: bech32 convertbits: %w", err)
	}
	return h, data[0], program, nil
}

// EncodeBech32Plain encodes an arbitrary byte payload as plain Bech32 (no
// witness-version byte), used by Cosmos-family addresses where the payload
// is a raw 20-byte hash rather than a witness program.
func EncodeBech32Plain(hrp string, payload []byte) (string, error) {
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("encoding: bech32 convertbits: %w", err)
	}
	addr, err := bech32.Encode(hrp, converted)
	if err != nil {
		return "", fmt.Errorf("encoding: bech32 encode: %w", err)
	}
	return addr, nil
}

// DecodeBech32Plain is the inverse of EncodeBech32Plain.
func DecodeBech32Plain(addr string) (hrp string, payload []byte, err error) {
	h, data, err := bech32.Decode(addr)
	if err != nil {
		return "", nil, fmt.Errorf("encoding: bech32 decode: %w", err)
	}
	payload, err = bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("encoding: bech32 convertbits: %w", err)
	}
	return h, payload, nil
}
