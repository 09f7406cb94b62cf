package encoding

import (
	"bytes"
	"strings"
	"testing"
)

// TestBase58CheckV1RoundTrip covers the Base58Check round-trip
// property: decode(encode(v, p)) == (v, p).
func TestBase58CheckV1RoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}

	for _, version := range []byte{0x00, 0x05, 0x80, 0x1e} {
		encoded := Base58CheckEncodeV1(version, payload)
		gotVersion, gotPayload, err := Base58CheckDecodeV1(encoded)
		if err != nil {
			t.Fatalf("version %#x: decode: %v", version, err)
		}
		if gotVersion != version {
			t.Errorf("version %#x: decoded version = %#x", version, gotVersion)
		}
		if !bytes.Equal(gotPayload, payload) {
			t.Errorf("version %#x: decoded payload = %x, want %x", version, gotPayload, payload)
		}
	}
}

func TestBase58CheckDecodeRejectsCorruptedChecksum(t *testing.T) {
	encoded := Base58CheckEncodeV1(0x00, []byte{1, 2, 3, 4, 5})
	// Swap the final character, which falls inside the checksum bytes.
	swap := byte('2')
	if encoded[len(encoded)-1] == swap {
		swap = '3'
	}
	corrupted := encoded[:len(encoded)-1] + string(swap)
	if corrupted == encoded {
		t.Skip("corruption produced an identical string")
	}
	if _, _, err := Base58CheckDecodeV1(corrupted); err == nil {
		t.Error("expected checksum mismatch error for corrupted input")
	}
}

// TestBech32SegwitRoundTrip covers the Bech32 round-trip property:
// bech32_decode(bech32_encode_v0(hrp, p)) == (hrp, 0, p).
func TestBech32SegwitRoundTrip(t *testing.T) {
	program := make([]byte, 20)
	for i := range program {
		program[i] = byte(i)
	}

	addr, err := EncodeSegwitAddress("bc", 0, program)
	if err != nil {
		t.Fatalf("EncodeSegwitAddress: %v", err)
	}

	hrp, version, decoded, err := DecodeSegwitAddress(addr)
	if err != nil {
		t.Fatalf("DecodeSegwitAddress: %v", err)
	}
	if hrp != "bc" {
		t.Errorf("hrp = %s, want bc", hrp)
	}
	if version != 0 {
		t.Errorf("witness version = %d, want 0", version)
	}
	if !bytes.Equal(decoded, program) {
		t.Errorf("program = %x, want %x", decoded, program)
	}
}

func TestBech32SegwitRoundTripTaprootVersion(t *testing.T) {
	program := make([]byte, 32)
	for i := range program {
		program[i] = byte(i * 3)
	}

	addr, err := EncodeSegwitAddress("bc", 1, program)
	if err != nil {
		t.Fatalf("EncodeSegwitAddress: %v", err)
	}
	_, version, decoded, err := DecodeSegwitAddress(addr)
	if err != nil {
		t.Fatalf("DecodeSegwitAddress: %v", err)
	}
	if version != 1 {
		t.Errorf("witness version = %d, want 1", version)
	}
	if !bytes.Equal(decoded, program) {
		t.Errorf("program = %x, want %x", decoded, program)
	}
}

// TestBech32PlainRoundTrip covers the Cosmos/Cardano-style plain Bech32
// (no witness version byte) variant used outside the segwit address form.
func TestBech32PlainRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14}

	addr, err := EncodeBech32Plain("cosmos", payload)
	if err != nil {
		t.Fatalf("EncodeBech32Plain: %v", err)
	}
	hrp, decoded, err := DecodeBech32Plain(addr)
	if err != nil {
		t.Fatalf("DecodeBech32Plain: %v", err)
	}
	if hrp != "cosmos" {
		t.Errorf("hrp = %s, want cosmos", hrp)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("payload = %x, want %x", decoded, payload)
	}
}

// TestEIP55ChecksumIdempotentOnLowercase covers the EIP-55 property:
// eip55_checksum(lowercase(x)) == x for any already-checksummed address x,
// and is idempotent when applied twice.
func TestEIP55ChecksumIdempotentOnLowercase(t *testing.T) {
	lower := "7e5f4552091a69125d5dfcb7b8c2659029395bdf"
	checksummed := EIP55Checksum(lower)

	// Strip the "0x" prefix before re-checksumming: EIP55Checksum expects a
	// bare lowercase hex body, not a "0x"-prefixed address.
	again := EIP55Checksum(strings.ToLower(strings.TrimPrefix(checksummed, "0x")))
	if again != checksummed {
		t.Errorf("checksum not stable under lowercase round-trip: %s vs %s", again, checksummed)
	}
	if strings.ToLower(strings.TrimPrefix(checksummed, "0x")) != lower {
		t.Errorf("checksummed address case-folds to %s, want %s", strings.ToLower(checksummed), lower)
	}
}

func TestEIP55KnownAnswer(t *testing.T) {
	got := EIP55Checksum("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	const want = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	if got != want {
		t.Fatalf("EIP55Checksum = %s, want %s", got, want)
	}
}

func TestBase58EncodeDecodeRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x02, 0x03, 0xff, 0xfe}
	encoded := Base58Encode(data)
	decoded, err := Base58Decode(encoded)
	if err != nil {
		t.Fatalf("Base58Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded = %x, want %x", decoded, data)
	}
}

func TestBase58AlphabetRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x41, 0x7f, 0x80, 0xff, 0x00, 0x13}
	for _, alphabet := range []string{BitcoinAlphabet, RippleAlphabet} {
		encoded := Base58EncodeAlphabet(data, alphabet)
		decoded, err := Base58DecodeAlphabet(encoded, alphabet)
		if err != nil {
			t.Fatalf("Base58DecodeAlphabet: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("decoded = %x, want %x", decoded, data)
		}
	}
}

func TestMoneroBase58RoundTrip(t *testing.T) {
	data := make([]byte, 69) // network byte + two 32-byte keys + 4-byte checksum
	for i := range data {
		data[i] = byte(i * 7)
	}
	encoded := MoneroBase58Encode(data)
	decoded, err := MoneroBase58Decode(encoded)
	if err != nil {
		t.Fatalf("MoneroBase58Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded = %x, want %x", decoded, data)
	}
}

func TestStellarStrKeyRoundTrip(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	encoded := StellarStrKeyEncode(6<<3, payload)
	version, decoded, err := StellarStrKeyDecode(encoded)
	if err != nil {
		t.Fatalf("StellarStrKeyDecode: %v", err)
	}
	if version != 6<<3 {
		t.Errorf("version = %d, want %d", version, 6<<3)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("payload = %x, want %x", decoded, payload)
	}
	if encoded[0] != 'G' {
		t.Errorf("account strkey starts with %q, want 'G'", encoded[0])
	}
}
