package cryptoprim

import (
	"encoding/hex"
	"testing"
)

func TestKeccak256EmptyDiffersFromSha3_256Empty(t *testing.T) {
	keccak := hex.EncodeToString(Keccak256(nil))
	sha3 := Sha3_256(nil)

	const wantKeccak = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	const wantSha3 = "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

	if keccak != wantKeccak {
		t.Fatalf("Keccak256(empty) = %s, want %s", keccak, wantKeccak)
	}
	if hex.EncodeToString(sha3[:]) != wantSha3 {
		t.Fatalf("Sha3_256(empty) = %x, want %s", sha3, wantSha3)
	}
	if keccak == hex.EncodeToString(sha3[:]) {
		t.Fatalf("Keccak256 and Sha3_256 must differ on the same input")
	}
}

func TestBlake2b256Empty(t *testing.T) {
	got := Blake2b256(nil)
	const want = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("Blake2b256(empty) = %x, want %s", got, want)
	}
}

func TestHash160OfGeneratorCompressedPubkey(t *testing.T) {
	// x=1 is not a valid curve point; use the documented generator pubkey
	// bytes directly from spec known-answer vector #5.
	pub, _ := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	got := Hash160(pub)
	const want = "751e76e8199196d454941c45d1b3a323f1433bd6"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Hash160(G) = %x, want %s", got, want)
	}
}

func TestGenerateSecp256k1InRange(t *testing.T) {
	kp, err := GenerateSecp256k1()
	if err != nil {
		t.Fatal(err)
	}
	allZero := true
	for _, b := range kp.Secret {
		if b != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("generated an all-zero secret")
	}
}

func TestGenerateEd25519RoundTrip(t *testing.T) {
	kp, err := GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	reconstructed, err := Ed25519FromSeed(kp.Seed[:])
	if err != nil {
		t.Fatal(err)
	}
	if string(reconstructed.Pub) != string(kp.Pub) {
		t.Fatal("reconstructed public key does not match original")
	}
}

func TestScReduce32IsIdempotent(t *testing.T) {
	in := Keccak256([]byte("vanity"))
	once := scReduce32(in)
	twice := scReduce32(once[:])
	if once != twice {
		t.Fatalf("scReduce32 is not idempotent on an already-reduced scalar: %x vs %x", once, twice)
	}
}
