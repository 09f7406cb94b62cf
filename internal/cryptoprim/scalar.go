package cryptoprim

import "math/big"

// edwardsOrder is ℓ, the order of the Ed25519 base point subgroup:
// 2^252 + 27742317777372353535851937790883648493.
var edwardsOrder = func() *big.Int {
	l, ok := new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
	if !ok {
		panic("cryptoprim: bad edwards order constant")
	}
	return l
}()

// scReduce32 interprets in as a little-endian integer and reduces it modulo
// the Ed25519 group order, returning a 32-byte little-endian result.
func scReduce32(in []byte) [32]byte {
	be := make([]byte, len(in))
	for i, b := range in {
		be[len(in)-1-i] = b
	}
	n := new(big.Int).SetBytes(be)
	n.Mod(n, edwardsOrder)

	var out [32]byte
	nb := n.Bytes() // big-endian, no leading zero padding
	for i := 0; i < len(nb); i++ {
		out[i] = nb[len(nb)-1-i]
	}
	return out
}
