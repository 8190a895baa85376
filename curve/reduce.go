package curve

import "math/big"

// reduceModN reduces a big-endian byte string modulo the given curve order
// and returns the result as fixed-length big-endian bytes, used by
// HashToScalar implementations to perform the wide reduction spec.md
// section 4.1 describes ("reduced modulo the scalar field").
func reduceModN(wide []byte, order *big.Int, outLen int) []byte {
	i := new(big.Int).SetBytes(wide)
	i.Mod(i, order)
	out := make([]byte, outLen)
	i.FillBytes(out)
	return out
}

var secp256k1Order, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16,
)

var p256Order, _ = new(big.Int).SetString(
	"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551", 16,
)
