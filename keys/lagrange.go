package keys

import "github.com/ringfrost/frost/curve"

// Lagrange computes λ_i, the Lagrange coefficient at zero for index i over
// the given signing set, per spec.md section 4.4: λ_l = Π_{m∈included,
// m≠l} m·(m−l)^{-1}.
func Lagrange(c curve.Curve, i uint16, included []uint16) curve.Scalar {
	num := c.ScalarFromUint16(1)
	den := c.ScalarFromUint16(1)
	for _, l := range included {
		if l == i {
			continue
		}
		lv := c.ScalarFromUint16(l)
		num = num.Mul(lv)
		den = den.Mul(lv.Sub(c.ScalarFromUint16(i)))
	}
	// Safe: den is never zero, since every factor l−i has l ≠ i and both
	// indices are far below the group order. A duplicated index would give
	// a wrong coefficient instead, so View rejects DuplicatedIndex first.
	return num.Mul(den.Invert())
}
