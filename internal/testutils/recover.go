package testutils

import "github.com/ringfrost/frost/curve"

// Recover reconstructs the group secret from a set of per-party secret
// shares via Lagrange interpolation at zero, the "recover" helper spec.md
// section 8 testable property 2 calls for: Σ_{i∈S} λ_i · secret_share_i = sk
// for any included set S of size t. It exists only for tests — the engine
// itself must never materialize sk (that is the entire point of DKG).
//
// Adapted from the polynomial evaluation in the teacher's
// internal/testutils/shamir.go, generalized from math/big.Int to the
// curve.Scalar abstraction.
func Recover(c curve.Curve, shares map[uint16]curve.Scalar) curve.Scalar {
	included := make([]uint16, 0, len(shares))
	for i := range shares {
		included = append(included, i)
	}

	sum := c.ZeroScalar()
	for _, i := range included {
		sum = sum.Add(shares[i].Mul(lagrangeAtZero(c, i, included)))
	}
	return sum
}

func lagrangeAtZero(c curve.Curve, i uint16, included []uint16) curve.Scalar {
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
	return num.Mul(den.Invert())
}
