package testutils

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/keys"
)

// GenerateKeys runs a trusted-dealer key generation round for test use: one
// random degree-(t-1) polynomial over c's scalar field, evaluated once per
// participant. Production code must never do this (that is the entire
// point of dkg) but tests need a cheap way to produce a consistent
// MultisigKeys set without running the full commit-reveal protocol.
//
// Adapted from the math/big.Int polynomial in the teacher's
// internal/testutils/shamir.go, generalized to the curve.Scalar
// abstraction and extended to also produce the public verification shares
// dkg.keygen.go computes at the end of round 2.
func GenerateKeys(c curve.Curve, rng io.Reader, t, n uint16) (map[uint16]*keys.MultisigKeys, error) {
	coefficients := make([]curve.Scalar, t)
	for i := range coefficients {
		s, err := c.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		coefficients[i] = s
	}

	groupKey := c.Generator().ScalarMult(coefficients[0])

	shares := make(map[uint16]curve.Scalar, n)
	verification := make(map[uint16]curve.Point, n)
	for i := uint16(1); i <= n; i++ {
		shares[i] = evaluatePolynomial(c, coefficients, i)
		verification[i] = c.Generator().ScalarMult(shares[i])
	}

	out := make(map[uint16]*keys.MultisigKeys, n)
	for i := uint16(1); i <= n; i++ {
		params, err := keys.NewParams(t, n, i)
		if err != nil {
			return nil, err
		}
		vs := make(map[uint16]curve.Point, n)
		for l, v := range verification {
			vs[l] = v
		}
		out[i] = &keys.MultisigKeys{
			Curve:              c,
			Params:             params,
			SecretShare:        shares[i],
			GroupKey:           groupKey,
			VerificationShares: vs,
		}
	}
	return out, nil
}

// evaluatePolynomial computes f(x) = Σ coefficients[j]·x^j via Horner's
// method run in reverse, mirroring dkg.polynomial's reverse-Horner loop.
func evaluatePolynomial(c curve.Curve, coefficients []curve.Scalar, x uint16) curve.Scalar {
	xScalar := c.ScalarFromUint16(x)
	result := c.ZeroScalar()
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result.Mul(xScalar).Add(coefficients[i])
	}
	return result
}
