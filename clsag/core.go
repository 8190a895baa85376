// Package clsag implements a Concise Linkable Spontaneous Anonymous Group
// ring signature (spec.md section 4.7) and its FROST-threshold
// instantiation: the non-threshold sign/verify core here, the Algorithm
// wiring in multisig.go. Grounded on
// _examples/original_source/coins/monero/src/clsag/multisig.rs, which
// calls into a sign_core/verify pair this package reconstructs from the
// published CLSAG ring-signature construction (Goodell/Noether), since
// that pair's source file was not part of the retrieved excerpt.
package clsag

import (
	"encoding/binary"

	"github.com/ringfrost/frost/curve"
)

// Signature is a CLSAG ring signature: one challenge that closes the
// ring at index 0 regardless of which position is the real signer, the
// full per-member response vector, and the auxiliary key image binding
// the output commitment to the same signer.
type Signature struct {
	C0 curve.Scalar
	S  []curve.Scalar
	D  curve.Point
}

func aggregationTranscript(image, d curve.Point, ring Ring) []byte {
	t := append([]byte{}, image.Bytes()...)
	t = append(t, d.Bytes()...)
	for i := range ring.Keys {
		t = append(t, ring.Keys[i].Bytes()...)
		t = append(t, ring.Commitments[i].Bytes()...)
	}
	return t
}

func aggregationCoefficients(c curve.Curve, image, d curve.Point, ring Ring) (muP, muC curve.Scalar) {
	t := aggregationTranscript(image, d, ring)
	muP = c.HashToScalar([]byte("CLSAG_agg_0"), t)
	muC = c.HashToScalar([]byte("CLSAG_agg_1"), t)
	return
}

func roundChallenge(c curve.Curve, base []byte, idx int, l, r curve.Point) curve.Scalar {
	var be32 [4]byte
	binary.BigEndian.PutUint32(be32[:], uint32(idx))
	t := append(append([]byte{}, base...), be32[:]...)
	t = append(t, l.Bytes()...)
	t = append(t, r.Bytes()...)
	return c.HashToScalar([]byte("CLSAG_round"), t)
}

// ringWeight returns W_j = mu_P·P_j + mu_C·(C_j - C_out), the per-member
// key CLSAG signs over once the aggregation coefficients collapse the
// spend key and commitment into a single discrete-log statement.
func ringWeight(ring Ring, idx int, muP, muC curve.Scalar, cOut curve.Point) curve.Point {
	return ring.Keys[idx].ScalarMult(muP).Add(ring.Commitments[idx].Sub(cOut).ScalarMult(muC))
}

// signCore runs the CLSAG ring equations for every position other than
// the real signer (whose commitment pair is supplied directly as
// nonceSum, ah rather than derived from a response, since in the
// threshold setting no single party knows the real nonce), closing the
// ring and returning the final challenge at the signer's position — the
// value spec.md calls simply "c" — alongside the aggregation
// coefficients and C_out.
//
// randSource seeds the ring's fake responses; every signing participant
// derives it identically from the shared addendum transcript, so they
// all close the ring on the same challenge chain.
func signCore(
	c curve.Curve,
	msg []byte,
	input *SignableInput,
	mask curve.Scalar,
	nonceSum, ah curve.Point,
	randSource []byte,
) (partial *Signature, challenge, muP, muC curve.Scalar, cOut curve.Point) {
	n := input.Ring.Len()
	l := input.Index

	cOut = input.Ring.Commitments[l].Sub(c.Generator().ScalarMult(mask))
	hp := hashToPoint(c, input.Ring.Keys[l])
	d := hp.ScalarMult(mask)

	muP, muC = aggregationCoefficients(c, input.Image, d, input.Ring)
	ihat := input.Image.ScalarMult(muP).Add(d.ScalarMult(muC))
	base := append(aggregationTranscript(input.Image, d, input.Ring), cOut.Bytes()...)
	base = append(base, msg...)

	fakeResponse := func(idx int) curve.Scalar {
		var be32 [4]byte
		binary.BigEndian.PutUint32(be32[:], uint32(idx))
		return c.HashToScalar([]byte("CLSAG_fake_response"), append(append([]byte{}, randSource...), be32[:]...))
	}

	s := make([]curve.Scalar, n)

	targetIdx := (l + 1) % n
	chal := roundChallenge(c, base, l, nonceSum, ah)
	var c0 curve.Scalar
	if targetIdx == 0 {
		c0 = chal
	}

	for step := 0; step < n-1; step++ {
		idx := targetIdx
		sj := fakeResponse(idx)
		s[idx] = sj

		w := ringWeight(input.Ring, idx, muP, muC, cOut)
		hpj := hashToPoint(c, input.Ring.Keys[idx])
		lPoint := c.Generator().ScalarMult(sj).Add(w.ScalarMult(chal))
		rPoint := hpj.ScalarMult(sj).Add(ihat.ScalarMult(chal))

		targetIdx = (idx + 1) % n
		chal = roundChallenge(c, base, idx, lPoint, rPoint)
		if targetIdx == 0 {
			c0 = chal
		}
	}

	return &Signature{C0: c0, S: s, D: d}, chal, muP, muC, cOut
}

// Verify checks a complete CLSAG signature (every response filled in,
// including the real signer's) against the public ring, key image, and
// C_out, without needing to know which position signed.
func Verify(c curve.Curve, sig *Signature, msg []byte, ring Ring, image, cOut curve.Point) bool {
	n := ring.Len()
	if len(sig.S) != n {
		return false
	}

	muP, muC := aggregationCoefficients(c, image, sig.D, ring)
	ihat := image.ScalarMult(muP).Add(sig.D.ScalarMult(muC))
	base := append(aggregationTranscript(image, sig.D, ring), cOut.Bytes()...)
	base = append(base, msg...)

	chal := sig.C0
	for idx := 0; idx < n; idx++ {
		w := ringWeight(ring, idx, muP, muC, cOut)
		hpj := hashToPoint(c, ring.Keys[idx])
		lPoint := c.Generator().ScalarMult(sig.S[idx]).Add(w.ScalarMult(chal))
		rPoint := hpj.ScalarMult(sig.S[idx]).Add(ihat.ScalarMult(chal))
		chal = roundChallenge(c, base, idx, lPoint, rPoint)
	}

	return chal.Equal(sig.C0)
}
