// Package schnorr implements the single and batched Schnorr primitive
// spec.md section 4.2 describes, over any curve.Curve. Grounded in
// _examples/original_source/crypto/frost/src/schnorr.rs, generalized from
// the Rust crate's hard-coded associated-type curve to this module's
// curve.Curve interface.
package schnorr

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/msm"
)

// Signature is (R, s): R = r·G, s = r + x·c.
type Signature struct {
	R curve.Point
	S curve.Scalar
}

// Serialize encodes the signature as R‖s, fixed width per curve.
func (sig *Signature) Serialize() []byte {
	return append(append([]byte{}, sig.R.Bytes()...), sig.S.Bytes()...)
}

// Deserialize parses a signature serialized by Serialize. The point is
// validated by c.PointFromBytes (rejecting the identity and non-canonical
// encodings) and the scalar by c.ScalarFromBytes.
func Deserialize(c curve.Curve, data []byte) (*Signature, error) {
	if len(data) != c.GLen()+c.FLen() {
		return nil, curveErr("schnorr: signature has wrong length")
	}
	r, err := c.PointFromBytes(data[:c.GLen()])
	if err != nil {
		return nil, err
	}
	s, err := c.ScalarFromBytes(data[c.GLen():])
	if err != nil {
		return nil, err
	}
	return &Signature{R: r, S: s}, nil
}

// Sign computes sign(x, r, c) = (r·G, r + x·c) (spec.md section 4.2).
func Sign(g curve.Point, privateKey, nonce, challenge curve.Scalar) *Signature {
	return &Signature{
		R: g.ScalarMult(nonce),
		S: nonce.Add(privateKey.Mul(challenge)),
	}
}

// Verify checks sig.s·G = sig.R + c·A.
func Verify(g curve.Point, publicKey curve.Point, challenge curve.Scalar, sig *Signature) bool {
	lhs := g.ScalarMult(sig.S)
	rhs := sig.R.Add(publicKey.ScalarMult(challenge))
	return lhs.Equal(rhs)
}

// Triplet is one signature to verify in a batch: the claimed signer id
// (for blame), its public key, the challenge it was signed against, and
// the signature itself.
type Triplet struct {
	ID        uint16
	PublicKey curve.Point
	Challenge curve.Scalar
	Sig       *Signature
}

// BatchVerify checks R + c·A - s·G == 0 for every triplet via a single
// randomized multi-scalar check (spec.md section 4.2), returning the id of
// the first triplet that fails individually on batch failure.
func BatchVerify(c curve.Curve, rng io.Reader, triplets []Triplet) (uint16, bool, error) {
	g := c.Generator()
	batch := msm.New(c)
	for _, t := range triplets {
		batch.Queue(t.ID, []msm.Term{
			{Scalar: c.ScalarFromUint16(1), Point: t.Sig.R},
			{Scalar: t.Challenge, Point: t.PublicKey},
			{Scalar: t.Sig.S.Negate(), Point: g},
		})
	}
	return batch.VerifyWithBlame(rng)
}

type curveErr string

func (e curveErr) Error() string { return string(e) }
