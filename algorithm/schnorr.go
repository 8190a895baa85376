package algorithm

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/schnorr"
)

// Schnorr is the plain threshold Schnorr Algorithm (spec.md section 4.5):
// no preprocessing addendum, challenge c = H(R ‖ group_key ‖ msg) under the
// curve's "chal" domain separator, and share z_i = nonce + x_i·c where x_i
// is the view's already Lagrange-adjusted secret share.
//
// A Schnorr value is single-use: SignShare caches the challenge so the
// later VerifyShare calls (which the interface does not hand nonce_sum or
// msg again) can reuse it.
type Schnorr struct {
	curve curve.Curve
	msg   []byte

	chal curve.Scalar // set by SignShare
}

// NewSchnorr constructs the plain Schnorr algorithm for signing msg.
func NewSchnorr(c curve.Curve, msg []byte) *Schnorr {
	return &Schnorr{curve: c, msg: msg}
}

func (s *Schnorr) Context() []byte {
	return append(append([]byte{}, []byte(s.curve.Context())...), s.msg...)
}

func (s *Schnorr) AddendumCommitLen() int { return 0 }

func (s *Schnorr) PreprocessAddendum(io.Reader, *keys.View, curve.Scalar, curve.Scalar) ([]byte, error) {
	return nil, nil
}

func (s *Schnorr) ProcessAddendum(*keys.View, uint16, curve.Point, curve.Point, curve.Scalar, []byte) error {
	return nil
}

// challenge computes Hram(R, group_key, msg) under DST context()+"chal".
func (s *Schnorr) challenge(view *keys.View, nonceSum curve.Point) curve.Scalar {
	c := view.Curve()
	dst := append([]byte(c.Context()), []byte("chal")...)
	transcript := append([]byte{}, nonceSum.Bytes()...)
	transcript = append(transcript, view.GroupKey().Bytes()...)
	transcript = append(transcript, s.msg...)
	return c.HashToScalar(dst, transcript)
}

// SignShare computes z_i = (d + ρ_i·e) + x_i·c, caching c for the
// VerifyShare calls this same Algorithm instance will later serve during
// Complete.
func (s *Schnorr) SignShare(view *keys.View, nonceSum curve.Point, nonce curve.Scalar, msg []byte) curve.Scalar {
	s.chal = s.challenge(view, nonceSum)
	return nonce.Add(view.SecretShare().Mul(s.chal))
}

// Verify checks sum·G = nonceSum + group_key·c and returns the assembled
// Schnorr signature on success.
func (s *Schnorr) Verify(view *keys.View, nonceSum curve.Point, sum curve.Scalar) (any, bool) {
	chal := s.challenge(view, nonceSum)
	sig := &schnorr.Signature{R: nonceSum, S: sum}
	if !schnorr.Verify(view.Curve().Generator(), view.GroupKey(), chal, sig) {
		return nil, false
	}
	return sig, true
}

// VerifyShare checks share_l·G = nonce_commitment_l + v_l·c, where
// verificationShare is peer l's already Lagrange-adjusted verification
// share and the challenge is the one cached by SignShare.
func (s *Schnorr) VerifyShare(view *keys.View, l uint16, verificationShare curve.Point, nonceCommitment curve.Point, share curve.Scalar) bool {
	g := view.Curve().Generator()
	lhs := g.ScalarMult(share)
	rhs := nonceCommitment.Add(verificationShare.ScalarMult(s.chal))
	return lhs.Equal(rhs)
}
