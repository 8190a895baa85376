package clsag

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
	"github.com/ringfrost/frost/keys"
)

var _ algorithm.Algorithm = (*Multisig)(nil)

// Multisig is the Algorithm implementation (spec.md section 4.7) wiring
// CLSAG into the generic sign state machine. It is single-use: construct
// a fresh value per signature with New.
//
// Grounded on the Algorithm<Ed25519> impl in
// _examples/original_source/coins/monero/src/clsag/multisig.rs, adapted
// from dalek_ff_group's hard-coded Ed25519 types to this module's
// curve.Curve interface.
type Multisig struct {
	curve curve.Curve
	msg   []byte
	input *SignableInput
	h     curve.Point // hash_to_point(ring member's key), the DLEq alternate generator

	b  []byte      // running transcript of every peer's (d·H, e·H)
	ah curve.Point // Σ_l d_l·H + ρ_l·e_l·H

	interim *signInterim
}

type signInterim struct {
	cMuP    curve.Scalar // c·μ_P, subtracted from each party's share
	s       curve.Scalar // c·μ_C·mask, subtracted from the aggregated sum at the signer's slot
	partial *Signature
	cOut    curve.Point
}

// New constructs the CLSAG algorithm for signing msg over the given ring
// membership and real index.
func New(c curve.Curve, msg []byte, input *SignableInput) *Multisig {
	return &Multisig{
		curve: c,
		msg:   msg,
		input: input,
		h:     hashToPoint(c, input.Ring.Keys[input.Index]),
		ah:    c.Identity(),
	}
}

func (m *Multisig) Context() []byte {
	return append(append([]byte{}, m.msg...), m.input.Context()...)
}

// AddendumCommitLen is 2·G_len + 2·(2·F_len): two alternate-generator
// commitments plus two DLEq proofs (spec.md section 4.7's 192-byte
// layout for Ed25519: 32+32+64+64).
func (m *Multisig) AddendumCommitLen() int {
	return 2*m.curve.GLen() + 2*(2*m.curve.FLen())
}

// PreprocessAddendum commits each nonce to the alternate generator H and
// proves, via Chaum-Pedersen DLEq, that the commitment shares the same
// scalar as the party's published D/E on G.
func (m *Multisig) PreprocessAddendum(rng io.Reader, view *keys.View, d, e curve.Scalar) ([]byte, error) {
	h0 := m.h.ScalarMult(d)
	h1 := m.h.ScalarMult(e)

	proof0, err := Prove(m.curve, rng, d, m.h, h0)
	if err != nil {
		return nil, err
	}
	proof1, err := Prove(m.curve, rng, e, m.h, h1)
	if err != nil {
		return nil, err
	}

	out := append([]byte{}, h0.Bytes()...)
	out = append(out, h1.Bytes()...)
	out = append(out, proof0.Serialize()...)
	out = append(out, proof1.Serialize()...)
	return out, nil
}

// ProcessAddendum verifies peer l's DLEq proofs against its published
// (D_l, E_l) and the shared alternate generator H, then folds its
// contribution into the running transcript b and the accumulated AH.
func (m *Multisig) ProcessAddendum(view *keys.View, l uint16, d, e curve.Point, binding curve.Scalar, addendum []byte) error {
	if len(addendum) != m.AddendumCommitLen() {
		return frosterr.New(frosterr.InvalidCommitmentQuantity, "CLSAG addendum has the wrong length")
	}

	glen, flen := m.curve.GLen(), m.curve.FLen()
	h0, err := m.curve.PointFromBytes(addendum[:glen])
	if err != nil {
		return frosterr.New(frosterr.InvalidCommitment, "alternate-generator commitment h0 is not a valid point")
	}
	h1, err := m.curve.PointFromBytes(addendum[glen : 2*glen])
	if err != nil {
		return frosterr.New(frosterr.InvalidCommitment, "alternate-generator commitment h1 is not a valid point")
	}

	proofStart := 2 * glen
	proof0, err := Deserialize(m.curve, addendum[proofStart:proofStart+2*flen])
	if err != nil {
		return frosterr.New(frosterr.InvalidCommitment, "DLEq proof for d is malformed")
	}
	proof1, err := Deserialize(m.curve, addendum[proofStart+2*flen:])
	if err != nil {
		return frosterr.New(frosterr.InvalidCommitment, "DLEq proof for e is malformed")
	}

	if !proof0.Verify(m.curve, m.h, d, h0) {
		return frosterr.New(frosterr.InvalidCommitment, "DLEq proof for d failed verification")
	}
	if !proof1.Verify(m.curve, m.h, e, h1) {
		return frosterr.New(frosterr.InvalidCommitment, "DLEq proof for e failed verification")
	}

	// The running transcript b encodes l little-endian, unlike every other
	// FROST index encoding in this module, matching multisig.rs's
	// l.to_le_bytes(): all parties must derive an identical transcript, and
	// this asymmetry is preserved rather than "fixed" so the derivation
	// stays a pure function of the addendum bytes already exchanged.
	var le16 [2]byte
	binary.LittleEndian.PutUint16(le16[:], l)
	m.b = append(m.b, le16[:]...)
	m.b = append(m.b, h0.Bytes()...)
	m.b = append(m.b, h1.Bytes()...)

	m.ah = m.ah.Add(h0).Add(h1.ScalarMult(binding))
	return nil
}

// SignShare derives the agreed randomness every party computes
// identically from the shared transcript b, runs the CLSAG ring
// equations to close the ring at the signer's position, and returns this
// party's contribution to the final response at that position.
func (m *Multisig) SignShare(view *keys.View, nonceSum curve.Point, nonce curve.Scalar, msg []byte) curve.Scalar {
	c := m.curve
	randSource := blake2bSum(append([]byte("clsag_randomness"), m.b...))
	mask := c.WideReduceScalar(randSource)
	randSource = blake2bSum(randSource)

	partial, chal, muP, muC, cOut := signCore(c, m.msg, m.input, mask, nonceSum, m.ah, randSource)

	m.interim = &signInterim{
		cMuP:    chal.Mul(muP),
		s:       chal.Mul(muC).Mul(mask),
		partial: partial,
		cOut:    cOut,
	}

	return nonce.Sub(m.interim.cMuP.Mul(view.SecretShare()))
}

// Verify fills in the signer's slot in the partial CLSAG with the
// aggregated response and checks the completed ring signature.
func (m *Multisig) Verify(view *keys.View, nonceSum curve.Point, sum curve.Scalar) (any, bool) {
	interim := m.interim
	sig := &Signature{C0: interim.partial.C0, D: interim.partial.D, S: append([]curve.Scalar{}, interim.partial.S...)}
	sig.S[m.input.Index] = sum.Sub(interim.s)

	if !Verify(m.curve, sig, m.msg, m.input.Ring, m.input.Image, interim.cOut) {
		return nil, false
	}
	return &Output{Signature: sig, COut: interim.cOut}, true
}

// VerifyShare checks share_l·G = nonce_commitment_l − c·μ_P·v_l, where
// v_l is peer l's Lagrange-adjusted verification share.
func (m *Multisig) VerifyShare(view *keys.View, l uint16, verificationShare curve.Point, nonceCommitment curve.Point, share curve.Scalar) bool {
	g := m.curve.Generator()
	lhs := g.ScalarMult(share)
	rhs := nonceCommitment.Sub(verificationShare.ScalarMult(m.interim.cMuP))
	return lhs.Equal(rhs)
}

// Output is the assembled CLSAG signature and the output commitment it
// was signed against.
type Output struct {
	Signature *Signature
	COut      curve.Point
}

func blake2bSum(data []byte) []byte {
	h := blake2b.Sum512(data)
	return h[:]
}
