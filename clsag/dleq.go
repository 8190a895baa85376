package clsag

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
)

// dleqDST domain-separates the Chaum-Pedersen equality proof binding a
// nonce commitment on the standard generator G to the same scalar's
// commitment on the alternate generator H (spec.md section 4.7).
const dleqDST = "CLSAG DLEq"

// Proof is a non-interactive Chaum-Pedersen proof that xG and xH share
// the same discrete log x, without revealing x. Serializes as
// challenge ‖ response, 2*F_len bytes (64 for Ed25519).
type Proof struct {
	Challenge curve.Scalar
	Response  curve.Scalar
}

func transcript(c curve.Curve, h, xG, xH, commitG, commitH curve.Point) []byte {
	t := append([]byte{}, c.Generator().Bytes()...)
	t = append(t, h.Bytes()...)
	t = append(t, xG.Bytes()...)
	t = append(t, xH.Bytes()...)
	t = append(t, commitG.Bytes()...)
	t = append(t, commitH.Bytes()...)
	return t
}

// Prove constructs a DLEq proof that x (whose image on G is xG) has the
// same discrete log against alternate generator h, given xh = x*h.
func Prove(c curve.Curve, rng io.Reader, x curve.Scalar, h, xh curve.Point) (*Proof, error) {
	r, err := c.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	commitG := c.Generator().ScalarMult(r)
	commitH := h.ScalarMult(r)

	xG := c.Generator().ScalarMult(x)
	chal := c.HashToScalar([]byte(dleqDST), transcript(c, h, xG, xh, commitG, commitH))
	resp := r.Add(chal.Mul(x))

	return &Proof{Challenge: chal, Response: resp}, nil
}

// Verify checks that xG and xh share a discrete log, where xG is the
// already-known commitment on the standard generator (a peer's published
// nonce commitment D_l or E_l).
func (p *Proof) Verify(c curve.Curve, h, xG, xh curve.Point) bool {
	commitG := c.Generator().ScalarMult(p.Response).Sub(xG.ScalarMult(p.Challenge))
	commitH := h.ScalarMult(p.Response).Sub(xh.ScalarMult(p.Challenge))
	chal := c.HashToScalar([]byte(dleqDST), transcript(c, h, xG, xh, commitG, commitH))
	return chal.Equal(p.Challenge)
}

// Serialize encodes the proof as challenge ‖ response.
func (p *Proof) Serialize() []byte {
	return append(append([]byte{}, p.Challenge.Bytes()...), p.Response.Bytes()...)
}

// Deserialize parses a proof produced by Serialize.
func Deserialize(c curve.Curve, data []byte) (*Proof, error) {
	if len(data) != 2*c.FLen() {
		return nil, frosterr.New(frosterr.InvalidCommitment, "DLEq proof has the wrong length")
	}
	chal, err := c.ScalarFromBytes(data[:c.FLen()])
	if err != nil {
		return nil, frosterr.New(frosterr.InvalidCommitment, "DLEq challenge is out of range")
	}
	resp, err := c.ScalarFromBytes(data[c.FLen():])
	if err != nil {
		return nil, frosterr.New(frosterr.InvalidCommitment, "DLEq response is out of range")
	}
	return &Proof{Challenge: chal, Response: resp}, nil
}
