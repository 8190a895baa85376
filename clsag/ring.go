package clsag

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/ringfrost/frost/curve"
)

// Ring is the decoy set a CLSAG signature hides the real signer within:
// parallel slices of one-time public keys and their Pedersen output
// commitments.
type Ring struct {
	Keys        []curve.Point
	Commitments []curve.Point
}

func (r Ring) Len() int { return len(r.Keys) }

// SignableInput bundles everything CLSAG needs beyond the message: the
// ring, which position in it is the real signer, and that signer's key
// image (spec.md section 4.7).
type SignableInput struct {
	Ring  Ring
	Index int // 0-based real signer position within Ring
	Image curve.Point
}

// Context returns the ring/key-image transcript mixed into the
// Algorithm's domain separator, so a signature over one ring can never be
// replayed as valid for another.
func (in *SignableInput) Context() []byte {
	out := append([]byte{}, in.Image.Bytes()...)
	for i := range in.Ring.Keys {
		out = append(out, in.Ring.Keys[i].Bytes()...)
		out = append(out, in.Ring.Commitments[i].Bytes()...)
	}
	return out
}

// hashToPoint derives a second generator from a ring member's public key
// via try-and-increment: repeatedly hash until a canonical point decodes,
// then clear the cofactor so the result lies in the prime-order subgroup.
// Grounded on the hash_to_point call multisig.rs makes before this
// module's curve abstraction existed; reimplemented purely against the
// curve.Curve interface so it works for any curve.Point encoding. Monero's
// own hash_to_point is Keccak-based, so this uses SHA3 rather than the
// SHA-2 family the rest of the module reaches for.
func hashToPoint(c curve.Curve, p curve.Point) curve.Point {
	var counter [4]byte
	for n := uint32(0); ; n++ {
		binary.BigEndian.PutUint32(counter[:], n)
		h := sha3.Sum512(append(append([]byte("CLSAG_hash_to_point"), p.Bytes()...), counter[:]...))
		if candidate, err := c.PointFromBytes(h[:c.GLen()]); err == nil {
			return candidate.ScalarMult(c.ScalarFromUint16(8))
		}
	}
}
