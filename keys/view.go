package keys

import (
	"golang.org/x/exp/slices"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
)

// View is the ephemeral, per-signing-set projection of MultisigKeys
// (spec.md section 3): Lagrange-adjusted secret share and verification
// shares, with any offset divided evenly across the included set so
// signing stays unaware of whether the keys are offset.
type View struct {
	curve        curve.Curve
	groupKey     curve.Point
	index        uint16
	included     []uint16
	secretShare  curve.Scalar
	verification map[uint16]curve.Point
}

func (v *View) Curve() curve.Curve    { return v.curve }
func (v *View) GroupKey() curve.Point { return v.groupKey }
// Index is the owning participant's 1-based index, the same i passed to
// MultisigKeys.View's receiver.
func (v *View) Index() uint16                          { return v.index }
func (v *View) Included() []uint16                     { return append([]uint16{}, v.included...) }
func (v *View) SecretShare() curve.Scalar              { return v.secretShare }
func (v *View) VerificationShare(l uint16) curve.Point {
	return v.verification[l]
}

// View projects MultisigKeys onto a chosen signing set, per spec.md
// section 4.4: requires t ≤ |included| ≤ n, then computes each included
// party's Lagrange-adjusted share and verification share, with the offset
// split evenly across |included| parties.
//
// Grounded exactly on MultisigKeys::view in
// _examples/original_source/crypto/frost/src/lib.rs.
func (k *MultisigKeys) View(included []uint16) (*View, error) {
	if len(included) < int(k.Params.t) || len(included) > int(k.Params.n) {
		return nil, frosterr.New(frosterr.InvalidSigningSet, "invalid amount of participants included")
	}

	sorted := append([]uint16{}, included...)
	slices.Sort(sorted)
	seen := make(map[uint16]bool, len(sorted))
	for _, l := range sorted {
		if l == 0 || l > k.Params.n {
			return nil, frosterr.NewParty(frosterr.InvalidParticipantIndex, l, "index out of range")
		}
		if seen[l] {
			return nil, frosterr.New(frosterr.DuplicatedIndex, "duplicated index in signing set")
		}
		seen[l] = true
	}

	c := k.Curve
	offset := k.Offset
	if offset == nil {
		offset = c.ZeroScalar()
	}
	offsetShare := offset.Mul(c.ScalarFromUint16(uint16(len(sorted))).Invert())

	secretShare := k.SecretShare.Mul(Lagrange(c, k.Params.i, sorted)).Add(offsetShare)

	verification := make(map[uint16]curve.Point, len(k.VerificationShares))
	offsetPoint := c.Generator().ScalarMult(offsetShare)
	for l, share := range k.VerificationShares {
		verification[l] = share.ScalarMult(Lagrange(c, l, sorted)).Add(offsetPoint)
	}

	return &View{
		curve:        c,
		groupKey:     k.GroupKey,
		index:        k.Params.i,
		included:     sorted,
		secretShare:  secretShare,
		verification: verification,
	}, nil
}
