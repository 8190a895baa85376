package keys

import (
	"github.com/ringfrost/frost/curve"
)

// MultisigKeys is the persistent output of DKG (spec.md section 3): this
// participant's Shamir share of the group secret, the group public key,
// and every participant's public verification share. Offset is ephemeral
// and never serialized.
type MultisigKeys struct {
	Curve               curve.Curve
	Params              Params
	SecretShare         curve.Scalar
	GroupKey            curve.Point
	VerificationShares  map[uint16]curve.Point
	Offset              curve.Scalar // nil when unset
}

// WithOffset returns a new MultisigKeys with an ephemeral scalar offset
// applied, following spec.md section 4.4: the offset accumulates across
// repeated calls ("keys offset multiple times will form a new offset of
// their sum"), and the group key is shifted by δ·G immediately so callers
// see the offset group key without needing a view.
//
// Grounded exactly on MultisigKeys::offset in
// _examples/original_source/crypto/frost/src/lib.rs.
func (k *MultisigKeys) WithOffset(delta curve.Scalar) *MultisigKeys {
	res := k.clone()
	if res.Offset != nil {
		res.Offset = res.Offset.Add(delta)
	} else {
		res.Offset = delta
	}
	res.GroupKey = res.GroupKey.Add(k.Curve.Generator().ScalarMult(delta))
	return res
}

func (k *MultisigKeys) clone() *MultisigKeys {
	vs := make(map[uint16]curve.Point, len(k.VerificationShares))
	for i, v := range k.VerificationShares {
		vs[i] = v
	}
	return &MultisigKeys{
		Curve:              k.Curve,
		Params:             k.Params,
		SecretShare:        k.SecretShare,
		GroupKey:           k.GroupKey,
		VerificationShares: vs,
		Offset:             k.Offset,
	}
}
