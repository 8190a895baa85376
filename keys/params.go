// Package keys implements MultisigParams, MultisigKeys, and MultisigView
// (spec.md section 3 and 4.4), grounded in
// _examples/original_source/crypto/frost/src/lib.rs, generalized from the
// Rust crate's curve-as-type-parameter to this module's curve.Curve
// interface value.
package keys

import "github.com/ringfrost/frost/frosterr"

// Params is (t, n, i): threshold, participant count, this participant's
// 1-based index (spec.md section 3).
type Params struct {
	t, n, i uint16
}

// NewParams validates and constructs a Params, matching
// MultisigParams::new in lib.rs exactly: t and n must be non-zero, t must
// not exceed n, and i must be a valid 1-based index into [1, n].
func NewParams(t, n, i uint16) (Params, error) {
	if t == 0 || n == 0 {
		return Params{}, frosterr.New(frosterr.ZeroParameter, "t and n must be non-zero")
	}
	if t > n {
		return Params{}, frosterr.New(frosterr.InvalidRequiredQuantity, "threshold exceeds participant count")
	}
	if i == 0 || i > n {
		return Params{}, frosterr.New(frosterr.InvalidParticipantIndex, "index out of [1, n] range")
	}
	return Params{t: t, n: n, i: i}, nil
}

func (p Params) T() uint16 { return p.t }
func (p Params) N() uint16 { return p.n }
func (p Params) I() uint16 { return p.i }

// All returns [1, n] in order, the canonical "everyone" participant set.
func (p Params) All() []uint16 {
	out := make([]uint16, p.n)
	for i := range out {
		out[i] = uint16(i) + 1
	}
	return out
}
