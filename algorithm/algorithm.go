// Package algorithm defines the pluggable signature-scheme layer the sign
// state machine drives (spec.md section 4.5), and ships the plain-Schnorr
// implementation. CLSAG's implementation lives in package clsag and
// satisfies the same interface.
package algorithm

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/keys"
)

// Algorithm parameterizes the sign state machine over a signature scheme.
// A single Algorithm value is reused across preprocess/sign/complete for
// one signature; implementations that need interim state (CLSAG's
// challenge and masking scalars) store it on themselves and must not be
// shared across concurrent signatures.
type Algorithm interface {
	// Context returns the scheme-specific domain separator and message,
	// hashed into the binding factor transcript.
	Context() []byte

	// AddendumCommitLen is the fixed byte length of PreprocessAddendum's
	// output. Plain Schnorr contributes none.
	AddendumCommitLen() int

	// PreprocessAddendum returns scheme-specific public material to append
	// to this party's preprocess broadcast, derived from this party's own
	// nonces.
	PreprocessAddendum(rng io.Reader, view *keys.View, d, e curve.Scalar) ([]byte, error)

	// ProcessAddendum verifies peer l's addendum against l's published
	// nonce commitments (D_l, E_l) and binding factor, updating any
	// interim state the scheme accumulates across peers.
	ProcessAddendum(view *keys.View, l uint16, d, e curve.Point, binding curve.Scalar, addendum []byte) error

	// SignShare computes this party's contribution to the signature
	// scalar, given the aggregated nonce commitment R, this party's
	// sum of nonces (d + ρ_i·e), and the message.
	SignShare(view *keys.View, nonceSum curve.Point, nonce curve.Scalar, msg []byte) curve.Scalar

	// Verify checks the fully aggregated signature and returns the
	// scheme's signature object (e.g. *schnorr.Signature) on success.
	Verify(view *keys.View, nonceSum curve.Point, sum curve.Scalar) (any, bool)

	// VerifyShare checks one peer's signature share against its
	// Lagrange-adjusted verification share and nonce commitment,
	// enabling identifiable abort.
	VerifyShare(view *keys.View, l uint16, verificationShare curve.Point, nonceCommitment curve.Point, share curve.Scalar) bool
}
