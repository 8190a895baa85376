// Package curve abstracts the scalar field and point group each ciphersuite
// signs over: fixed-length canonical (de)serialization, domain-separated
// hashing, and the handful of curve-specific constants FROST and CLSAG need.
//
// This mirrors the teacher's Ciphersuite/Curve split in frost/ciphersuite.go,
// generalized from a single hard-coded secp256k1 big.Int curve to an
// interface implemented once per concrete curve (curve/secp256k1.go,
// curve/p256.go, curve/ed25519.go), following
// _examples/original_source/crypto/frost/src/curve/kp256.rs's Curve trait.
package curve

import "io"

// Scalar is an element of a curve's scalar field.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	// Bytes returns the fixed-length canonical encoding of the scalar.
	Bytes() []byte
}

// Point is an element of a curve's prime-order group.
type Point interface {
	Add(Point) Point
	Sub(Point) Point
	ScalarMult(Scalar) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
	// Bytes returns the fixed-length canonical encoding of the point.
	Bytes() []byte
}

// Curve is the capability set spec.md section 3 requires of every
// ciphersuite: scalar/point construction, fixed lengths, canonical
// (de)serialization that rejects the identity and non-canonical encodings,
// and the curve's domain-separated hash functions.
type Curve interface {
	// Name is a human-readable identifier, e.g. "secp256k1".
	Name() string
	// ID is the byte identifier serialized as part of MultisigKeys
	// (spec.md section 4.4), e.g. []byte("secp256k1").
	ID() []byte

	FLen() int
	GLen() int
	// LittleEndian reports the byte order the batched verifier should use
	// for this curve's points (spec.md section 9).
	LittleEndian() bool

	Generator() Point
	Identity() Point

	ZeroScalar() Scalar
	ScalarFromUint16(uint16) Scalar
	RandomScalar(rng io.Reader) (Scalar, error)

	// F_from_slice / G_from_slice (spec.md section 4.1): fail on
	// out-of-range scalars and on non-canonical or identity points.
	ScalarFromBytes(b []byte) (Scalar, error)
	PointFromBytes(b []byte) (Point, error)

	// HashToScalar is hash_to_F(dst, msg).
	HashToScalar(dst, msg []byte) Scalar
	// WideReduceScalar reduces an already-hashed wide byte string directly
	// to a scalar, with no further hashing and no DST: the raw
	// "from_bytes_mod_order_wide" operation CLSAG's mask derivation needs
	// (spec.md section 4.7), distinct from HashToScalar's
	// hash-then-reduce.
	WideReduceScalar(wide []byte) Scalar
	// HashMsg is hash_msg(msg): a fixed-size pre-hash of the message used
	// to keep hash inputs bounded regardless of message length.
	HashMsg(msg []byte) []byte
	// HashBindingFactor is hash_binding_factor(binding).
	HashBindingFactor(data []byte) Scalar
	// NonceGenerate is random_nonce(secret, rng): §4.1.
	NonceGenerate(secret Scalar, rng io.Reader) (Scalar, error)

	// Context is the ciphersuite's base context string, e.g.
	// "FROST-secp256k1-SHA256-v5", used as a prefix DST by callers for
	// "digest", "nonce", "rho", and "chal" (spec.md section 6).
	Context() string
}

// oversizeDST implements spec.md section 4.1's DST-oversize rule: "hash_to_F
// with DST longer than 255 bytes first replaces the DST with
// SHA256('H2C-OVERSIZE-DST-' || DST)".
func oversizeDST(hash func([]byte) []byte, dst []byte) []byte {
	if len(dst) <= 255 {
		return dst
	}
	return hash(append([]byte("H2C-OVERSIZE-DST-"), dst...))
}
