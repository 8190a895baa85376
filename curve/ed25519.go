package curve

import (
	"bytes"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/zeebo/blake3"
)

// Ed25519 is the curve the CLSAG instantiation signs over (spec.md section
// 4.7). Grounded in filippo.io/edwards25519, the same module
// smallyunet-go-cggmp-tss uses for its scalar/point arithmetic.
//
// Unlike the prime-field curves above, Ed25519's scalar hashing uses the
// group's native wide (64-byte, SHA-512) reduction rather than
// expand_message_xmd: spec.md section 4.1 scopes the XMD-over-48-bytes
// construction to "prime-field curves", and edwards25519.Scalar exposes
// SetUniformBytes specifically for this purpose.
type Ed25519 struct{}

var _ Curve = Ed25519{}

func (Ed25519) Name() string       { return "ed25519" }
func (Ed25519) ID() []byte         { return []byte("ed25519") }
func (Ed25519) FLen() int          { return 32 }
func (Ed25519) GLen() int          { return 32 }
func (Ed25519) LittleEndian() bool { return true }
func (Ed25519) Context() string    { return "FROST-ed25519-SHA512-v1" }

func (Ed25519) Generator() Point {
	return &ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (Ed25519) Identity() Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (Ed25519) ZeroScalar() Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar()}
}

func (Ed25519) ScalarFromUint16(v uint16) Scalar {
	var wide [64]byte
	wide[0] = byte(v)
	wide[1] = byte(v >> 8)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return &ed25519Scalar{s: s}
}

func (Ed25519) RandomScalar(rng io.Reader) (Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rng, wide[:]); err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, err
	}
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, fmt.Errorf("curve: ed25519: sampled zero scalar, retry")
	}
	return &ed25519Scalar{s: s}, nil
}

func (Ed25519) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("curve: ed25519: scalar must be 32 bytes, got %d", len(b))
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve: ed25519: scalar out of range: %w", err)
	}
	return &ed25519Scalar{s: s}, nil
}

func (Ed25519) PointFromBytes(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("curve: ed25519: point must be 32 bytes, got %d", len(b))
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve: ed25519: invalid point: %w", err)
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("curve: ed25519: non-canonical point encoding")
	}
	if p.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, fmt.Errorf("curve: ed25519: identity point rejected")
	}
	return &ed25519Point{p: p}, nil
}

func (c Ed25519) HashToScalar(dst, msg []byte) Scalar {
	h := sha512.New()
	h.Write(dst)
	h.Write(msg)
	s, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic(err)
	}
	return &ed25519Scalar{s: s}
}

// WideReduceScalar reduces a 64-byte uniform value directly via
// SetUniformBytes, with no intermediate hash: the "from_bytes_mod_order_wide"
// operation CLSAG's mask derivation needs, as opposed to HashToScalar which
// hashes its input first.
func (Ed25519) WideReduceScalar(wide []byte) Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		panic(err)
	}
	return &ed25519Scalar{s: s}
}

// HashMsg pre-hashes with BLAKE3 rather than the SHA-512 used for
// hash-to-scalar: this digest never feeds edwards25519.SetUniformBytes, so
// it is free to use the faster hash, matching the pack's general pull
// toward BLAKE3 outside of curve-mandated hashing.
func (c Ed25519) HashMsg(msg []byte) []byte {
	h := blake3.Sum256(append([]byte(c.Context()), append([]byte("digest"), msg...)...))
	return h[:32]
}

func (c Ed25519) HashBindingFactor(data []byte) Scalar {
	return c.HashToScalar(append([]byte(c.Context()), []byte("rho")...), data)
}

func (c Ed25519) NonceGenerate(secret Scalar, rng io.Reader) (Scalar, error) {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}
	seed = append(seed, secret.Bytes()...)
	return c.HashToScalar(append([]byte(c.Context()), []byte("nonce")...), seed), nil
}

type ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (a *ed25519Scalar) Add(b Scalar) Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Add(a.s, b.(*ed25519Scalar).s)}
}

func (a *ed25519Scalar) Sub(b Scalar) Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Subtract(a.s, b.(*ed25519Scalar).s)}
}

func (a *ed25519Scalar) Mul(b Scalar) Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Multiply(a.s, b.(*ed25519Scalar).s)}
}

func (a *ed25519Scalar) Negate() Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Negate(a.s)}
}

func (a *ed25519Scalar) Invert() Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Invert(a.s)}
}

func (a *ed25519Scalar) Equal(b Scalar) bool {
	ob, ok := b.(*ed25519Scalar)
	if !ok {
		return false
	}
	return a.s.Equal(ob.s) == 1
}

func (a *ed25519Scalar) IsZero() bool {
	return a.s.Equal(edwards25519.NewScalar()) == 1
}

func (a *ed25519Scalar) Bytes() []byte {
	return a.s.Bytes()
}

type ed25519Point struct {
	p *edwards25519.Point
}

func (p *ed25519Point) Add(q Point) Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Add(p.p, q.(*ed25519Point).p)}
}

func (p *ed25519Point) Sub(q Point) Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Subtract(p.p, q.(*ed25519Point).p)}
}

func (p *ed25519Point) Negate() Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Negate(p.p)}
}

func (p *ed25519Point) ScalarMult(s Scalar) Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(s.(*ed25519Scalar).s, p.p)}
}

func (p *ed25519Point) Equal(q Point) bool {
	ob, ok := q.(*ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(ob.p) == 1
}

func (p *ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}
