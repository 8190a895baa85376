package curve

import (
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"
)

// P256 is the FROST(P-256, SHA-256) ciphersuite. No library in the
// retrieved pack offers generic short-Weierstrass field arithmetic for
// NIST P-256 (the decred module is secp256k1-specific); this backend
// therefore uses stdlib crypto/elliptic and math/big, matching the
// teacher's own big.Int-based curve arithmetic style in curve.go.
type P256 struct{}

var _ Curve = P256{}

func (P256) Name() string         { return "P-256" }
func (P256) ID() []byte           { return []byte("P-256") }
func (P256) FLen() int            { return 32 }
func (P256) GLen() int            { return 33 }
func (P256) LittleEndian() bool   { return false }
func (P256) Context() string      { return "FROST-P256-SHA256-v5" }

func (P256) Generator() Point {
	c := elliptic.P256()
	return &p256Point{x: new(big.Int).Set(c.Params().Gx), y: new(big.Int).Set(c.Params().Gy)}
}

func (P256) Identity() Point {
	return &p256Point{identity: true}
}

func (P256) ZeroScalar() Scalar {
	return &p256Scalar{v: big.NewInt(0)}
}

func (P256) ScalarFromUint16(v uint16) Scalar {
	return &p256Scalar{v: big.NewInt(int64(v))}
}

func (P256) RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf[:])
	v.Mod(v, p256Order)
	if v.Sign() == 0 {
		return nil, fmt.Errorf("curve: p256: sampled zero scalar, retry")
	}
	return &p256Scalar{v: v}, nil
}

func (P256) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("curve: p256: scalar must be 32 bytes, got %d", len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(p256Order) >= 0 {
		return nil, fmt.Errorf("curve: p256: scalar out of range")
	}
	return &p256Scalar{v: v}, nil
}

func (P256) PointFromBytes(b []byte) (Point, error) {
	c := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(c, b)
	if x == nil {
		return nil, fmt.Errorf("curve: p256: invalid or non-canonical point encoding")
	}
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, fmt.Errorf("curve: p256: identity point rejected")
	}
	return &p256Point{x: x, y: y}, nil
}

func (c P256) HashToScalar(dst, msg []byte) Scalar {
	dst = oversizeDST(func(b []byte) []byte { h := sha256.Sum256(b); return h[:] }, dst)
	wide, err := expandMessageXMD(msg, dst, 48)
	if err != nil {
		panic(err)
	}
	v := new(big.Int).SetBytes(reduceModN(wide, p256Order, 32))
	return &p256Scalar{v: v}
}

// WideReduceScalar reduces an arbitrary-length wide value modulo the P-256
// group order directly, with no intermediate hash.
func (P256) WideReduceScalar(wide []byte) Scalar {
	v := new(big.Int).SetBytes(reduceModN(wide, p256Order, 32))
	return &p256Scalar{v: v}
}

func (c P256) HashMsg(msg []byte) []byte {
	h := sha256.Sum256(append([]byte(c.Context()), append([]byte("digest"), msg...)...))
	return h[:]
}

func (c P256) HashBindingFactor(data []byte) Scalar {
	return c.HashToScalar(append([]byte(c.Context()), []byte("rho")...), data)
}

func (c P256) NonceGenerate(secret Scalar, rng io.Reader) (Scalar, error) {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}
	seed = append(seed, secret.Bytes()...)
	return c.HashToScalar(append([]byte(c.Context()), []byte("nonce")...), seed), nil
}

type p256Scalar struct {
	v *big.Int
}

func (a *p256Scalar) Add(b Scalar) Scalar {
	r := new(big.Int).Add(a.v, b.(*p256Scalar).v)
	r.Mod(r, p256Order)
	return &p256Scalar{v: r}
}

func (a *p256Scalar) Sub(b Scalar) Scalar {
	r := new(big.Int).Sub(a.v, b.(*p256Scalar).v)
	r.Mod(r, p256Order)
	return &p256Scalar{v: r}
}

func (a *p256Scalar) Mul(b Scalar) Scalar {
	r := new(big.Int).Mul(a.v, b.(*p256Scalar).v)
	r.Mod(r, p256Order)
	return &p256Scalar{v: r}
}

func (a *p256Scalar) Negate() Scalar {
	r := new(big.Int).Neg(a.v)
	r.Mod(r, p256Order)
	return &p256Scalar{v: r}
}

func (a *p256Scalar) Invert() Scalar {
	r := new(big.Int).ModInverse(a.v, p256Order)
	return &p256Scalar{v: r}
}

func (a *p256Scalar) Equal(b Scalar) bool {
	ob, ok := b.(*p256Scalar)
	if !ok {
		return false
	}
	return a.v.Cmp(ob.v) == 0
}

func (a *p256Scalar) IsZero() bool { return a.v.Sign() == 0 }

func (a *p256Scalar) Bytes() []byte {
	out := make([]byte, 32)
	a.v.FillBytes(out)
	return out
}

type p256Point struct {
	x, y     *big.Int
	identity bool
}

func (p *p256Point) Add(q Point) Point {
	c := elliptic.P256()
	ob := q.(*p256Point)
	if p.identity {
		return ob
	}
	if ob.identity {
		return p
	}
	x, y := c.Add(p.x, p.y, ob.x, ob.y)
	if x.Sign() == 0 && y.Sign() == 0 {
		return &p256Point{identity: true}
	}
	return &p256Point{x: x, y: y}
}

func (p *p256Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

func (p *p256Point) Negate() Point {
	if p.identity {
		return p
	}
	c := elliptic.P256()
	negY := new(big.Int).Sub(c.Params().P, p.y)
	return &p256Point{x: p.x, y: negY}
}

func (p *p256Point) ScalarMult(s Scalar) Point {
	c := elliptic.P256()
	if p.identity {
		return p
	}
	x, y := c.ScalarMult(p.x, p.y, s.(*p256Scalar).v.Bytes())
	if x.Sign() == 0 && y.Sign() == 0 {
		return &p256Point{identity: true}
	}
	return &p256Point{x: x, y: y}
}

func (p *p256Point) Equal(q Point) bool {
	ob, ok := q.(*p256Point)
	if !ok {
		return false
	}
	if p.identity || ob.identity {
		return p.identity == ob.identity
	}
	return p.x.Cmp(ob.x) == 0 && p.y.Cmp(ob.y) == 0
}

func (p *p256Point) IsIdentity() bool { return p.identity }

func (p *p256Point) Bytes() []byte {
	if p.identity {
		return make([]byte, 33)
	}
	return elliptic.MarshalCompressed(elliptic.P256(), p.x, p.y)
}
