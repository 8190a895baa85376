package curve

import (
	"crypto/sha256"
	"fmt"
	"io"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 is the FROST(secp256k1, SHA-256) ciphersuite, grounded on
// github.com/decred/dcrd/dcrec/secp256k1/v4 (as used for the same curve in
// the luxfi-threshold and smallyunet-go-cggmp-tss example repos) rather than
// the teacher's ungated go-ethereum binding. Its hashes follow
// _examples/original_source/crypto/frost/src/curve/kp256.rs's NonIetfSecp256k1Hram
// instantiation: plain hash_to_F everywhere, no BIP-340 x-only tagging.
type Secp256k1 struct{}

var _ Curve = Secp256k1{}

func (Secp256k1) Name() string { return "secp256k1" }
func (Secp256k1) ID() []byte   { return []byte("secp256k1") }
func (Secp256k1) FLen() int    { return 32 }
func (Secp256k1) GLen() int    { return 33 }
func (Secp256k1) LittleEndian() bool { return false }
func (Secp256k1) Context() string    { return "FROST-secp256k1-SHA256-v5" }

func (Secp256k1) Generator() Point {
	var one secp.ModNScalar
	one.SetInt(1)
	var gen secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&one, &gen)
	gen.ToAffine()
	return &secp256k1Point{x: gen.X, y: gen.Y}
}

func (Secp256k1) Identity() Point {
	return &secp256k1Point{identity: true}
}

func (Secp256k1) ZeroScalar() Scalar {
	return &secp256k1Scalar{}
}

func (Secp256k1) ScalarFromUint16(v uint16) Scalar {
	var s secp.ModNScalar
	s.SetInt(uint32(v))
	return &secp256k1Scalar{s: s}
}

func (Secp256k1) RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, err
	}
	var s secp.ModNScalar
	s.SetByteSlice(buf[:])
	if s.IsZero() {
		return nil, fmt.Errorf("curve: secp256k1: sampled zero scalar, retry")
	}
	return &secp256k1Scalar{s: s}, nil
}

func (Secp256k1) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("curve: secp256k1: scalar must be 32 bytes, got %d", len(b))
	}
	var s secp.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("curve: secp256k1: scalar out of range")
	}
	return &secp256k1Scalar{s: s}, nil
}

func (Secp256k1) PointFromBytes(b []byte) (Point, error) {
	if len(b) != 33 {
		return nil, fmt.Errorf("curve: secp256k1: point must be 33 bytes, got %d", len(b))
	}
	pk, err := secp.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("curve: secp256k1: invalid point: %w", err)
	}
	// secp.ParsePubKey never returns the identity (it is not on the curve),
	// so the identity rejection spec.md section 4.1 requires holds without a
	// further check here.
	return &secp256k1Point{x: *pk.X(), y: *pk.Y()}, nil
}

func (c Secp256k1) HashToScalar(dst, msg []byte) Scalar {
	dst = oversizeDST(func(b []byte) []byte { h := sha256.Sum256(b); return h[:] }, dst)
	wide, err := expandMessageXMD(msg, dst, 48)
	if err != nil {
		panic(err)
	}
	return reduceWideToScalarSecp(wide)
}

func (c Secp256k1) HashMsg(msg []byte) []byte {
	h := sha256.Sum256(append([]byte(c.Context()), append([]byte("digest"), msg...)...))
	return h[:]
}

func (c Secp256k1) HashBindingFactor(data []byte) Scalar {
	return c.HashToScalar(append([]byte(c.Context()), []byte("rho")...), data)
}

func (c Secp256k1) NonceGenerate(secret Scalar, rng io.Reader) (Scalar, error) {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}
	seed = append(seed, secret.Bytes()...)
	return c.HashToScalar(append([]byte(c.Context()), []byte("nonce")...), seed), nil
}

// reduceWideToScalarSecp reduces a 48-byte wide value modulo the secp256k1
// group order, matching kp256.rs's U384-based wide reduction.
func reduceWideToScalarSecp(wide []byte) Scalar {
	var s secp.ModNScalar
	s.SetByteSlice(reduceModN(wide, secp256k1Order, 32))
	return &secp256k1Scalar{s: s}
}

// WideReduceScalar reduces an arbitrary-length wide value modulo the
// secp256k1 group order directly, with no intermediate hash.
func (Secp256k1) WideReduceScalar(wide []byte) Scalar {
	return reduceWideToScalarSecp(wide)
}

type secp256k1Scalar struct {
	s secp.ModNScalar
}

func (a *secp256k1Scalar) Add(b Scalar) Scalar {
	var r secp.ModNScalar
	r.Set(&a.s)
	r.Add(&b.(*secp256k1Scalar).s)
	return &secp256k1Scalar{s: r}
}

func (a *secp256k1Scalar) Sub(b Scalar) Scalar {
	var neg secp.ModNScalar
	neg.Set(&b.(*secp256k1Scalar).s)
	neg.Negate()
	var r secp.ModNScalar
	r.Set(&a.s)
	r.Add(&neg)
	return &secp256k1Scalar{s: r}
}

func (a *secp256k1Scalar) Mul(b Scalar) Scalar {
	var r secp.ModNScalar
	r.Set(&a.s)
	r.Mul(&b.(*secp256k1Scalar).s)
	return &secp256k1Scalar{s: r}
}

func (a *secp256k1Scalar) Negate() Scalar {
	var r secp.ModNScalar
	r.Set(&a.s)
	r.Negate()
	return &secp256k1Scalar{s: r}
}

func (a *secp256k1Scalar) Invert() Scalar {
	var r secp.ModNScalar
	r.Set(&a.s)
	r.InverseValNonConst()
	return &secp256k1Scalar{s: r}
}

func (a *secp256k1Scalar) Equal(b Scalar) bool {
	ob, ok := b.(*secp256k1Scalar)
	if !ok {
		return false
	}
	return a.s.Equals(&ob.s)
}

func (a *secp256k1Scalar) IsZero() bool { return a.s.IsZero() }

func (a *secp256k1Scalar) Bytes() []byte {
	bytes := a.s.Bytes()
	return bytes[:]
}

type secp256k1Point struct {
	x, y     secp.FieldVal
	identity bool
}

func (p *secp256k1Point) jacobian() secp.JacobianPoint {
	var j secp.JacobianPoint
	if p.identity {
		j.X.SetInt(0)
		j.Y.SetInt(1)
		j.Z.SetInt(0)
		return j
	}
	j.X = p.x
	j.Y = p.y
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j secp.JacobianPoint) *secp256k1Point {
	j.ToAffine()
	if j.X.IsZero() && j.Y.IsZero() {
		return &secp256k1Point{identity: true}
	}
	return &secp256k1Point{x: j.X, y: j.Y}
}

func (p *secp256k1Point) Add(q Point) Point {
	a := p.jacobian()
	b := q.(*secp256k1Point).jacobian()
	var r secp.JacobianPoint
	secp.AddNonConst(&a, &b, &r)
	return fromJacobian(r)
}

func (p *secp256k1Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

func (p *secp256k1Point) Negate() Point {
	if p.identity {
		return p
	}
	var negY secp.FieldVal
	negY.Set(&p.y).Negate(1).Normalize()
	return &secp256k1Point{x: p.x, y: negY}
}

func (p *secp256k1Point) ScalarMult(s Scalar) Point {
	a := p.jacobian()
	var r secp.JacobianPoint
	secp.ScalarMultNonConst(&s.(*secp256k1Scalar).s, &a, &r)
	return fromJacobian(r)
}

func (p *secp256k1Point) Equal(q Point) bool {
	ob, ok := q.(*secp256k1Point)
	if !ok {
		return false
	}
	if p.identity || ob.identity {
		return p.identity == ob.identity
	}
	return p.x.Equals(&ob.x) && p.y.Equals(&ob.y)
}

func (p *secp256k1Point) IsIdentity() bool { return p.identity }

func (p *secp256k1Point) Bytes() []byte {
	if p.identity {
		// Never a valid canonical encoding; PointFromBytes will reject it.
		return make([]byte, 33)
	}
	x, y := p.x, p.y
	pk := secp.NewPublicKey(&x, &y)
	return pk.SerializeCompressed()
}
