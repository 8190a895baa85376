package keys

import (
	"encoding/binary"
	"fmt"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
)

// SerializedLen returns the exact byte length of MultisigKeys.Serialize's
// output for n participants on curve c, per spec.md section 4.4.
func SerializedLen(c curve.Curve, n uint16) int {
	return 8 + len(c.ID()) + (3 * 2) + c.FLen() + c.GLen() + int(n)*c.GLen()
}

// Serialize encodes MultisigKeys as
// be64(|ID|) ‖ ID ‖ be16(t) ‖ be16(n) ‖ be16(i) ‖ F(secret) ‖ G(group) ‖
// G(v_1) ‖ … ‖ G(v_n), per spec.md section 4.4. The offset is never
// included.
func (k *MultisigKeys) Serialize() []byte {
	out := make([]byte, 0, SerializedLen(k.Curve, k.Params.n))

	idLen := make([]byte, 8)
	binary.BigEndian.PutUint64(idLen, uint64(len(k.Curve.ID())))
	out = append(out, idLen...)
	out = append(out, k.Curve.ID()...)

	var be16 [2]byte
	binary.BigEndian.PutUint16(be16[:], k.Params.t)
	out = append(out, be16[:]...)
	binary.BigEndian.PutUint16(be16[:], k.Params.n)
	out = append(out, be16[:]...)
	binary.BigEndian.PutUint16(be16[:], k.Params.i)
	out = append(out, be16[:]...)

	out = append(out, k.SecretShare.Bytes()...)
	out = append(out, k.GroupKey.Bytes()...)

	for l := uint16(1); l <= k.Params.n; l++ {
		out = append(out, k.VerificationShares[l].Bytes()...)
	}

	return out
}

// Deserialize parses bytes produced by Serialize, validating that the
// curve ID prefix and total length match c exactly. The returned keys
// carry no offset (offsets are never persisted).
func Deserialize(c curve.Curve, data []byte) (*MultisigKeys, error) {
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, uint64(len(c.ID())))
	prefix = append(prefix, c.ID()...)
	cursor := len(prefix)

	if len(data) < cursor+4 {
		return nil, frosterr.New(frosterr.InternalError, "serialization missing curve/participant quantities")
	}
	for i, b := range prefix {
		if data[i] != b {
			return nil, frosterr.New(frosterr.InternalError, "curve is distinct between serialization and deserialization")
		}
	}

	t := binary.BigEndian.Uint16(data[cursor : cursor+2])
	cursor += 2
	n := binary.BigEndian.Uint16(data[cursor : cursor+2])
	cursor += 2

	if len(data) != SerializedLen(c, n) {
		return nil, frosterr.New(frosterr.InternalError, "incorrect serialization length")
	}

	i := binary.BigEndian.Uint16(data[cursor : cursor+2])
	cursor += 2

	secretShare, err := c.ScalarFromBytes(data[cursor : cursor+c.FLen()])
	if err != nil {
		return nil, frosterr.New(frosterr.InternalError, fmt.Sprintf("invalid secret share: %v", err))
	}
	cursor += c.FLen()

	groupKey, err := c.PointFromBytes(data[cursor : cursor+c.GLen()])
	if err != nil {
		return nil, frosterr.New(frosterr.InternalError, fmt.Sprintf("invalid group key: %v", err))
	}
	cursor += c.GLen()

	verification := make(map[uint16]curve.Point, n)
	for l := uint16(1); l <= n; l++ {
		v, err := c.PointFromBytes(data[cursor : cursor+c.GLen()])
		if err != nil {
			return nil, frosterr.New(frosterr.InternalError, fmt.Sprintf("invalid verification share: %v", err))
		}
		verification[l] = v
		cursor += c.GLen()
	}

	params, err := NewParams(t, n, i)
	if err != nil {
		return nil, frosterr.New(frosterr.InternalError, fmt.Sprintf("invalid parameters: %v", err))
	}

	return &MultisigKeys{
		Curve:               c,
		Params:              params,
		SecretShare:         secretShare,
		GroupKey:            groupKey,
		VerificationShares:  verification,
		Offset:              nil,
	}, nil
}
