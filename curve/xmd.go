package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// expandMessageXMD implements expand_message_xmd from the hash-to-curve
// draft referenced by spec.md section 4.1, specialized to SHA-256 (the hash
// every prime-field ciphersuite in this module uses) and a fixed output
// length. It is the building block hash_to_F reduces modulo the scalar
// field.
func expandMessageXMD(msg, dst []byte, outLen int) ([]byte, error) {
	const bInBytes = sha256.Size // 32
	const rInBytes = 64          // SHA-256 block size

	ell := (outLen + bInBytes - 1) / bInBytes
	if ell > 255 {
		return nil, errors.New("curve: expand_message_xmd: requested output too long")
	}
	if len(dst) > 255 {
		return nil, errors.New("curve: expand_message_xmd: dst too long (caller must pre-hash)")
	}

	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))

	zPad := make([]byte, rInBytes)
	libStr := make([]byte, 2)
	binary.BigEndian.PutUint16(libStr, uint16(outLen))

	msgPrime := concatAll(zPad, msg, libStr, []byte{0}, dstPrime)

	b0 := sha256.Sum256(msgPrime)

	h1 := sha256.New()
	h1.Write(b0[:])
	h1.Write([]byte{1})
	h1.Write(dstPrime)
	bVals := make([][bInBytes]byte, ell)
	copy(bVals[0][:], h1.Sum(nil))

	for i := 1; i < ell; i++ {
		xored := make([]byte, bInBytes)
		for j := range xored {
			xored[j] = b0[j] ^ bVals[i-1][j]
		}
		hi := sha256.New()
		hi.Write(xored)
		hi.Write([]byte{byte(i + 1)})
		hi.Write(dstPrime)
		copy(bVals[i][:], hi.Sum(nil))
	}

	out := make([]byte, 0, ell*bInBytes)
	for _, b := range bVals {
		out = append(out, b[:]...)
	}
	return out[:outLen], nil
}

func concatAll(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
