package algorithm_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/schnorr"
	"github.com/ringfrost/frost/sign"
)

// TestSchnorrAgreesWithIndependentlyComputedSignature is the closest this
// module gets to IETF draft-irtf-cfrg-frost's test_with_vectors (spec.md
// section 8's "using the IETF draft vectors ... the aggregated signature
// MUST equal the published vector"). The real FROST(secp256k1, SHA-256) /
// FROST(P-256, SHA-256) vectors are not reproduced here: no copy of them
// exists anywhere under _examples (original_source/crypto/frost/src/tests/
// vectors.rs ships only the generic harness, with no pinned hex constants
// alongside it), and this environment has no network access to fetch the
// authoritative draft text, so hand-transcribing 32/33-byte constants from
// memory risked silently pinning wrong numbers under a false "RFC vector"
// label — worse than not pinning them at all. DESIGN.md records this gap.
//
// What this test does instead: fix every input a real vector would fix —
// a small-integer secret polynomial instead of GenerateKeys' random one,
// and explicit nonces via the new AlgorithmMachine.OverridePreprocess hook
// (grounded on the original source's unsafe_override_preprocess) — then
// independently recomputes the expected R, binding factors, challenge,
// and signature using only exported curve/schnorr primitives, never
// calling into package sign's internals. A bug in the binding-factor
// transcript, nonce aggregation, or challenge derivation would make this
// independent recomputation diverge from the machine's own output even
// though both sides would still satisfy the package's own Verify.
func TestSchnorrAgreesWithIndependentlyComputedSignature(t *testing.T) {
	c := curve.Secp256k1{}

	// f(x) = 7 + 5x, so the group secret is the fixed constant 7 rather
	// than a randomly sampled one.
	a0 := c.ScalarFromUint16(7)
	a1 := c.ScalarFromUint16(5)
	share := func(i uint16) curve.Scalar {
		return a0.Add(a1.Mul(c.ScalarFromUint16(i)))
	}
	groupKey := c.Generator().ScalarMult(a0)

	verification := map[uint16]curve.Point{
		1: c.Generator().ScalarMult(share(1)),
		2: c.Generator().ScalarMult(share(2)),
		3: c.Generator().ScalarMult(share(3)),
	}

	included := []uint16{1, 2}
	generated := make(map[uint16]*keys.MultisigKeys, 2)
	for _, i := range included {
		params, err := keys.NewParams(2, 3, i)
		require.NoError(t, err)
		generated[i] = &keys.MultisigKeys{
			Curve:              c,
			Params:             params,
			SecretShare:        share(i),
			GroupKey:           groupKey,
			VerificationShares: verification,
		}
	}

	msg := []byte("frost vector substitute")
	nonces := map[uint16][2]curve.Scalar{
		1: {c.ScalarFromUint16(3), c.ScalarFromUint16(11)},
		2: {c.ScalarFromUint16(17), c.ScalarFromUint16(19)},
	}

	machines := make(map[uint16]*sign.AlgorithmMachine, len(included))
	for _, i := range included {
		view, err := generated[i].View(included)
		require.NoError(t, err)
		machines[i] = sign.New(algorithm.NewSchnorr(c, msg), view)
	}

	preprocesses := make(map[uint16][]byte, len(included))
	for _, i := range included {
		next, pp, err := machines[i].OverridePreprocess(rand.Reader, nonces[i][0], nonces[i][1])
		require.NoError(t, err)
		machines[i] = next
		preprocesses[i] = pp
	}

	responses := make(map[uint16][]byte, len(included))
	for _, i := range included {
		next, resp, err := machines[i].Sign(preprocesses, msg)
		require.NoError(t, err)
		machines[i] = next
		responses[i] = resp
	}

	var got *schnorr.Signature
	for _, i := range included {
		out, err := machines[i].Complete(responses)
		require.NoError(t, err)
		got = out.(*schnorr.Signature)
	}

	// Independent recomputation, using only exported primitives: rebuild
	// the binding-factor transcript exactly as spec.md section 6 and the
	// sign package describe it, then derive R, the challenge, and the
	// signature directly from the fixed inputs above.
	ctx := algorithm.NewSchnorr(c, msg).Context()
	d := map[uint16]curve.Point{1: c.Generator().ScalarMult(nonces[1][0]), 2: c.Generator().ScalarMult(nonces[2][0])}
	e := map[uint16]curve.Point{1: c.Generator().ScalarMult(nonces[1][1]), 2: c.Generator().ScalarMult(nonces[2][1])}

	transcript := append([]byte{}, ctx...)
	for _, l := range included {
		transcript = append(transcript, be16(l)...)
		transcript = append(transcript, d[l].Bytes()...)
		transcript = append(transcript, e[l].Bytes()...)
	}

	binding := make(map[uint16]curve.Scalar, len(included))
	r := c.Identity()
	nonceSum := c.ZeroScalar()
	for _, l := range included {
		data := append(append([]byte{}, be16(l)...), transcript...)
		binding[l] = c.HashBindingFactor(data)
		r = r.Add(d[l]).Add(e[l].ScalarMult(binding[l]))
		nonceSum = nonceSum.Add(nonces[l][0]).Add(binding[l].Mul(nonces[l][1]))
	}
	require.True(t, r.Equal(c.Generator().ScalarMult(nonceSum)))

	dst := append([]byte(c.Context()), []byte("chal")...)
	chalTranscript := append([]byte{}, r.Bytes()...)
	chalTranscript = append(chalTranscript, groupKey.Bytes()...)
	chalTranscript = append(chalTranscript, msg...)
	chal := c.HashToScalar(dst, chalTranscript)

	expected := schnorr.Sign(c.Generator(), a0, nonceSum, chal)

	testutils.AssertPointsEqual(t, "R", expected.R, got.R)
	testutils.AssertScalarsEqual(t, "s", expected.S, got.S)
	require.True(t, schnorr.Verify(c.Generator(), groupKey, chal, got))
}

func be16(l uint16) []byte {
	return []byte{byte(l >> 8), byte(l)}
}
