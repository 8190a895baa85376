package sign_test

import (
	"crypto/rand"
	"testing"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/schnorr"
	"github.com/ringfrost/frost/sign"
)

// signWithSubset drives a full Preprocess/Sign/Complete round for every
// party in subset and returns the assembled signature from each party's
// Complete call, which must all agree.
func signWithSubset(
	t *testing.T,
	c curve.Curve,
	generated map[uint16]*keys.MultisigKeys,
	subset []uint16,
	msg []byte,
) map[uint16]any {
	t.Helper()

	machines := make(map[uint16]*sign.AlgorithmMachine, len(subset))
	for _, i := range subset {
		view, err := generated[i].View(subset)
		testutils.AssertNoError(t, "View", err)
		machines[i] = sign.New(algorithm.NewSchnorr(c, msg), view)
	}

	preprocesses := make(map[uint16][]byte, len(subset))
	for _, i := range subset {
		next, pp, err := machines[i].Preprocess(rand.Reader)
		testutils.AssertNoError(t, "Preprocess", err)
		machines[i] = next
		preprocesses[i] = pp
	}

	responses := make(map[uint16][]byte, len(subset))
	for _, i := range subset {
		next, resp, err := machines[i].Sign(preprocesses, msg)
		testutils.AssertNoError(t, "Sign", err)
		machines[i] = next
		responses[i] = resp
	}

	results := make(map[uint16]any, len(subset))
	for _, i := range subset {
		sig, err := machines[i].Complete(responses)
		testutils.AssertNoError(t, "Complete", err)
		results[i] = sig
	}
	return results
}

func TestSchnorrSignRoundTrip(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	msg := []byte("sign round trip")
	results := signWithSubset(t, c, generated, []uint16{1, 2}, msg)

	sig1 := results[1].(*schnorr.Signature)
	sig2 := results[2].(*schnorr.Signature)
	testutils.AssertPointsEqual(t, "R", sig1.R, sig2.R)
	testutils.AssertScalarsEqual(t, "s", sig1.S, sig2.S)

	ok := schnorr.Verify(c.Generator(), generated[1].GroupKey, schnorrChallenge(c, sig1, generated[1].GroupKey, msg), sig1)
	if !ok {
		t.Fatal("expected aggregated signature to verify against the group key")
	}
}

func TestSchnorrSignRoundTripDifferentSubsetsAgree(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 4)
	testutils.AssertNoError(t, "GenerateKeys", err)

	msg := []byte("sign subset agreement")
	a := signWithSubset(t, c, generated, []uint16{1, 3}, msg)
	b := signWithSubset(t, c, generated, []uint16{2, 4}, msg)

	sigA := a[1].(*schnorr.Signature)
	sigB := b[2].(*schnorr.Signature)
	ok := schnorr.Verify(c.Generator(), generated[1].GroupKey, schnorrChallenge(c, sigA, generated[1].GroupKey, msg), sigA)
	if !ok {
		t.Fatal("expected subset {1,3} signature to verify")
	}
	ok = schnorr.Verify(c.Generator(), generated[2].GroupKey, schnorrChallenge(c, sigB, generated[2].GroupKey, msg), sigB)
	if !ok {
		t.Fatal("expected subset {2,4} signature to verify")
	}
}

func TestSignRejectsOutOfOrderTransition(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	msg := []byte("out of order")
	view, err := generated[1].View([]uint16{1, 2})
	testutils.AssertNoError(t, "View", err)
	m := sign.New(algorithm.NewSchnorr(c, msg), view)

	_, _, err = m.Sign(map[uint16][]byte{}, msg)
	testutils.AssertError(t, "Sign before Preprocess", err)
}

func schnorrChallenge(c curve.Curve, sig *schnorr.Signature, groupKey curve.Point, msg []byte) curve.Scalar {
	dst := append([]byte(c.Context()), []byte("chal")...)
	transcript := append([]byte{}, sig.R.Bytes()...)
	transcript = append(transcript, groupKey.Bytes()...)
	transcript = append(transcript, msg...)
	return c.HashToScalar(dst, transcript)
}
