package clsag

import (
	"crypto/rand"
	"testing"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/sign"
)

// buildRing constructs a two-member ring (the real signer plus one decoy)
// around groupKey at position realIndex, with output commitments whose
// difference signCore's C_out computation can absorb.
func buildRing(c curve.Curve, groupKey curve.Point, realIndex int) Ring {
	decoy := c.Generator().ScalarMult(c.ScalarFromUint16(7))
	commitA := c.Generator().ScalarMult(c.ScalarFromUint16(11))
	commitB := c.Generator().ScalarMult(c.ScalarFromUint16(13))

	keysSlice := make([]curve.Point, 2)
	commitments := make([]curve.Point, 2)
	other := 1 - realIndex
	keysSlice[realIndex] = groupKey
	keysSlice[other] = decoy
	commitments[realIndex] = commitA
	commitments[other] = commitB

	return Ring{Keys: keysSlice, Commitments: commitments}
}

// signClsag drives the CLSAG Algorithm across subset and returns each
// party's completed Output, which must all agree.
func signClsag(
	t *testing.T,
	c curve.Curve,
	generated map[uint16]*keys.MultisigKeys,
	subset []uint16,
	msg []byte,
	input *SignableInput,
) map[uint16]*Output {
	t.Helper()

	machines := make(map[uint16]*sign.AlgorithmMachine, len(subset))
	for _, i := range subset {
		view, err := generated[i].View(subset)
		testutils.AssertNoError(t, "View", err)
		machines[i] = sign.New(New(c, msg, input), view)
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

	out := make(map[uint16]*Output, len(subset))
	for _, i := range subset {
		sig, err := machines[i].Complete(responses)
		testutils.AssertNoError(t, "Complete", err)
		out[i] = sig.(*Output)
	}
	return out
}

func TestClsagSingleSignerRoundTrip(t *testing.T) {
	c := curve.Ed25519{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 1, 1)
	testutils.AssertNoError(t, "GenerateKeys", err)

	groupKey := generated[1].GroupKey
	ring := buildRing(c, groupKey, 0)
	image := imageFor(c, ring.Keys[0], generated[1].SecretShare)

	input := &SignableInput{Ring: ring, Index: 0, Image: image}
	msg := []byte("clsag single signer")

	results := signClsag(t, c, generated, []uint16{1}, msg, input)
	out := results[1]

	if !Verify(c, out.Signature, msg, ring, image, out.COut) {
		t.Fatal("expected single-signer CLSAG signature to verify")
	}
}

func TestClsagThresholdRoundTrip(t *testing.T) {
	c := curve.Ed25519{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	groupKey := generated[1].GroupKey
	ring := buildRing(c, groupKey, 1)

	shares := map[uint16]curve.Scalar{1: generated[1].SecretShare, 2: generated[2].SecretShare, 3: generated[3].SecretShare}
	secret := testutils.Recover(c, shares)
	image := imageFor(c, ring.Keys[1], secret)

	input := &SignableInput{Ring: ring, Index: 1, Image: image}
	msg := []byte("clsag 2 of 3")

	results := signClsag(t, c, generated, []uint16{1, 3}, msg, input)
	outA := results[1]
	outB := results[3]

	testutils.AssertScalarsEqual(t, "C0", outA.Signature.C0, outB.Signature.C0)
	if !Verify(c, outA.Signature, msg, ring, image, outA.COut) {
		t.Fatal("expected threshold CLSAG signature to verify")
	}
}

// imageFor computes the key image I = x·hash_to_point(P) a signer with
// full knowledge of x would publish; tests use it since deriving the
// image from threshold shares without reconstructing x is a separate
// protocol this package does not implement (SignableInput.Image is always
// supplied precomputed, matching multisig.rs's input.image field).
func imageFor(c curve.Curve, ringKey curve.Point, secret curve.Scalar) curve.Point {
	return hashToPoint(c, ringKey).ScalarMult(secret)
}
