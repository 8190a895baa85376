package keys_test

import (
	"crypto/rand"
	"testing"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/keys"
)

func TestViewProjectsLagrangeAdjustedShares(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	included := []uint16{1, 2}
	view1, err := generated[1].View(included)
	testutils.AssertNoError(t, "View", err)
	view2, err := generated[2].View(included)
	testutils.AssertNoError(t, "View", err)

	reconstructed := view1.SecretShare().Add(view2.SecretShare())
	testutils.AssertPointsEqual(t, "reconstructed secret against group key", generated[1].GroupKey, c.Generator().ScalarMult(reconstructed))

	testutils.AssertUintsEqual(t, "view1 index", 1, view1.Index())
	testutils.AssertUintsEqual(t, "view2 index", 2, view2.Index())
}

func TestViewVerificationSharesMatchSecretShares(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	included := []uint16{1, 3}
	view1, err := generated[1].View(included)
	testutils.AssertNoError(t, "View", err)
	view3, err := generated[3].View(included)
	testutils.AssertNoError(t, "View", err)

	expected1 := c.Generator().ScalarMult(view1.SecretShare())
	testutils.AssertPointsEqual(t, "own verification share", expected1, view1.VerificationShare(1))

	expected3 := c.Generator().ScalarMult(view3.SecretShare())
	testutils.AssertPointsEqual(t, "peer verification share", expected3, view1.VerificationShare(3))
}

func TestViewRejectsUndersizedSigningSet(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 3, 5)
	testutils.AssertNoError(t, "GenerateKeys", err)

	_, err = generated[1].View([]uint16{1, 2})
	testutils.AssertError(t, "View with fewer than t participants", err)
}

func TestViewRejectsDuplicatedIndex(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	_, err = generated[1].View([]uint16{1, 1, 2})
	testutils.AssertError(t, "View with a duplicated index", err)
}

func TestWithOffsetShiftsGroupKeyAndAccumulates(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	delta1, err := c.RandomScalar(rand.Reader)
	testutils.AssertNoError(t, "RandomScalar", err)
	delta2, err := c.RandomScalar(rand.Reader)
	testutils.AssertNoError(t, "RandomScalar", err)

	originalGroupKey := generated[1].GroupKey.Bytes()
	offset := generated[1].WithOffset(delta1).WithOffset(delta2)
	expectedGroupKey := generated[1].GroupKey.Add(c.Generator().ScalarMult(delta1)).Add(c.Generator().ScalarMult(delta2))
	testutils.AssertPointsEqual(t, "offset group key", expectedGroupKey, offset.GroupKey)

	// The original keys must be untouched.
	if offset == generated[1] {
		t.Fatal("expected WithOffset to return a new value, not mutate the receiver")
	}
	testutils.AssertBytesEqual(t, originalGroupKey, generated[1].GroupKey.Bytes())
	if generated[1].Offset != nil {
		t.Fatal("expected the original keys to carry no offset")
	}
}

func TestLagrangeReconstructsAtZero(t *testing.T) {
	c := curve.Secp256k1{}
	included := []uint16{1, 2, 4}

	sum := c.ZeroScalar()
	for _, i := range included {
		sum = sum.Add(keys.Lagrange(c, i, included))
	}
	// Σλ_i · f(i) = f(0) for any constant polynomial f(x) = k, so Σλ_i = 1.
	testutils.AssertScalarsEqual(t, "sum of Lagrange coefficients", c.ScalarFromUint16(1), sum)
}
