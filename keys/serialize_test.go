package keys_test

import (
	"crypto/rand"
	"testing"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/keys"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	original := generated[2]
	data := original.Serialize()
	testutils.AssertUintsEqual(t, "serialized length", uint16(keys.SerializedLen(c, original.Params.N())), uint16(len(data)))

	recovered, err := keys.Deserialize(c, data)
	testutils.AssertNoError(t, "Deserialize", err)

	testutils.AssertUintsEqual(t, "t", original.Params.T(), recovered.Params.T())
	testutils.AssertUintsEqual(t, "n", original.Params.N(), recovered.Params.N())
	testutils.AssertUintsEqual(t, "i", original.Params.I(), recovered.Params.I())
	testutils.AssertScalarsEqual(t, "secret share", original.SecretShare, recovered.SecretShare)
	testutils.AssertPointsEqual(t, "group key", original.GroupKey, recovered.GroupKey)
	for l, v := range original.VerificationShares {
		testutils.AssertPointsEqual(t, "verification share", v, recovered.VerificationShares[l])
	}
	if recovered.Offset != nil {
		t.Fatal("expected deserialized keys to carry no offset")
	}
}

func TestDeserializeRejectsTamperedLength(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	data := generated[1].Serialize()
	_, err = keys.Deserialize(c, data[:len(data)-1])
	testutils.AssertError(t, "Deserialize with truncated data", err)
}

func TestDeserializeRejectsWrongCurveID(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	data := generated[1].Serialize()
	_, err = keys.Deserialize(curve.P256{}, data)
	testutils.AssertError(t, "Deserialize under the wrong curve", err)
}

func TestDeserializeRejectsOutOfRangeSecretShare(t *testing.T) {
	c := curve.Secp256k1{}
	generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
	testutils.AssertNoError(t, "GenerateKeys", err)

	data := generated[1].Serialize()
	secretOffset := 8 + len(c.ID()) + 3*2
	for i := 0; i < c.FLen(); i++ {
		data[secretOffset+i] = 0xff
	}

	_, err = keys.Deserialize(c, data)
	testutils.AssertError(t, "Deserialize with an out-of-range secret share", err)
}
