package algorithm_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
	"github.com/ringfrost/frost/schnorr"
	"github.com/ringfrost/frost/sign"
)

// TestSchnorrAlgorithmAcrossCurves drives a 2-of-3 NewSchnorr signature to
// completion on every curve the module ships, the one property every
// curve must share regardless of its field size or hash-to-scalar path.
func TestSchnorrAlgorithmAcrossCurves(t *testing.T) {
	cases := map[string]curve.Curve{
		"secp256k1": curve.Secp256k1{},
		"p256":      curve.P256{},
		"ed25519":   curve.Ed25519{},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			generated, err := testutils.GenerateKeys(c, rand.Reader, 2, 3)
			require.NoError(t, err)

			msg := []byte("algorithm table test: " + name)
			subset := []uint16{1, 2}
			machines := make(map[uint16]*sign.AlgorithmMachine, len(subset))
			for _, i := range subset {
				view, err := generated[i].View(subset)
				require.NoError(t, err)
				machines[i] = sign.New(algorithm.NewSchnorr(c, msg), view)
			}

			preprocesses := make(map[uint16][]byte, len(subset))
			for _, i := range subset {
				next, pp, err := machines[i].Preprocess(rand.Reader)
				require.NoError(t, err)
				machines[i] = next
				preprocesses[i] = pp
			}

			responses := make(map[uint16][]byte, len(subset))
			for _, i := range subset {
				next, resp, err := machines[i].Sign(preprocesses, msg)
				require.NoError(t, err)
				machines[i] = next
				responses[i] = resp
			}

			var sigs []*schnorr.Signature
			for _, i := range subset {
				out, err := machines[i].Complete(responses)
				require.NoError(t, err)
				sigs = append(sigs, out.(*schnorr.Signature))
			}

			require.True(t, sigs[0].R.Equal(sigs[1].R))
			require.True(t, sigs[0].S.Equal(sigs[1].S))

			dst := append([]byte(c.Context()), []byte("chal")...)
			transcript := append([]byte{}, sigs[0].R.Bytes()...)
			transcript = append(transcript, generated[1].GroupKey.Bytes()...)
			transcript = append(transcript, msg...)
			chal := c.HashToScalar(dst, transcript)

			require.True(t, schnorr.Verify(c.Generator(), generated[1].GroupKey, chal, sigs[0]))
		})
	}
}
