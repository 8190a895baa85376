package coordinator_test

import (
	"crypto/rand"
	"testing"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/coordinator"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/internal/testutils"
)

func schnorrPool(t *testing.T, c curve.Curve, n, threshold uint16) []coordinator.Signer {
	t.Helper()
	generated, err := testutils.GenerateKeys(c, rand.Reader, threshold, n)
	testutils.AssertNoError(t, "GenerateKeys", err)

	pool := make([]coordinator.Signer, 0, n)
	for i := uint16(1); i <= n; i++ {
		pool = append(pool, coordinator.Signer{Index: i, Keys: generated[i]})
	}
	return pool
}

func TestRunSucceedsWithAllHonestSigners(t *testing.T) {
	c := curve.Secp256k1{}
	msg := []byte("roast coordinator happy path")
	pool := schnorrPool(t, c, 5, 3)

	sig, err := coordinator.Run(3, msg, func() algorithm.Algorithm {
		return algorithm.NewSchnorr(c, msg)
	}, pool, rand.Reader)
	testutils.AssertNoError(t, "Run", err)
	if sig == nil {
		t.Fatal("expected a non-nil signature")
	}
}

// TestRunExcludesBlamedSignerAndRetries corrupts one candidate's secret
// share so every signature it contributes to fails verification. Run must
// blame that index, exclude it, and succeed on a fresh subset drawn from
// the remaining honest candidates, mirroring the teacher's
// RoastExecution.ReceiveShare bad-member exclusion in coordinator.go.
func TestRunExcludesBlamedSignerAndRetries(t *testing.T) {
	c := curve.Secp256k1{}
	msg := []byte("roast coordinator retry path")
	pool := schnorrPool(t, c, 5, 3)

	bad := pool[0].Index
	corrupted, err := c.RandomScalar(rand.Reader)
	testutils.AssertNoError(t, "RandomScalar", err)
	badKeys := *pool[0].Keys
	badKeys.SecretShare = corrupted
	pool[0] = coordinator.Signer{Index: bad, Keys: &badKeys}

	sig, err := coordinator.Run(3, msg, func() algorithm.Algorithm {
		return algorithm.NewSchnorr(c, msg)
	}, pool, rand.Reader)
	testutils.AssertNoError(t, "Run", err)
	if sig == nil {
		t.Fatal("expected a non-nil signature after excluding the corrupted signer")
	}
}

func TestRunFailsOncePoolCannotFieldThreshold(t *testing.T) {
	c := curve.Secp256k1{}
	msg := []byte("roast coordinator exhaustion")
	pool := schnorrPool(t, c, 4, 3)

	// Corrupt two of the four candidates; only two honest ones remain,
	// fewer than the threshold of three, so no subset can ever succeed.
	for i := 0; i < 2; i++ {
		corrupted, err := c.RandomScalar(rand.Reader)
		testutils.AssertNoError(t, "RandomScalar", err)
		badKeys := *pool[i].Keys
		badKeys.SecretShare = corrupted
		pool[i] = coordinator.Signer{Index: pool[i].Index, Keys: &badKeys}
	}

	_, err := coordinator.Run(3, msg, func() algorithm.Algorithm {
		return algorithm.NewSchnorr(c, msg)
	}, pool, rand.Reader)
	testutils.AssertError(t, "Run over an exhausted pool", err)
}
