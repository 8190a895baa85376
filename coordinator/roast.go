// Package coordinator adapts the teacher's RoastExecution subset-retry
// loop (coordinator.go, protocol.go) to drive sign.AlgorithmMachine
// sessions: it holds a pool of candidate signers, picks a size-t subset,
// runs the full Preprocess/Sign/Complete round, and on a blamed share
// excludes that party and retries with a fresh subset, until the pool can
// no longer field t candidates.
//
// This is additive robustness around the two-round machine in package
// sign, not a replacement for it. Unlike the teacher's channel-driven
// goroutine simulation, Run is synchronous and caller-driven: all I/O is
// left to the caller, so this package never opens a socket or starts a
// goroutine of its own, and a fresh sign.AlgorithmMachine/keys.View pair
// is built for every subset attempt since a party's Lagrange-adjusted
// secret share depends on exactly who else is included.
package coordinator

import (
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/frosterr"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/sign"
)

// Signer is one candidate party's persistent keys, as the coordinator
// would hold them for every member of a larger pool than t.
type Signer struct {
	Index uint16
	Keys  *keys.MultisigKeys
}

// AlgorithmFactory builds a fresh, single-use Algorithm for one subset
// attempt. Algorithm values carry per-signature state (algorithm.Schnorr's
// chal, clsag.Multisig's interim) so a new one is required per attempt,
// one per party.
type AlgorithmFactory func() algorithm.Algorithm

// Run drives msg to a completed, verified signature across pool,
// excluding any party whose share is blamed in Complete and retrying with
// the next size-t subset of survivors, sorted ascending by index to match
// the teacher's InsertCommit ordering.
func Run(t uint16, msg []byte, algo AlgorithmFactory, pool []Signer, rng io.Reader) (any, error) {
	candidates := make(map[uint16]Signer, len(pool))
	for _, s := range pool {
		candidates[s.Index] = s
	}

	for {
		if len(candidates) < int(t) {
			return nil, frosterr.New(frosterr.InvalidParticipantQuantity, "signer pool exhausted without producing a valid signature")
		}

		subset := chooseSubset(candidates, t)
		sig, blamed, err := attempt(subset, candidates, msg, algo, rng)
		if err == nil {
			return sig, nil
		}
		if blamed == 0 {
			return nil, err
		}
		delete(candidates, blamed)
	}
}

// chooseSubset takes the t lowest surviving indices, ascending.
func chooseSubset(candidates map[uint16]Signer, t uint16) []uint16 {
	all := maps.Keys(candidates)
	slices.Sort(all)
	return all[:t]
}

// attempt runs one full Preprocess/Sign/Complete round across subset. On
// any InvalidShare blame from Complete it returns the offending index so
// Run can exclude it; on any other failure it returns the error with a
// zero blame index, which Run treats as unretryable.
func attempt(subset []uint16, candidates map[uint16]Signer, msg []byte, algo AlgorithmFactory, rng io.Reader) (any, uint16, error) {
	machines := make(map[uint16]*sign.AlgorithmMachine, len(subset))
	for _, idx := range subset {
		view, err := candidates[idx].Keys.View(subset)
		if err != nil {
			return nil, 0, err
		}
		machines[idx] = sign.New(algo(), view)
	}

	preprocesses := make(map[uint16][]byte, len(subset))
	for _, idx := range subset {
		next, pp, err := machines[idx].Preprocess(rng)
		if err != nil {
			return nil, 0, err
		}
		machines[idx] = next
		preprocesses[idx] = pp
	}

	responses := make(map[uint16][]byte, len(subset))
	for _, idx := range subset {
		next, resp, err := machines[idx].Sign(preprocesses, msg)
		if err != nil {
			return nil, 0, err
		}
		machines[idx] = next
		responses[idx] = resp
	}

	var sig any
	for _, idx := range subset {
		out, err := machines[idx].Complete(responses)
		if err != nil {
			if kind, ok := frosterr.KindOf(err); ok && kind == frosterr.InvalidShare {
				return nil, blameOf(err), err
			}
			return nil, 0, err
		}
		sig = out
	}
	return sig, 0, nil
}

// blameOf extracts the offending participant from a frosterr.Error, or 0
// if the error names none (in which case Run gives up rather than loop
// forever excluding nobody).
func blameOf(err error) uint16 {
	party, ok := frosterr.PartyOf(err)
	if !ok {
		return 0
	}
	return party
}
