package dkg

import (
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
	"github.com/ringfrost/frost/internal/log"
	"github.com/ringfrost/frost/keys"
)

// KeyGenMachine is the entry point into key generation: it holds nothing
// but the agreed parameters and context string until GenerateCoefficients
// is called, mirroring key_gen.rs's KeyGenMachine.
type KeyGenMachine struct {
	curve   curve.Curve
	params  keys.Params
	context string
	logger  log.Logger
}

// Option configures a KeyGenMachine at construction time.
type Option func(*KeyGenMachine)

// WithLogger traces round transitions and blamed faults through l.
// Omitting this option leaves the machine silent.
func WithLogger(l log.Logger) Option {
	return func(m *KeyGenMachine) { m.logger = log.Maybe(l) }
}

// New constructs a KeyGenMachine for the given curve, parameters, and
// context string. The context string must be identical across all
// participants; it domain-separates this run's proofs of knowledge from
// any other group's.
func New(c curve.Curve, params keys.Params, context string, opts ...Option) *KeyGenMachine {
	m := &KeyGenMachine{curve: c, params: params, context: context, logger: log.Maybe(nil)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SecretShareMachine is reached after round 1 coefficient generation: it
// holds the sampled coefficients and their serialized commitments/PoK
// until the peer broadcasts for round 1 are available.
type SecretShareMachine struct {
	curve        curve.Curve
	params       keys.Params
	context      string
	logger       log.Logger
	coefficients []curve.Scalar
	commitments  []byte
}

// GenerateCoefficients samples this participant's secret polynomial,
// commits to each coefficient, and proves knowledge of the constant term.
// The returned bytes are this participant's round 1 broadcast; every
// other participant must receive an identical copy.
func (m *KeyGenMachine) GenerateCoefficients(rng io.Reader) (*SecretShareMachine, []byte, error) {
	coefficients, serialized, err := generateCoefficientsR1(m.curve, rng, m.params, m.context)
	if err != nil {
		return nil, nil, err
	}
	m.logger.Debugf("participant %d generated round 1 coefficients", m.params.I())
	return &SecretShareMachine{
		curve:        m.curve,
		params:       m.params,
		context:      m.context,
		logger:       m.logger,
		coefficients: coefficients,
		commitments:  serialized,
	}, serialized, nil
}

// KeyMachine is reached after round 2 secret share generation: it holds
// this participant's own share and the verified round 1 commitments of
// every participant, awaiting each participant's round 2 secret shares.
type KeyMachine struct {
	curve       curve.Curve
	params      keys.Params
	secretShare curve.Scalar
	logger      log.Logger
	commitments map[uint16][]curve.Point
}

// GenerateSecretShares verifies every participant's round 1 broadcast
// (batch-verifying each proof of knowledge) and computes this
// participant's Shamir share for every other participant. The returned
// map must be distributed privately: shares[l] is intended only for
// participant l and must never be broadcast.
func (m *SecretShareMachine) GenerateSecretShares(rng io.Reader, commitments map[uint16][]byte) (*KeyMachine, map[uint16][]byte, error) {
	if commitments == nil {
		return nil, nil, frosterr.New(frosterr.InternalError, "nil commitments map")
	}

	ownShare, verified, shares, err := generateSharesR2(
		m.curve, rng, m.params, m.context, m.coefficients, m.commitments, commitments,
	)
	if err != nil {
		m.logger.Warnf("participant %d: round 1 verification failed: %v", m.params.I(), err)
		return nil, nil, err
	}
	m.logger.Debugf("participant %d verified %d round 1 broadcasts", m.params.I(), len(commitments))

	return &KeyMachine{
		curve:       m.curve,
		params:      m.params,
		secretShare: ownShare,
		logger:      m.logger,
		commitments: verified,
	}, shares, nil
}

// Complete verifies every received secret share against its sender's
// published commitments (one batched check per sender, so a single
// faulty share can always be traced back to its sender) and assembles
// the final MultisigKeys.
func (m *KeyMachine) Complete(rng io.Reader, shares map[uint16][]byte) (*keys.MultisigKeys, error) {
	if shares == nil {
		return nil, frosterr.New(frosterr.InternalError, "nil shares map")
	}
	generated, err := completeR2(m.curve, rng, m.params, m.secretShare, m.commitments, shares)
	if err != nil {
		m.logger.Warnf("participant %d: round 2 completion failed: %v", m.params.I(), err)
		return nil, err
	}
	m.logger.Debugf("participant %d completed key generation", m.params.I())
	return generated, nil
}
