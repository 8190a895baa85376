// Package sign implements the two-round AlgorithmMachine (spec.md section
// 4.6): Preprocess produces nonce commitments and an algorithm-specific
// addendum, Sign derives binding factors and this party's response share,
// and Complete verifies every share individually before aggregating and
// checking the final signature.
package sign

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/slices"

	"github.com/ringfrost/frost/algorithm"
	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
	"github.com/ringfrost/frost/internal/log"
	"github.com/ringfrost/frost/keys"
)

type state int

const (
	fresh state = iota
	preprocessed
	signed
	complete
)

// Preprocess is one party's round 1 broadcast: nonce commitments plus any
// algorithm-specific addendum (spec.md section 6, "encode(D) ‖ encode(E)
// ‖ addendum_bytes").
type Preprocess struct {
	D, E     curve.Point
	Addendum []byte
}

// Serialize encodes the preprocess broadcast for transport.
func (p *Preprocess) Serialize() []byte {
	out := append([]byte{}, p.D.Bytes()...)
	out = append(out, p.E.Bytes()...)
	out = append(out, p.Addendum...)
	return out
}

// parsePreprocess decodes a broadcast produced by Serialize, rejecting
// the wrong length or invalid points.
func parsePreprocess(c curve.Curve, addendumLen int, data []byte) (*Preprocess, error) {
	if len(data) != 2*c.GLen()+addendumLen {
		return nil, frosterr.New(frosterr.InvalidCommitmentQuantity, "preprocess broadcast has the wrong length")
	}
	d, err := c.PointFromBytes(data[:c.GLen()])
	if err != nil {
		return nil, frosterr.New(frosterr.InvalidCommitment, "nonce commitment D is not a valid point")
	}
	e, err := c.PointFromBytes(data[c.GLen() : 2*c.GLen()])
	if err != nil {
		return nil, frosterr.New(frosterr.InvalidCommitment, "nonce commitment E is not a valid point")
	}
	addendum := append([]byte{}, data[2*c.GLen():]...)
	return &Preprocess{D: d, E: e, Addendum: addendum}, nil
}

// validateShareMap checks that a received per-party map, plus this
// party's own contribution, covers exactly the view's included set.
// Mirrors dkg's validate_map (spec.md and original_source/lib.rs) for
// the sign-round wire maps.
func validateShareMap[T any](m map[uint16]T, included []uint16, own uint16, ownVal T) error {
	m[own] = ownVal
	if len(m) != len(included) {
		return frosterr.New(frosterr.InvalidParticipantQuantity, "participant map size does not match the signing set")
	}
	for _, l := range included {
		if _, ok := m[l]; !ok {
			return frosterr.NewParty(frosterr.MissingParticipant, l, "expected participant missing from map")
		}
	}
	return nil
}

// AlgorithmMachine drives one signature through Fresh -> Preprocessed ->
// Signed -> Complete. Preprocess and Sign each return the successor
// machine and Complete returns the signature; the receiver must not be
// reused afterward (spec.md section 4.6: "no
// backward transitions").
type AlgorithmMachine struct {
	algo   algorithm.Algorithm
	view   *keys.View
	state  state
	logger log.Logger

	d, e         curve.Scalar
	ownAddendum  []byte
	msg          []byte
	R            curve.Point
	ownResponse  curve.Scalar
	preprocesses map[uint16]*Preprocess
	binding      map[uint16]curve.Scalar
}

// Option configures an AlgorithmMachine at construction time.
type Option func(*AlgorithmMachine)

// WithLogger traces the machine's state transitions and blamed faults
// through l. Omitting this option leaves the machine silent.
func WithLogger(l log.Logger) Option {
	return func(m *AlgorithmMachine) { m.logger = log.Maybe(l) }
}

// New constructs a fresh AlgorithmMachine for one signature over view,
// driven by algo.
func New(algo algorithm.Algorithm, view *keys.View, opts ...Option) *AlgorithmMachine {
	m := &AlgorithmMachine{algo: algo, view: view, state: fresh, logger: log.Maybe(nil)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Preprocess draws this party's two nonces, commits to them, and invokes
// the algorithm's addendum hook. The returned bytes must be broadcast to
// every other included party.
func (m *AlgorithmMachine) Preprocess(rng io.Reader) (*AlgorithmMachine, []byte, error) {
	c := m.view.Curve()
	d, err := c.NonceGenerate(m.view.SecretShare(), rng)
	if err != nil {
		return nil, nil, err
	}
	e, err := c.NonceGenerate(m.view.SecretShare(), rng)
	if err != nil {
		return nil, nil, err
	}
	if d.IsZero() || e.IsZero() {
		return nil, nil, frosterr.New(frosterr.InternalError, "sampled a zero nonce")
	}
	return m.preprocessWith(rng, d, e)
}

// OverridePreprocess skips nonce generation and runs preprocess with
// caller-supplied nonces instead, exactly as the original source's
// unsafe_override_preprocess does. It exists solely so tests can drive the
// machine with fixed, reproducible nonces instead of ones drawn from rng;
// production callers must use Preprocess.
func (m *AlgorithmMachine) OverridePreprocess(rng io.Reader, d, e curve.Scalar) (*AlgorithmMachine, []byte, error) {
	return m.preprocessWith(rng, d, e)
}

func (m *AlgorithmMachine) preprocessWith(rng io.Reader, d, e curve.Scalar) (*AlgorithmMachine, []byte, error) {
	if m.state != fresh {
		return nil, nil, frosterr.New(frosterr.InternalError, "preprocess called out of order")
	}

	c := m.view.Curve()
	addendum, err := m.algo.PreprocessAddendum(rng, m.view, d, e)
	if err != nil {
		return nil, nil, err
	}

	pkg := &Preprocess{D: c.Generator().ScalarMult(d), E: c.Generator().ScalarMult(e), Addendum: addendum}
	serialized := pkg.Serialize()

	m.logger.Debugf("participant %d preprocessed, %d addendum bytes", m.view.Index(), len(addendum))

	next := &AlgorithmMachine{
		algo:        m.algo,
		view:        m.view,
		state:       preprocessed,
		logger:      m.logger,
		d:           d,
		e:           e,
		ownAddendum: addendum,
	}
	return next, serialized, nil
}

// Sign validates and parses every other party's round 1 broadcast,
// derives binding factors, processes every party's addendum, computes the
// aggregated nonce, and returns this party's response share.
func (m *AlgorithmMachine) Sign(preprocesses map[uint16][]byte, msg []byte) (*AlgorithmMachine, []byte, error) {
	if m.state != preprocessed {
		return nil, nil, frosterr.New(frosterr.InternalError, "sign called out of order")
	}

	c := m.view.Curve()
	i := m.view.Index()
	ownSerialized := (&Preprocess{
		D:        c.Generator().ScalarMult(m.d),
		E:        c.Generator().ScalarMult(m.e),
		Addendum: m.ownAddendum,
	}).Serialize()

	if err := validateShareMap(preprocesses, m.view.Included(), i, ownSerialized); err != nil {
		return nil, nil, err
	}

	addendumLen := m.algo.AddendumCommitLen()
	parsed := make(map[uint16]*Preprocess, len(preprocesses))
	included := m.view.Included()
	for _, l := range included {
		pkg, err := parsePreprocess(c, addendumLen, preprocesses[l])
		if err != nil {
			m.logger.Warnf("participant %d: malformed preprocess from %d: %v", i, l, err)
			if fe, ok := err.(*frosterr.Error); ok {
				return nil, nil, frosterr.NewParty(fe.Kind, l, fe.Message)
			}
			return nil, nil, err
		}
		parsed[l] = pkg
	}

	slices.Sort(included)
	transcript := append([]byte{}, m.algo.Context()...)
	for _, l := range included {
		var be16 [2]byte
		binary.BigEndian.PutUint16(be16[:], l)
		transcript = append(transcript, be16[:]...)
		transcript = append(transcript, parsed[l].D.Bytes()...)
		transcript = append(transcript, parsed[l].E.Bytes()...)
	}

	binding := make(map[uint16]curve.Scalar, len(included))
	for _, l := range included {
		var be16 [2]byte
		binary.BigEndian.PutUint16(be16[:], l)
		data := append(append([]byte{}, be16[:]...), transcript...)
		binding[l] = c.HashBindingFactor(data)
	}

	for _, l := range included {
		if err := m.algo.ProcessAddendum(m.view, l, parsed[l].D, parsed[l].E, binding[l], parsed[l].Addendum); err != nil {
			m.logger.Warnf("participant %d: addendum from %d rejected: %v", i, l, err)
			if fe, ok := err.(*frosterr.Error); ok {
				return nil, nil, frosterr.NewParty(fe.Kind, l, fe.Message)
			}
			return nil, nil, err
		}
	}

	r := c.Identity()
	for _, l := range included {
		r = r.Add(parsed[l].D.Add(parsed[l].E.ScalarMult(binding[l])))
	}

	ownNonce := m.d.Add(binding[i].Mul(m.e))
	response := m.algo.SignShare(m.view, r, ownNonce, msg)

	m.logger.Debugf("participant %d signed over %d included parties", i, len(included))

	next := &AlgorithmMachine{
		algo:         m.algo,
		view:         m.view,
		state:        signed,
		logger:       m.logger,
		msg:          msg,
		R:            r,
		ownResponse:  response,
		preprocesses: parsed,
		binding:      binding,
	}
	return next, response.Bytes(), nil
}

// Complete validates every received response share against its sender's
// Lagrange-adjusted verification share (naming the first offender on
// failure), then aggregates and checks the signature.
func (m *AlgorithmMachine) Complete(shares map[uint16][]byte) (any, error) {
	if m.state != signed {
		return nil, frosterr.New(frosterr.InternalError, "complete called out of order")
	}

	c := m.view.Curve()
	i := m.view.Index()
	if err := validateShareMap(shares, m.view.Included(), i, m.ownResponse.Bytes()); err != nil {
		return nil, err
	}

	parsedShares := make(map[uint16]curve.Scalar, len(shares))
	sum := c.ZeroScalar()
	for _, l := range m.view.Included() {
		share, err := c.ScalarFromBytes(shares[l])
		if err != nil {
			m.logger.Warnf("participant %d: share from %d out of range", i, l)
			return nil, frosterr.NewParty(frosterr.InvalidShare, l, "share is out of range")
		}
		parsedShares[l] = share

		nonceCommitment := m.preprocesses[l].D.Add(m.preprocesses[l].E.ScalarMult(m.binding[l]))
		if !m.algo.VerifyShare(m.view, l, m.view.VerificationShare(l), nonceCommitment, share) {
			m.logger.Warnf("participant %d: share from %d failed verification", i, l)
			return nil, frosterr.NewParty(frosterr.InvalidShare, l, "share failed verification")
		}

		sum = sum.Add(share)
	}

	sig, ok := m.algo.Verify(m.view, m.R, sum)
	if !ok {
		return nil, frosterr.New(frosterr.InternalError, "aggregated signature failed verification despite all shares passing individually")
	}
	m.logger.Debugf("participant %d completed signature over %d shares", i, len(shares))
	return sig, nil
}
