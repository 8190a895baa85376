// Package dkg implements the Pedersen-VSS-with-proof-of-knowledge
// distributed key generation protocol from spec.md section 4.3, grounded
// on _examples/original_source/crypto/frost/src/key_gen.rs and generalized
// from the Rust crate's curve-as-type-parameter to this module's
// curve.Curve interface value.
package dkg

import (
	"encoding/binary"
	"io"

	"github.com/ringfrost/frost/curve"
	"github.com/ringfrost/frost/frosterr"
	"github.com/ringfrost/frost/internal/msm"
	"github.com/ringfrost/frost/keys"
	"github.com/ringfrost/frost/schnorr"
)

const pokDST = "FROST Schnorr Proof of Knowledge"

// challenge computes the PoK challenge transcript exactly as
// key_gen.rs::challenge: hash_to_F(DST, hash_msg(context) ‖ be16(l) ‖ R ‖
// commitments).
func challenge(c curve.Curve, context string, l uint16, r []byte, commitments []byte) curve.Scalar {
	transcript := c.HashMsg([]byte(context))
	var be16 [2]byte
	binary.BigEndian.PutUint16(be16[:], l)
	transcript = append(transcript, be16[:]...)
	transcript = append(transcript, r...)
	transcript = append(transcript, commitments...)
	return c.HashToScalar([]byte(pokDST), transcript)
}

// polynomial evaluates Σ_{k=0..t-1} a_k · l^k via reverse Horner's method,
// exactly as key_gen.rs::polynomial: walk the coefficients from the
// highest degree down, accumulating share = share*l + a_k, but skip the
// final multiply so the constant term a_0 is added unscaled last.
func polynomial(c curve.Curve, coefficients []curve.Scalar, l uint16) curve.Scalar {
	lv := c.ScalarFromUint16(l)
	share := c.ZeroScalar()
	for idx := len(coefficients) - 1; idx >= 0; idx-- {
		share = share.Add(coefficients[idx])
		if idx != 0 {
			share = share.Mul(lv)
		}
	}
	return share
}

// generateCoefficientsR1 implements steps 1-4 of round 1: sample t random
// coefficients, commit to each on G, produce a proof of knowledge of a_0,
// and serialize everything for broadcast.
func generateCoefficientsR1(c curve.Curve, rng io.Reader, params keys.Params, context string) ([]curve.Scalar, []byte, error) {
	t := int(params.T())
	coefficients := make([]curve.Scalar, t)
	commitments := make([]curve.Point, t)
	serialized := make([]byte, 0, c.GLen()*t+c.GLen()+c.FLen())

	g := c.Generator()
	for i := 0; i < t; i++ {
		a, err := c.RandomScalar(rng)
		if err != nil {
			return nil, nil, err
		}
		coefficients[i] = a
		commitments[i] = g.ScalarMult(a)
		serialized = append(serialized, commitments[i].Bytes()...)
	}

	r, err := c.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	rPoint := g.ScalarMult(r)
	chal := challenge(c, context, params.I(), rPoint.Bytes(), serialized)
	pok := schnorr.Sign(g, coefficients[0], r, chal)
	serialized = append(serialized, pok.Serialize()...)

	return coefficients, serialized, nil
}

// verifyR1 validates every received round-1 broadcast: the participant map
// must cover exactly [1, n], each party's commitments must parse, and all
// PoKs (except our own) are batch-verified, naming the offending party on
// failure.
func verifyR1(
	c curve.Curve,
	rng io.Reader,
	params keys.Params,
	context string,
	ownCommitments []byte,
	serialized map[uint16][]byte,
) (map[uint16][]curve.Point, error) {
	if err := validateMap(serialized, params.All(), params.I(), ownCommitments); err != nil {
		return nil, err
	}

	t := int(params.T())
	commitLen := t * c.GLen()

	commitments := make(map[uint16][]curve.Point, params.N())
	var triplets []schnorr.Triplet

	for l := uint16(1); l <= params.N(); l++ {
		data := serialized[l]
		if len(data) != commitLen+c.GLen()+c.FLen() {
			return nil, frosterr.NewParty(frosterr.InvalidCommitmentQuantity, l, "round 1 broadcast has the wrong length")
		}

		these := make([]curve.Point, t)
		for k := 0; k < t; k++ {
			p, err := c.PointFromBytes(data[k*c.GLen() : (k+1)*c.GLen()])
			if err != nil {
				return nil, frosterr.NewParty(frosterr.InvalidCommitment, l, "coefficient commitment is not a valid point")
			}
			these[k] = p
		}
		commitments[l] = these

		if l == params.I() {
			continue
		}

		rBytes := data[commitLen : commitLen+c.GLen()]
		sBytes := data[commitLen+c.GLen():]
		rPoint, err := c.PointFromBytes(rBytes)
		if err != nil {
			return nil, frosterr.NewParty(frosterr.InvalidProofOfKnowledge, l, "PoK commitment is not a valid point")
		}
		s, err := c.ScalarFromBytes(sBytes)
		if err != nil {
			return nil, frosterr.NewParty(frosterr.InvalidProofOfKnowledge, l, "PoK response is out of range")
		}

		chal := challenge(c, context, l, rBytes, data[:commitLen])
		triplets = append(triplets, schnorr.Triplet{
			ID:        l,
			PublicKey: these[0],
			Challenge: chal,
			Sig:       &schnorr.Signature{R: rPoint, S: s},
		})
	}

	if blame, ok, err := schnorr.BatchVerify(c, rng, triplets); err != nil {
		return nil, err
	} else if !ok {
		return nil, frosterr.NewParty(frosterr.InvalidProofOfKnowledge, blame, "proof of knowledge failed verification")
	}

	return commitments, nil
}

// generateSharesR2 implements round 1 step 5 and round 2 step 1: having
// verified everyone's commitments, compute this party's Shamir share for
// every other participant and its own share.
func generateSharesR2(
	c curve.Curve,
	rng io.Reader,
	params keys.Params,
	context string,
	coefficients []curve.Scalar,
	ownCommitments []byte,
	serialized map[uint16][]byte,
) (curve.Scalar, map[uint16][]curve.Point, map[uint16][]byte, error) {
	commitments, err := verifyR1(c, rng, params, context, ownCommitments, serialized)
	if err != nil {
		return nil, nil, nil, err
	}

	res := make(map[uint16][]byte, params.N()-1)
	for l := uint16(1); l <= params.N(); l++ {
		if l == params.I() {
			continue
		}
		res[l] = polynomial(c, coefficients, l).Bytes()
	}

	share := polynomial(c, coefficients, params.I())
	return share, commitments, res, nil
}

// completeR2 implements round 2 step 2 onward: verify every incoming
// share against the sender's published commitments with a per-sender
// batched multi-scalar check (spec.md section 4.3 calls this mandatory —
// collapsing across senders loses blame), aggregate the secret share, and
// derive the group key and every participant's verification share from
// the summed coefficient "stripes".
func completeR2(
	c curve.Curve,
	rng io.Reader,
	params keys.Params,
	secretShare curve.Scalar,
	commitments map[uint16][]curve.Point,
	serialized map[uint16][]byte,
) (*keys.MultisigKeys, error) {
	if err := validateMap(serialized, params.All(), params.I(), secretShare.Bytes()); err != nil {
		return nil, err
	}

	shares := make(map[uint16]curve.Scalar, len(serialized))
	for l, data := range serialized {
		s, err := c.ScalarFromBytes(data)
		if err != nil {
			return nil, frosterr.NewParty(frosterr.InvalidShare, l, "share is out of range")
		}
		shares[l] = s
	}

	t := int(params.T())
	exponential := func(i uint16) []curve.Scalar {
		iv := c.ScalarFromUint16(i)
		exp := c.ScalarFromUint16(1)
		out := make([]curve.Scalar, t)
		for k := 0; k < t; k++ {
			out[k] = exp
			exp = exp.Mul(iv)
		}
		return out
	}

	batch := msm.New(c)
	aggregated := secretShare
	for l, share := range shares {
		if l == params.I() {
			continue
		}
		aggregated = aggregated.Add(share)

		exps := exponential(params.I())
		terms := make([]msm.Term, 0, t+1)
		for k := 0; k < t; k++ {
			terms = append(terms, msm.Term{Scalar: exps[k], Point: commitments[l][k]})
		}
		terms = append(terms, msm.Term{Scalar: share.Negate(), Point: c.Generator()})
		batch.Queue(l, terms)
	}

	if blame, ok, err := batch.VerifyWithBlame(rng); err != nil {
		return nil, err
	} else if !ok {
		return nil, frosterr.NewParty(frosterr.InvalidCommitment, blame, "share does not match published commitments")
	}

	stripes := make([]curve.Point, t)
	for k := 0; k < t; k++ {
		sum := c.Identity()
		for _, cm := range commitments {
			sum = sum.Add(cm[k])
		}
		stripes[k] = sum
	}

	verificationShares := make(map[uint16]curve.Point, params.N())
	for i := uint16(1); i <= params.N(); i++ {
		exps := exponential(i)
		sum := c.Identity()
		for k := 0; k < t; k++ {
			sum = sum.Add(stripes[k].ScalarMult(exps[k]))
		}
		verificationShares[i] = sum
	}

	if !c.Generator().ScalarMult(aggregated).Equal(verificationShares[params.I()]) {
		return nil, frosterr.New(frosterr.InternalError, "aggregated secret share does not match its own verification share")
	}

	return &keys.MultisigKeys{
		Curve:              c,
		Params:             params,
		SecretShare:        aggregated,
		GroupKey:           stripes[0],
		VerificationShares: verificationShares,
		Offset:             nil,
	}, nil
}
