// Package frosterr defines the structured error taxonomy shared by every
// layer of the signing engine: curve, DKG, keys, and the sign state machine.
//
// Every fault is returned to the caller with a Kind and, where applicable,
// the index of the offending participant (spec.md section 7). The engine
// never retries on its own; a DKG fault aborts the round and a signing
// fault is surfaced through Algorithm.verify_share so any honest
// participant can identify the culprit.
package frosterr

import (
	"errors"
	"fmt"
)

// Kind enumerates the fault categories from spec.md section 7.
type Kind int

const (
	// Parameter faults: malformed MultisigParams.
	ZeroParameter Kind = iota
	InvalidRequiredQuantity
	InvalidParticipantIndex

	// Set faults: malformed participant maps.
	InvalidSigningSet
	InvalidParticipantQuantity
	DuplicatedIndex
	MissingParticipant

	// Commitment faults: malformed or unverifiable DKG broadcasts.
	InvalidCommitment
	InvalidCommitmentQuantity
	InvalidProofOfKnowledge

	// Share faults.
	InvalidShare

	// Internal faults: invariants that should be unreachable absent a bug
	// in the caller or this library.
	InternalError
)

func (k Kind) String() string {
	switch k {
	case ZeroParameter:
		return "zero parameter"
	case InvalidRequiredQuantity:
		return "invalid required quantity"
	case InvalidParticipantIndex:
		return "invalid participant index"
	case InvalidSigningSet:
		return "invalid signing set"
	case InvalidParticipantQuantity:
		return "invalid participant quantity"
	case DuplicatedIndex:
		return "duplicated participant index"
	case MissingParticipant:
		return "missing participant"
	case InvalidCommitment:
		return "invalid commitment"
	case InvalidCommitmentQuantity:
		return "invalid commitment quantity"
	case InvalidProofOfKnowledge:
		return "invalid proof of knowledge"
	case InvalidShare:
		return "invalid share"
	case InternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the structured fault type returned by every exported operation
// in this module. Party is the 1-based index of the offending participant,
// or zero when the fault has no single offender (e.g. InvalidSigningSet).
type Error struct {
	Kind    Kind
	Party   uint16
	Message string
}

func (e *Error) Error() string {
	if e.Party != 0 {
		return fmt.Sprintf("frost: %s (participant %d): %s", e.Kind, e.Party, e.Message)
	}
	return fmt.Sprintf("frost: %s: %s", e.Kind, e.Message)
}

// New builds an Error with no associated participant.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewParty builds an Error naming the offending participant.
func NewParty(kind Kind, party uint16, message string) *Error {
	return &Error{Kind: kind, Party: party, Message: message}
}

// Is allows errors.Is(err, frosterr.InvalidShare) style matching against a
// Kind by wrapping it in a sentinel-shaped Error with Party 0.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Party != 0 && t.Party != e.Party {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind carried by err, if err is (or wraps) a
// *frosterr.Error. The second return is false otherwise.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if !errors.As(err, &fe) {
		return 0, false
	}
	return fe.Kind, true
}

// PartyOf extracts the offending participant index carried by err (or by
// the *frosterr.Error it wraps), if any.
func PartyOf(err error) (uint16, bool) {
	var fe *Error
	if !errors.As(err, &fe) || fe.Party == 0 {
		return 0, false
	}
	return fe.Party, true
}
