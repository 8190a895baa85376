package dkg

import "github.com/ringfrost/frost/frosterr"

// validateMap checks that a received map of per-party broadcasts, plus
// this party's own contribution, covers exactly the expected participant
// set — no more, no less. Grounded on validate_map in
// _examples/original_source/crypto/frost/src/lib.rs.
func validateMap[T any](m map[uint16]T, included []uint16, ownIndex uint16, own T) error {
	m[ownIndex] = own

	if len(m) != len(included) {
		return frosterr.New(
			frosterr.InvalidParticipantQuantity,
			"participant map size does not match the expected signing set",
		)
	}

	for _, l := range included {
		if _, ok := m[l]; !ok {
			return frosterr.NewParty(frosterr.MissingParticipant, l, "expected participant missing from map")
		}
	}

	return nil
}
