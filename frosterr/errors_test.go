package frosterr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ringfrost/frost/frosterr"
)

func TestKindOfAndPartyOfExtractFromWrappedError(t *testing.T) {
	err := fmt.Errorf("signing round: %w", frosterr.NewParty(frosterr.InvalidShare, 3, "share failed verification"))

	kind, ok := frosterr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, frosterr.InvalidShare, kind)

	party, ok := frosterr.PartyOf(err)
	require.True(t, ok)
	require.EqualValues(t, 3, party)
}

func TestPartyOfIsFalseWithoutAnOffender(t *testing.T) {
	err := frosterr.New(frosterr.InvalidSigningSet, "invalid amount of participants included")

	_, ok := frosterr.PartyOf(err)
	require.False(t, ok)

	kind, ok := frosterr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, frosterr.InvalidSigningSet, kind)
}

func TestErrorsIsMatchesByKindAndOptionalParty(t *testing.T) {
	err := frosterr.NewParty(frosterr.InvalidShare, 2, "share is out of range")

	require.True(t, errors.Is(err, frosterr.New(frosterr.InvalidShare, "")))
	require.True(t, errors.Is(err, frosterr.NewParty(frosterr.InvalidShare, 2, "")))
	require.False(t, errors.Is(err, frosterr.NewParty(frosterr.InvalidShare, 5, "")))
	require.False(t, errors.Is(err, frosterr.New(frosterr.InternalError, "")))
}

func TestKindOfIsFalseForForeignErrors(t *testing.T) {
	_, ok := frosterr.KindOf(errors.New("not a frosterr.Error"))
	require.False(t, ok)
}
