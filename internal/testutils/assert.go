// Package testutils adapts the teacher's hand-rolled assertion helpers
// (threshold-network-roast-go/internal/testutils/assert.go) from
// math/big.Int-keyed comparisons to this module's curve.Scalar/curve.Point
// abstraction, keeping the same terse style: plain testing.T, no
// assertion-library magic, one function per comparison shape.
package testutils

import (
	"reflect"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/ringfrost/frost/curve"
)

// AssertScalarsEqual checks if two scalars are equal. If not, it reports a
// test failure.
func AssertScalarsEqual(t *testing.T, description string, expected, actual curve.Scalar) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf(
			"unexpected %s\nexpected: %x\nactual:   %x\n",
			description,
			expected.Bytes(),
			actual.Bytes(),
		)
	}
}

// AssertPointsEqual checks if two points are equal. If not, it reports a
// test failure.
func AssertPointsEqual(t *testing.T, description string, expected, actual curve.Point) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf(
			"unexpected %s\nexpected: %x\nactual:   %x\n",
			description,
			expected.Bytes(),
			actual.Bytes(),
		)
	}
}

// AssertBytesEqual checks if the two byte slices are equal. If not, it
// reports a test failure.
func AssertBytesEqual(t *testing.T, expected, actual []byte) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("unexpected bytes\nexpected: %x\nactual:   %x\n", expected, actual)
	}
}

// AssertUintsEqual checks if two unsigned integers are equal. If not, it
// reports a test failure.
func AssertUintsEqual(t *testing.T, description string, expected, actual uint16) {
	t.Helper()
	if expected != actual {
		t.Errorf("unexpected %s\nexpected: %v\nactual:   %v\n", description, expected, actual)
	}
}

// AssertUint16SlicesEqual checks two uint16 slices for equality.
func AssertUint16SlicesEqual(t *testing.T, description string, expected, actual []uint16) {
	t.Helper()
	if !slices.Equal(expected, actual) {
		t.Errorf("unexpected %s\nexpected: %v\nactual:   %v\n", description, expected, actual)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, description string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error in %s: %v", description, err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, description string, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error in %s, got none", description)
	}
}
