package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinels_AreDistinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrNotFound,
		ErrConflict,
		ErrUnauthorized,
		ErrInternal,
		ErrUnauthenticated,
		ErrValidation,
		ErrCipher,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinel %v matches %v", a, b)
			}
		}
	}
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("looking up credential: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("wrapped error does not match ErrNotFound")
	}
	if errors.Is(wrapped, ErrUnauthorized) {
		t.Fatalf("wrapped ErrNotFound must not match ErrUnauthorized")
	}
}
