package seqerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

func TestShortfallErrorMatchesSentinel(t *testing.T) {
	err := &seqerrors.ShortfallError{Op: "Take", Needed: 5, Got: 2}
	if !errors.Is(err, seqerrors.ErrShortSequence) {
		t.Fatal("ShortfallError should match ErrShortSequence")
	}
	if errors.Is(err, seqerrors.ErrEmptySequence) {
		t.Fatal("ShortfallError should not match ErrEmptySequence")
	}
}

func TestShortfallErrorMessage(t *testing.T) {
	err := &seqerrors.ShortfallError{Op: "Skip", Needed: 5, Got: 3}
	want := "seq.Skip: sequence does not contain enough elements, needed 5, got 3"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestShortfallErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("draining report: %w", &seqerrors.ShortfallError{Op: "Tail", Needed: 1, Got: 0})
	if !errors.Is(wrapped, seqerrors.ErrShortSequence) {
		t.Fatal("wrapping should preserve sentinel matching")
	}
	var shortfall *seqerrors.ShortfallError
	if !errors.As(wrapped, &shortfall) || shortfall.Op != "Tail" {
		t.Fatal("errors.As should recover the typed shortfall")
	}
}
