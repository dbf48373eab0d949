// Package seqerrors defines the error taxonomy for lazyseq pipelines.
//
// Three kinds of failure exist:
//   - Precondition violations (nil sources or functions, negative counts)
//     panic at construction time, before any element is pulled. They name
//     the offending argument in the panic message.
//   - Structural shortfalls (Skip, Take or Tail asked for more elements
//     than the source provided) surface as errors only at completion time,
//     after the short source has been exhausted.
//   - Empty-input aggregates (Reduce, Head, Last, ExactlyOne, Min, Max,
//     Average over an empty source) surface ErrEmptySequence.
//
// User-supplied function panics propagate unmodified through the pipeline;
// disposal of every acquired resource still runs before the panic escapes.
package seqerrors

import (
	"errors"
	"fmt"
)

// ErrEmptySequence reports an aggregate operation over an empty source.
var ErrEmptySequence = errors.New("input sequence was empty")

// ErrTooLong reports that ExactlyOne observed a second element.
var ErrTooLong = errors.New("input sequence contains more than one element")

// ErrShortSequence is the sentinel matched by every ShortfallError.
var ErrShortSequence = errors.New("sequence does not contain enough elements")

// ErrNotFound reports that Find, FindIndex or Pick exhausted the source
// without a match.
var ErrNotFound = errors.New("no element satisfies the predicate")

// ErrCacheCleared reports a read from a cached sequence after Clear.
var ErrCacheCleared = errors.New("cached sequence has been cleared")

// Cursor state-machine misuse panics with these messages.
const (
	MsgNotStarted = "lazyseq: enumeration not started, call Next first"
	MsgFinished   = "lazyseq: enumeration already finished"
)

// ShortfallError reports that a stage needed more elements than its source
// provided. It is detected only when the short source completes, so code
// that never drains the result never observes it.
type ShortfallError struct {
	Op     string // the operation that imposed the requirement
	Needed int
	Got    int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("seq.%s: sequence does not contain enough elements, needed %d, got %d", e.Op, e.Needed, e.Got)
}

// Unwrap makes errors.Is(err, ErrShortSequence) hold for every shortfall.
func (e *ShortfallError) Unwrap() error { return ErrShortSequence }
