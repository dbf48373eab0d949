// Package seq provides composable, lazily evaluated sequence pipelines.
//
// A pipeline is built by chaining transformations (Map, Filter, Take, ...)
// over a Seq and runs in a single pass when the result is consumed: adjacent
// stages are fused into one consumer chain driven by one loop over the
// physical source, with no intermediate buffering between stages.
//
// This package is the primary user-facing API. Most users should only need
// to import this package. The seq/core subpackage contains the execution
// engine and is needed only to implement custom physical sources.
//
// Sequences are restartable: consuming one re-runs the source from scratch
// unless it is wrapped by seq/cache. Lazy operations return a new Seq and
// pull nothing; eager operations (Fold, Sum, ToSlice, ...) consume the
// source immediately and return an error for data-dependent failures such
// as empty input or a structural shortfall. Precondition violations (nil
// sources or functions, negative counts) panic at construction time.
package seq

import (
	"github.com/lguimbarda/lazyseq/seq/core"
)

// Type aliases for the core abstractions, so users can work with pipelines
// without importing core directly.
type (
	// Seq is a lazily evaluated, restartable sequence of values.
	Seq[T any] = core.Seq[T]

	// Cursor is an external iterator over a sequence. Advance with Next,
	// read with Value, check Err after Next returns false, always Close.
	Cursor[T any] = core.Cursor[T]

	// Pair is an ordered pair produced by Pairwise, Zip and Indexed.
	Pair[A, B any] = core.Pair[A, B]

	// Factory describes one transformation stage. Only needed to plug
	// custom stages into the engine.
	Factory[T, U any] = core.Factory[T, U]

	// Consumer is the runtime object receiving elements one at a time.
	Consumer[T any] = core.Consumer[T]

	// Signal is the per-execution control state shared by a pipeline's
	// consumers.
	Signal = core.Signal
)

// Triple is an ordered triple produced by Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Numeric constrains the element types Sum and Average accept.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
