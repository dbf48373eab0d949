package seq

import (
	"fmt"

	"github.com/lguimbarda/lazyseq/seq/conslist"
	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// Of creates a sequence from the given values.
func Of[T any](items ...T) Seq[T] {
	return core.FromSlice(items)
}

// FromSlice wraps a slice as a sequence without copying it. Mutating the
// slice afterwards changes what later executions observe.
func FromSlice[T any](items []T) Seq[T] {
	return core.FromSlice(items)
}

// FromList wraps an immutable cons list as a sequence.
func FromList[T any](list *conslist.List[T]) Seq[T] {
	return core.FromList(list)
}

// FromCursorFunc wraps a cursor-producing function as a restartable
// sequence. Every execution calls open for a fresh cursor; the engine
// closes it when the execution is torn down.
func FromCursorFunc[T any](open func() Cursor[T]) Seq[T] {
	if open == nil {
		panic("seq.FromCursorFunc: open cannot be nil")
	}
	return core.FromCursorFunc(open)
}

// Empty returns the sequence with no elements.
func Empty[T any]() Seq[T] {
	return core.Empty[T]()
}

// Singleton returns the sequence holding exactly one value.
func Singleton[T any](value T) Seq[T] {
	return core.FromSlice([]T{value})
}

// Replicate returns a sequence repeating value count times.
func Replicate[T any](count int, value T) Seq[T] {
	if count < 0 {
		panic(fmt.Sprintf("seq.Replicate: count must be non-negative, got %d", count))
	}
	return core.Init(count, func(int) T { return value })
}

// Init generates count elements by applying gen to each index. gen runs
// lazily, once per demanded element.
func Init[T any](count int, gen func(int) T) Seq[T] {
	if count < 0 {
		panic(fmt.Sprintf("seq.Init: count must be non-negative, got %d", count))
	}
	if gen == nil {
		panic("seq.Init: gen cannot be nil")
	}
	return core.Init(count, gen)
}

// InitInfinite generates an unbounded sequence by index. Pair it with Take,
// TakeWhile or Truncate.
func InitInfinite[T any](gen func(int) T) Seq[T] {
	if gen == nil {
		panic("seq.InitInfinite: gen cannot be nil")
	}
	return core.InitInfinite(gen)
}

// Range yields the integers from start up to but excluding stop. A stop
// at or below start yields the empty sequence.
func Range(start, stop int) Seq[int] {
	if stop <= start {
		return core.Empty[int]()
	}
	return core.Init(stop-start, func(i int) int { return start + i })
}

// RangeStep yields start, start+step, ... while below stop. step must be
// positive.
func RangeStep(start, stop, step int) Seq[int] {
	if step <= 0 {
		panic(fmt.Sprintf("seq.RangeStep: step must be positive, got %d", step))
	}
	if stop <= start {
		return core.Empty[int]()
	}
	count := (stop - start + step - 1) / step
	return core.Init(count, func(i int) int { return start + i*step })
}

// Unfold generates a sequence from a seed state: gen returns the next
// element, the next state, and whether the sequence continues.
func Unfold[S, T any](seed S, gen func(S) (T, S, bool)) Seq[T] {
	if gen == nil {
		panic("seq.Unfold: gen cannot be nil")
	}
	return core.Unfold(seed, gen)
}

// Delay defers building the underlying sequence until each execution
// starts.
func Delay[T any](build func() Seq[T]) Seq[T] {
	if build == nil {
		panic("seq.Delay: build cannot be nil")
	}
	return core.Delay(build)
}

// Append yields first's elements followed by second's.
func Append[T any](first, second Seq[T]) Seq[T] {
	if first == nil {
		panic("seq.Append: first cannot be nil")
	}
	if second == nil {
		panic("seq.Append: second cannot be nil")
	}
	return core.Append(first, second)
}

// Concat yields all elements of each source in order.
func Concat[T any](sources ...Seq[T]) Seq[T] {
	for i, s := range sources {
		if s == nil {
			panic(fmt.Sprintf("seq.Concat: sources[%d] cannot be nil", i))
		}
	}
	return core.Concat(sources...)
}

// errCursor immediately reports err. It backs sequences whose construction
// failed lazily, such as an invalid permutation.
type errCursor[T any] struct {
	err error
}

func (c *errCursor[T]) Next() bool   { return false }
func (c *errCursor[T]) Value() T     { panic(seqerrors.MsgNotStarted) }
func (c *errCursor[T]) Err() error   { return c.err }
func (c *errCursor[T]) Close() error { return nil }

func errorSeq[T any](err error) Seq[T] {
	return core.FromCursorFunc(func() Cursor[T] { return &errCursor[T]{err: err} })
}
