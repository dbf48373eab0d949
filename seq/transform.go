package seq

import (
	"fmt"

	"github.com/lguimbarda/lazyseq/seq/core"
)

// Map lazily transforms each element with fn.
func Map[T, U any](source Seq[T], fn func(T) U) Seq[U] {
	if source == nil {
		panic("seq.Map: source cannot be nil")
	}
	if fn == nil {
		panic("seq.Map: fn cannot be nil")
	}
	return core.Transform(source, core.MapStage(fn))
}

// MapIndexed lazily transforms each element with its zero-based index.
func MapIndexed[T, U any](source Seq[T], fn func(int, T) U) Seq[U] {
	if source == nil {
		panic("seq.MapIndexed: source cannot be nil")
	}
	if fn == nil {
		panic("seq.MapIndexed: fn cannot be nil")
	}
	return core.Transform(source, core.MapiStage(fn))
}

// Map2 lazily combines two sequences positionally. The result ends when
// either input ends.
func Map2[T, U, V any](first Seq[T], second Seq[U], fn func(T, U) V) Seq[V] {
	if first == nil {
		panic("seq.Map2: first cannot be nil")
	}
	if second == nil {
		panic("seq.Map2: second cannot be nil")
	}
	if fn == nil {
		panic("seq.Map2: fn cannot be nil")
	}
	return core.Transform(first, core.Map2Stage(second, fn))
}

// Map3 lazily combines three sequences positionally. The result ends when
// any input ends.
func Map3[T, U, V, W any](first Seq[T], second Seq[U], third Seq[V], fn func(T, U, V) W) Seq[W] {
	if first == nil {
		panic("seq.Map3: first cannot be nil")
	}
	if second == nil {
		panic("seq.Map3: second cannot be nil")
	}
	if third == nil {
		panic("seq.Map3: third cannot be nil")
	}
	if fn == nil {
		panic("seq.Map3: fn cannot be nil")
	}
	return core.Transform(first, core.Map3Stage(second, third, fn))
}

// MapIndexed2 is Map2 with the pair's zero-based position.
func MapIndexed2[T, U, V any](first Seq[T], second Seq[U], fn func(int, T, U) V) Seq[V] {
	if first == nil {
		panic("seq.MapIndexed2: first cannot be nil")
	}
	if second == nil {
		panic("seq.MapIndexed2: second cannot be nil")
	}
	if fn == nil {
		panic("seq.MapIndexed2: fn cannot be nil")
	}
	return core.Transform(first, core.Mapi2Stage(second, fn))
}

// Filter lazily keeps elements satisfying pred.
func Filter[T any](source Seq[T], pred func(T) bool) Seq[T] {
	if source == nil {
		panic("seq.Filter: source cannot be nil")
	}
	if pred == nil {
		panic("seq.Filter: pred cannot be nil")
	}
	return core.TransformSame(source, core.FilterStage(pred))
}

// Choose lazily maps and filters in one step: fn reports whether the
// element produced an output.
func Choose[T, U any](source Seq[T], fn func(T) (U, bool)) Seq[U] {
	if source == nil {
		panic("seq.Choose: source cannot be nil")
	}
	if fn == nil {
		panic("seq.Choose: fn cannot be nil")
	}
	return core.Transform(source, core.ChooseStage(fn))
}

// Distinct lazily drops duplicate values, keeping first occurrences.
func Distinct[T comparable](source Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.Distinct: source cannot be nil")
	}
	return core.TransformSame(source, core.DistinctStage[T]())
}

// DistinctBy lazily keeps the first element observed for each key.
func DistinctBy[T any, K comparable](source Seq[T], key func(T) K) Seq[T] {
	if source == nil {
		panic("seq.DistinctBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.DistinctBy: key cannot be nil")
	}
	return core.TransformSame(source, core.DistinctByStage(key))
}

// Except lazily drops elements present in excluded. The exclusion set is
// built on first use, once per execution.
func Except[T comparable](source Seq[T], excluded Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.Except: source cannot be nil")
	}
	if excluded == nil {
		panic("seq.Except: excluded cannot be nil")
	}
	return core.TransformSame(source, core.ExceptStage(excluded))
}

// Skip lazily drops the first count elements. Enumerating a result whose
// source held fewer than count elements reports a shortfall error at
// completion.
func Skip[T any](source Seq[T], count int) Seq[T] {
	if source == nil {
		panic("seq.Skip: source cannot be nil")
	}
	if count < 0 {
		panic(fmt.Sprintf("seq.Skip: count must be non-negative, got %d", count))
	}
	if count == 0 {
		return source
	}
	return core.TransformSame(source, core.SkipStage[T](count))
}

// SkipWhile lazily drops elements while pred holds, then forwards
// everything.
func SkipWhile[T any](source Seq[T], pred func(T) bool) Seq[T] {
	if source == nil {
		panic("seq.SkipWhile: source cannot be nil")
	}
	if pred == nil {
		panic("seq.SkipWhile: pred cannot be nil")
	}
	return core.TransformSame(source, core.SkipWhileStage(pred))
}

// Take lazily forwards the first count elements, never pulling element
// count+1. Enumerating a result whose source held fewer than count
// elements yields what there was and then reports a shortfall error.
func Take[T any](source Seq[T], count int) Seq[T] {
	if source == nil {
		panic("seq.Take: source cannot be nil")
	}
	if count < 0 {
		panic(fmt.Sprintf("seq.Take: count must be non-negative, got %d", count))
	}
	return core.TransformSame(source, core.TakeStage[T](count))
}

// TakeWhile lazily forwards elements while pred holds and stops at the
// first failure.
func TakeWhile[T any](source Seq[T], pred func(T) bool) Seq[T] {
	if source == nil {
		panic("seq.TakeWhile: source cannot be nil")
	}
	if pred == nil {
		panic("seq.TakeWhile: pred cannot be nil")
	}
	return core.TransformSame(source, core.TakeWhileStage(pred))
}

// Truncate lazily forwards at most count elements, accepting shorter input
// silently.
func Truncate[T any](source Seq[T], count int) Seq[T] {
	if source == nil {
		panic("seq.Truncate: source cannot be nil")
	}
	if count < 0 {
		panic(fmt.Sprintf("seq.Truncate: count must be non-negative, got %d", count))
	}
	return core.TransformSame(source, core.TruncateStage[T](count))
}

// Tail lazily drops the first element. Enumerating the tail of an empty
// sequence reports a shortfall error at completion.
func Tail[T any](source Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.Tail: source cannot be nil")
	}
	return core.TransformSame(source, core.TailStage[T]())
}

// Pairwise lazily forwards (previous, current) pairs; a sequence with
// fewer than two elements produces nothing.
func Pairwise[T any](source Seq[T]) Seq[Pair[T, T]] {
	if source == nil {
		panic("seq.Pairwise: source cannot be nil")
	}
	return core.Transform(source, core.PairwiseStage[T]())
}

// Windowed lazily forwards sliding windows of the given size, advancing
// one element at a time. Each window is a fresh slice.
func Windowed[T any](source Seq[T], size int) Seq[[]T] {
	if source == nil {
		panic("seq.Windowed: source cannot be nil")
	}
	if size <= 0 {
		panic(fmt.Sprintf("seq.Windowed: size must be positive, got %d", size))
	}
	return core.Transform(source, core.WindowedStage[T](size))
}

// Zip lazily pairs two sequences positionally, ending at the shorter.
func Zip[T, U any](first Seq[T], second Seq[U]) Seq[Pair[T, U]] {
	if first == nil {
		panic("seq.Zip: first cannot be nil")
	}
	if second == nil {
		panic("seq.Zip: second cannot be nil")
	}
	return core.Transform(first, core.Map2Stage(second, func(a T, b U) Pair[T, U] {
		return Pair[T, U]{First: a, Second: b}
	}))
}

// Zip3 lazily triples three sequences positionally, ending at the
// shortest.
func Zip3[T, U, V any](first Seq[T], second Seq[U], third Seq[V]) Seq[Triple[T, U, V]] {
	if first == nil {
		panic("seq.Zip3: first cannot be nil")
	}
	if second == nil {
		panic("seq.Zip3: second cannot be nil")
	}
	if third == nil {
		panic("seq.Zip3: third cannot be nil")
	}
	return core.Transform(first, core.Map3Stage(second, third, func(a T, b U, c V) Triple[T, U, V] {
		return Triple[T, U, V]{First: a, Second: b, Third: c}
	}))
}

// Indexed lazily pairs each element with its zero-based index.
func Indexed[T any](source Seq[T]) Seq[Pair[int, T]] {
	if source == nil {
		panic("seq.Indexed: source cannot be nil")
	}
	return core.Transform(source, core.MapiStage(func(i int, v T) Pair[int, T] {
		return Pair[int, T]{First: i, Second: v}
	}))
}
