package seq

import (
	"cmp"

	"github.com/lguimbarda/lazyseq/seq/conslist"
	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// drainSink adapts a per-element closure into a terminal consumer for
// one-shot push execution.
type drainSink[T any] struct {
	core.Sink
	each func(T) bool
}

func (s *drainSink[T]) ProcessNext(v T) bool { return s.each(v) }

// each drains source through fn in one pass. fn may stop the execution
// early through the signal; the returned error is the execution's recorded
// failure, including shortfalls detected at completion.
func each[T any](source Seq[T], fn func(sig *Signal, v T) bool) error {
	return core.Run(source, func(sig *Signal) Consumer[T] {
		return &drainSink[T]{each: func(v T) bool { return fn(sig, v) }}
	})
}

// Fold threads an accumulator through every element and returns the final
// state.
func Fold[S, T any](source Seq[T], state S, fn func(S, T) S) (S, error) {
	if source == nil {
		panic("seq.Fold: source cannot be nil")
	}
	if fn == nil {
		panic("seq.Fold: fn cannot be nil")
	}
	acc := state
	err := each(source, func(_ *Signal, v T) bool {
		acc = fn(acc, v)
		return true
	})
	return acc, err
}

// Fold2 threads an accumulator through both sequences pairwise, stopping at
// the shorter one.
func Fold2[S, T, U any](first Seq[T], second Seq[U], state S, fn func(S, T, U) S) (S, error) {
	if first == nil {
		panic("seq.Fold2: first cannot be nil")
	}
	if second == nil {
		panic("seq.Fold2: second cannot be nil")
	}
	if fn == nil {
		panic("seq.Fold2: fn cannot be nil")
	}
	acc := state
	err := each(Zip(first, second), func(_ *Signal, p Pair[T, U]) bool {
		acc = fn(acc, p.First, p.Second)
		return true
	})
	return acc, err
}

// Reduce folds the sequence using its first element as the initial state.
// An empty source reports seqerrors.ErrEmptySequence.
func Reduce[T any](source Seq[T], fn func(T, T) T) (T, error) {
	if source == nil {
		panic("seq.Reduce: source cannot be nil")
	}
	if fn == nil {
		panic("seq.Reduce: fn cannot be nil")
	}
	var acc T
	seen := false
	err := each(source, func(_ *Signal, v T) bool {
		if !seen {
			acc, seen = v, true
		} else {
			acc = fn(acc, v)
		}
		return true
	})
	if err == nil && !seen {
		err = seqerrors.ErrEmptySequence
	}
	return acc, err
}

// ForEach applies fn to every element.
func ForEach[T any](source Seq[T], fn func(T)) error {
	if source == nil {
		panic("seq.ForEach: source cannot be nil")
	}
	if fn == nil {
		panic("seq.ForEach: fn cannot be nil")
	}
	return each(source, func(_ *Signal, v T) bool {
		fn(v)
		return true
	})
}

// ForEachIndexed applies fn to every element with its zero-based index.
func ForEachIndexed[T any](source Seq[T], fn func(int, T)) error {
	if source == nil {
		panic("seq.ForEachIndexed: source cannot be nil")
	}
	if fn == nil {
		panic("seq.ForEachIndexed: fn cannot be nil")
	}
	i := 0
	return each(source, func(_ *Signal, v T) bool {
		fn(i, v)
		i++
		return true
	})
}

// Sum adds all elements. An empty source sums to zero.
func Sum[T Numeric](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.Sum: source cannot be nil")
	}
	var total T
	err := each(source, func(_ *Signal, v T) bool {
		total += v
		return true
	})
	return total, err
}

// SumBy adds fn over all elements. An empty source sums to zero.
func SumBy[T any, N Numeric](source Seq[T], fn func(T) N) (N, error) {
	if source == nil {
		panic("seq.SumBy: source cannot be nil")
	}
	if fn == nil {
		panic("seq.SumBy: fn cannot be nil")
	}
	var total N
	err := each(source, func(_ *Signal, v T) bool {
		total += fn(v)
		return true
	})
	return total, err
}

// Average returns the arithmetic mean of all elements. An empty source
// reports seqerrors.ErrEmptySequence.
func Average[T Numeric](source Seq[T]) (float64, error) {
	if source == nil {
		panic("seq.Average: source cannot be nil")
	}
	return AverageBy(source, func(v T) T { return v })
}

// AverageBy returns the arithmetic mean of fn over all elements. An empty
// source reports seqerrors.ErrEmptySequence.
func AverageBy[T any, N Numeric](source Seq[T], fn func(T) N) (float64, error) {
	if source == nil {
		panic("seq.AverageBy: source cannot be nil")
	}
	if fn == nil {
		panic("seq.AverageBy: fn cannot be nil")
	}
	var total float64
	count := 0
	err := each(source, func(_ *Signal, v T) bool {
		total += float64(fn(v))
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, seqerrors.ErrEmptySequence
	}
	return total / float64(count), nil
}

// Min returns the smallest element. An empty source reports
// seqerrors.ErrEmptySequence.
func Min[T cmp.Ordered](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.Min: source cannot be nil")
	}
	return pickExtreme(source, "Min", func(candidate, best T) bool { return candidate < best })
}

// MinBy returns the element with the smallest key. An empty source reports
// seqerrors.ErrEmptySequence.
func MinBy[T any, K cmp.Ordered](source Seq[T], key func(T) K) (T, error) {
	if source == nil {
		panic("seq.MinBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.MinBy: key cannot be nil")
	}
	return pickExtreme(source, "MinBy", func(candidate, best T) bool { return key(candidate) < key(best) })
}

// Max returns the largest element. An empty source reports
// seqerrors.ErrEmptySequence.
func Max[T cmp.Ordered](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.Max: source cannot be nil")
	}
	return pickExtreme(source, "Max", func(candidate, best T) bool { return candidate > best })
}

// MaxBy returns the element with the largest key. An empty source reports
// seqerrors.ErrEmptySequence.
func MaxBy[T any, K cmp.Ordered](source Seq[T], key func(T) K) (T, error) {
	if source == nil {
		panic("seq.MaxBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.MaxBy: key cannot be nil")
	}
	return pickExtreme(source, "MaxBy", func(candidate, best T) bool { return key(candidate) > key(best) })
}

func pickExtreme[T any](source Seq[T], op string, better func(candidate, best T) bool) (T, error) {
	var best T
	seen := false
	err := each(source, func(_ *Signal, v T) bool {
		if !seen || better(v, best) {
			best, seen = v, true
		}
		return true
	})
	if err == nil && !seen {
		err = seqerrors.ErrEmptySequence
	}
	return best, err
}

// Head returns the first element without consuming the rest. An empty
// source reports seqerrors.ErrEmptySequence.
func Head[T any](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.Head: source cannot be nil")
	}
	v, ok, err := TryHead(source)
	if err == nil && !ok {
		err = seqerrors.ErrEmptySequence
	}
	return v, err
}

// TryHead returns the first element and whether one existed.
func TryHead[T any](source Seq[T]) (T, bool, error) {
	if source == nil {
		panic("seq.TryHead: source cannot be nil")
	}
	var head T
	found := false
	err := each(source, func(sig *Signal, v T) bool {
		head, found = v, true
		sig.StopFurtherProcessing()
		return false
	})
	return head, found, err
}

// Last returns the final element, consuming the whole source. An empty
// source reports seqerrors.ErrEmptySequence.
func Last[T any](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.Last: source cannot be nil")
	}
	v, ok, err := TryLast(source)
	if err == nil && !ok {
		err = seqerrors.ErrEmptySequence
	}
	return v, err
}

// TryLast returns the final element and whether one existed.
func TryLast[T any](source Seq[T]) (T, bool, error) {
	if source == nil {
		panic("seq.TryLast: source cannot be nil")
	}
	var last T
	found := false
	err := each(source, func(_ *Signal, v T) bool {
		last, found = v, true
		return true
	})
	return last, found, err
}

// ExactlyOne returns the sole element. An empty source reports
// seqerrors.ErrEmptySequence; a second element reports seqerrors.ErrTooLong.
func ExactlyOne[T any](source Seq[T]) (T, error) {
	if source == nil {
		panic("seq.ExactlyOne: source cannot be nil")
	}
	var only T
	seen := false
	err := each(source, func(sig *Signal, v T) bool {
		if seen {
			sig.Fail(seqerrors.ErrTooLong)
			sig.StopFurtherProcessing()
			return false
		}
		only, seen = v, true
		return true
	})
	if err == nil && !seen {
		err = seqerrors.ErrEmptySequence
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return only, nil
}

// Length counts the elements, consuming the whole source.
func Length[T any](source Seq[T]) (int, error) {
	if source == nil {
		panic("seq.Length: source cannot be nil")
	}
	n := 0
	err := each(source, func(_ *Signal, _ T) bool {
		n++
		return true
	})
	return n, err
}

// IsEmpty reports whether the source yields no elements, pulling at most
// one.
func IsEmpty[T any](source Seq[T]) (bool, error) {
	if source == nil {
		panic("seq.IsEmpty: source cannot be nil")
	}
	_, ok, err := TryHead(source)
	return !ok, err
}

// Exists reports whether any element satisfies pred, stopping at the first
// hit.
func Exists[T any](source Seq[T], pred func(T) bool) (bool, error) {
	if source == nil {
		panic("seq.Exists: source cannot be nil")
	}
	if pred == nil {
		panic("seq.Exists: pred cannot be nil")
	}
	found := false
	err := each(source, func(sig *Signal, v T) bool {
		if pred(v) {
			found = true
			sig.StopFurtherProcessing()
			return false
		}
		return true
	})
	return found, err
}

// Exists2 reports whether any positional pair of the two sequences
// satisfies pred, stopping at the first hit or the shorter input.
func Exists2[T, U any](first Seq[T], second Seq[U], pred func(T, U) bool) (bool, error) {
	if first == nil {
		panic("seq.Exists2: first cannot be nil")
	}
	if second == nil {
		panic("seq.Exists2: second cannot be nil")
	}
	if pred == nil {
		panic("seq.Exists2: pred cannot be nil")
	}
	return Exists(Zip(first, second), func(p Pair[T, U]) bool { return pred(p.First, p.Second) })
}

// ForAll reports whether every element satisfies pred, stopping at the
// first failure.
func ForAll[T any](source Seq[T], pred func(T) bool) (bool, error) {
	if source == nil {
		panic("seq.ForAll: source cannot be nil")
	}
	if pred == nil {
		panic("seq.ForAll: pred cannot be nil")
	}
	failed, err := Exists(source, func(v T) bool { return !pred(v) })
	return !failed, err
}

// ForAll2 reports whether every positional pair of the two sequences
// satisfies pred, comparing up to the shorter input.
func ForAll2[T, U any](first Seq[T], second Seq[U], pred func(T, U) bool) (bool, error) {
	if first == nil {
		panic("seq.ForAll2: first cannot be nil")
	}
	if second == nil {
		panic("seq.ForAll2: second cannot be nil")
	}
	if pred == nil {
		panic("seq.ForAll2: pred cannot be nil")
	}
	failed, err := Exists2(first, second, func(a T, b U) bool { return !pred(a, b) })
	return !failed, err
}

// Contains reports whether value occurs in the source, stopping at the
// first hit.
func Contains[T comparable](source Seq[T], value T) (bool, error) {
	if source == nil {
		panic("seq.Contains: source cannot be nil")
	}
	return Exists(source, func(v T) bool { return v == value })
}

// Find returns the first element satisfying pred. Exhausting the source
// without a match reports seqerrors.ErrNotFound.
func Find[T any](source Seq[T], pred func(T) bool) (T, error) {
	if source == nil {
		panic("seq.Find: source cannot be nil")
	}
	if pred == nil {
		panic("seq.Find: pred cannot be nil")
	}
	v, ok, err := TryFind(source, pred)
	if err == nil && !ok {
		err = seqerrors.ErrNotFound
	}
	return v, err
}

// TryFind returns the first element satisfying pred and whether one was
// found.
func TryFind[T any](source Seq[T], pred func(T) bool) (T, bool, error) {
	if source == nil {
		panic("seq.TryFind: source cannot be nil")
	}
	if pred == nil {
		panic("seq.TryFind: pred cannot be nil")
	}
	var match T
	found := false
	err := each(source, func(sig *Signal, v T) bool {
		if pred(v) {
			match, found = v, true
			sig.StopFurtherProcessing()
			return false
		}
		return true
	})
	return match, found, err
}

// FindIndex returns the index of the first element satisfying pred.
// Exhausting the source without a match reports seqerrors.ErrNotFound.
func FindIndex[T any](source Seq[T], pred func(T) bool) (int, error) {
	if source == nil {
		panic("seq.FindIndex: source cannot be nil")
	}
	if pred == nil {
		panic("seq.FindIndex: pred cannot be nil")
	}
	i, ok, err := TryFindIndex(source, pred)
	if err == nil && !ok {
		err = seqerrors.ErrNotFound
	}
	return i, err
}

// TryFindIndex returns the index of the first element satisfying pred and
// whether one was found.
func TryFindIndex[T any](source Seq[T], pred func(T) bool) (int, bool, error) {
	if source == nil {
		panic("seq.TryFindIndex: source cannot be nil")
	}
	if pred == nil {
		panic("seq.TryFindIndex: pred cannot be nil")
	}
	idx, i := -1, 0
	err := each(source, func(sig *Signal, v T) bool {
		if pred(v) {
			idx = i
			sig.StopFurtherProcessing()
			return false
		}
		i++
		return true
	})
	return idx, idx >= 0, err
}

// Pick returns the first output produced by chooser. Exhausting the source
// without an output reports seqerrors.ErrNotFound.
func Pick[T, U any](source Seq[T], chooser func(T) (U, bool)) (U, error) {
	if source == nil {
		panic("seq.Pick: source cannot be nil")
	}
	if chooser == nil {
		panic("seq.Pick: chooser cannot be nil")
	}
	v, ok, err := TryPick(source, chooser)
	if err == nil && !ok {
		err = seqerrors.ErrNotFound
	}
	return v, err
}

// TryPick returns the first output produced by chooser and whether one was
// produced.
func TryPick[T, U any](source Seq[T], chooser func(T) (U, bool)) (U, bool, error) {
	if source == nil {
		panic("seq.TryPick: source cannot be nil")
	}
	if chooser == nil {
		panic("seq.TryPick: chooser cannot be nil")
	}
	var picked U
	found := false
	err := each(source, func(sig *Signal, v T) bool {
		if out, ok := chooser(v); ok {
			picked, found = out, true
			sig.StopFurtherProcessing()
			return false
		}
		return true
	})
	return picked, found, err
}

// ToSlice materializes the sequence into a new slice.
func ToSlice[T any](source Seq[T]) ([]T, error) {
	if source == nil {
		panic("seq.ToSlice: source cannot be nil")
	}
	var out []T
	err := each(source, func(_ *Signal, v T) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToList materializes the sequence into an immutable cons list.
func ToList[T any](source Seq[T]) (*conslist.List[T], error) {
	items, err := ToSlice(source)
	if err != nil {
		return nil, err
	}
	return conslist.FromSlice(items), nil
}

// CompareWith compares two sequences lexicographically with compare,
// returning the first non-zero comparison. When one sequence is a proper
// prefix of the other, the shorter orders first.
func CompareWith[T any](first, second Seq[T], compare func(T, T) int) (int, error) {
	if first == nil {
		panic("seq.CompareWith: first cannot be nil")
	}
	if second == nil {
		panic("seq.CompareWith: second cannot be nil")
	}
	if compare == nil {
		panic("seq.CompareWith: compare cannot be nil")
	}
	a := first.Cursor()
	defer a.Close()
	b := second.Cursor()
	defer b.Close()
	for {
		aOK := a.Next()
		bOK := b.Next()
		switch {
		case !aOK && !bOK:
			return 0, firstErr(a.Err(), b.Err())
		case !aOK:
			if err := a.Err(); err != nil {
				return 0, err
			}
			return -1, nil
		case !bOK:
			if err := b.Err(); err != nil {
				return 0, err
			}
			return 1, nil
		}
		if c := compare(a.Value(), b.Value()); c != 0 {
			return c, nil
		}
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
