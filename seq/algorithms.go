package seq

import (
	"cmp"
	"fmt"
	"sort"
)

// Operations in this file materialize their input into a slice per
// execution. They stay lazy at the definition level through Delay, so
// building the pipeline still pulls nothing, and each enumeration re-reads
// the source. A source failure during materialization surfaces through the
// resulting sequence's cursor Err.

// Sort yields the elements in ascending order. The sort is stable.
func Sort[T cmp.Ordered](source Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.Sort: source cannot be nil")
	}
	return sorted(source, func(items []T) {
		sort.SliceStable(items, func(i, j int) bool { return items[i] < items[j] })
	})
}

// SortDescending yields the elements in descending order. The sort is
// stable.
func SortDescending[T cmp.Ordered](source Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.SortDescending: source cannot be nil")
	}
	return sorted(source, func(items []T) {
		sort.SliceStable(items, func(i, j int) bool { return items[i] > items[j] })
	})
}

// SortBy yields the elements ordered by ascending key. The sort is stable.
func SortBy[T any, K cmp.Ordered](source Seq[T], key func(T) K) Seq[T] {
	if source == nil {
		panic("seq.SortBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.SortBy: key cannot be nil")
	}
	return sorted(source, func(items []T) {
		sort.SliceStable(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
	})
}

// SortWith yields the elements ordered by the comparison function, which
// reports negative, zero or positive like cmp.Compare. The sort is stable.
func SortWith[T any](source Seq[T], compare func(T, T) int) Seq[T] {
	if source == nil {
		panic("seq.SortWith: source cannot be nil")
	}
	if compare == nil {
		panic("seq.SortWith: compare cannot be nil")
	}
	return sorted(source, func(items []T) {
		sort.SliceStable(items, func(i, j int) bool { return compare(items[i], items[j]) < 0 })
	})
}

func sorted[T any](source Seq[T], order func([]T)) Seq[T] {
	return Delay(func() Seq[T] {
		items, err := ToSlice(source)
		if err != nil {
			return errorSeq[T](err)
		}
		order(items)
		return FromSlice(items)
	})
}

// Rev yields the elements in reverse order.
func Rev[T any](source Seq[T]) Seq[T] {
	if source == nil {
		panic("seq.Rev: source cannot be nil")
	}
	return Delay(func() Seq[T] {
		items, err := ToSlice(source)
		if err != nil {
			return errorSeq[T](err)
		}
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		return FromSlice(items)
	})
}

// Permute yields the elements rearranged so the element at index i moves to
// index indexMap(i). indexMap must be a bijection over [0, n); a mapping
// out of range or with collisions surfaces as a cursor error when the
// result is enumerated.
func Permute[T any](source Seq[T], indexMap func(int) int) Seq[T] {
	if source == nil {
		panic("seq.Permute: source cannot be nil")
	}
	if indexMap == nil {
		panic("seq.Permute: indexMap cannot be nil")
	}
	return Delay(func() Seq[T] {
		items, err := ToSlice(source)
		if err != nil {
			return errorSeq[T](err)
		}
		out := make([]T, len(items))
		placed := make([]bool, len(items))
		for i, v := range items {
			j := indexMap(i)
			if j < 0 || j >= len(items) {
				return errorSeq[T](fmt.Errorf("seq.Permute: index %d maps to %d, outside [0, %d)", i, j, len(items)))
			}
			if placed[j] {
				return errorSeq[T](fmt.Errorf("seq.Permute: index %d is the image of more than one element", j))
			}
			out[j] = v
			placed[j] = true
		}
		return FromSlice(out)
	})
}

// Group is one key's elements, in source order.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy yields one Group per distinct key, ordered by the key's first
// occurrence in the source. Elements within a group keep source order.
func GroupBy[T any, K comparable](source Seq[T], key func(T) K) Seq[Group[K, T]] {
	if source == nil {
		panic("seq.GroupBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.GroupBy: key cannot be nil")
	}
	return Delay(func() Seq[Group[K, T]] {
		var order []K
		buckets := make(map[K][]T)
		err := each(source, func(_ *Signal, v T) bool {
			k := key(v)
			if _, ok := buckets[k]; !ok {
				order = append(order, k)
			}
			buckets[k] = append(buckets[k], v)
			return true
		})
		if err != nil {
			return errorSeq[Group[K, T]](err)
		}
		groups := make([]Group[K, T], len(order))
		for i, k := range order {
			groups[i] = Group[K, T]{Key: k, Items: buckets[k]}
		}
		return FromSlice(groups)
	})
}

// CountBy yields one (key, count) pair per distinct key, ordered by the
// key's first occurrence in the source.
func CountBy[T any, K comparable](source Seq[T], key func(T) K) Seq[Pair[K, int]] {
	if source == nil {
		panic("seq.CountBy: source cannot be nil")
	}
	if key == nil {
		panic("seq.CountBy: key cannot be nil")
	}
	return Delay(func() Seq[Pair[K, int]] {
		var order []K
		counts := make(map[K]int)
		err := each(source, func(_ *Signal, v T) bool {
			k := key(v)
			if _, ok := counts[k]; !ok {
				order = append(order, k)
			}
			counts[k]++
			return true
		})
		if err != nil {
			return errorSeq[Pair[K, int]](err)
		}
		pairs := make([]Pair[K, int], len(order))
		for i, k := range order {
			pairs[i] = Pair[K, int]{First: k, Second: counts[k]}
		}
		return FromSlice(pairs)
	})
}

// SplitInto yields the elements divided into at most count chunks of as
// equal size as possible, earlier chunks taking the extra element. An empty
// source yields no chunks.
func SplitInto[T any](source Seq[T], count int) Seq[[]T] {
	if source == nil {
		panic("seq.SplitInto: source cannot be nil")
	}
	if count <= 0 {
		panic(fmt.Sprintf("seq.SplitInto: count must be positive, got %d", count))
	}
	return Delay(func() Seq[[]T] {
		items, err := ToSlice(source)
		if err != nil {
			return errorSeq[[]T](err)
		}
		if len(items) == 0 {
			return Empty[[]T]()
		}
		chunks := count
		if chunks > len(items) {
			chunks = len(items)
		}
		out := make([][]T, 0, chunks)
		base, extra := len(items)/chunks, len(items)%chunks
		pos := 0
		for i := 0; i < chunks; i++ {
			size := base
			if i < extra {
				size++
			}
			out = append(out, items[pos:pos+size:pos+size])
			pos += size
		}
		return FromSlice(out)
	})
}
