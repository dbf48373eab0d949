// Package conslist provides an immutable singly linked list with structural
// sharing. It is one of the physical source shapes the lazyseq engine can
// drive directly, walking cons cells without an intermediate slice.
package conslist

// List is an immutable cons list. The nil *List is the empty list and is
// safe to call methods on.
type List[T any] struct {
	head T
	tail *List[T]
}

// Empty returns the empty list.
func Empty[T any]() *List[T] { return nil }

// Cons prepends a value, sharing the tail.
func Cons[T any](value T, tail *List[T]) *List[T] {
	return &List[T]{head: value, tail: tail}
}

// New builds a list holding the given values in order.
func New[T any](values ...T) *List[T] {
	var l *List[T]
	for i := len(values) - 1; i >= 0; i-- {
		l = Cons(values[i], l)
	}
	return l
}

// FromSlice builds a list holding the slice elements in order.
func FromSlice[T any](values []T) *List[T] { return New(values...) }

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool { return l == nil }

// Head returns the first element. It panics on the empty list.
func (l *List[T]) Head() T {
	if l == nil {
		panic("conslist: Head of empty list")
	}
	return l.head
}

// Tail returns the list without its first element. It panics on the empty
// list.
func (l *List[T]) Tail() *List[T] {
	if l == nil {
		panic("conslist: Tail of empty list")
	}
	return l.tail
}

// Len walks the list and returns its length.
func (l *List[T]) Len() int {
	n := 0
	for cell := l; cell != nil; cell = cell.tail {
		n++
	}
	return n
}

// Each calls fn for every element in order.
func (l *List[T]) Each(fn func(T)) {
	for cell := l; cell != nil; cell = cell.tail {
		fn(cell.head)
	}
}

// ToSlice copies the list into a fresh slice.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.Len())
	for cell := l; cell != nil; cell = cell.tail {
		out = append(out, cell.head)
	}
	return out
}

// Reverse returns a new list with the elements in reverse order.
func (l *List[T]) Reverse() *List[T] {
	var out *List[T]
	for cell := l; cell != nil; cell = cell.tail {
		out = Cons(cell.head, out)
	}
	return out
}
