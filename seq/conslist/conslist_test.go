package conslist_test

import (
	"testing"

	"github.com/lguimbarda/lazyseq/seq/conslist"
)

func TestEmptyList(t *testing.T) {
	l := conslist.Empty[int]()
	if !l.IsEmpty() {
		t.Fatal("Empty should be empty")
	}
	if l.Len() != 0 {
		t.Fatalf("expected length 0, got %d", l.Len())
	}
	if got := l.ToSlice(); len(got) != 0 {
		t.Fatalf("expected no elements, got %v", got)
	}
}

func TestNewPreservesOrder(t *testing.T) {
	l := conslist.New("a", "b", "c")
	got := l.ToSlice()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestConsSharesTail(t *testing.T) {
	tail := conslist.New(2, 3)
	l := conslist.Cons(1, tail)

	if l.Head() != 1 {
		t.Fatalf("expected head 1, got %d", l.Head())
	}
	if l.Tail() != tail {
		t.Fatal("Cons must share the tail, not copy it")
	}
	// The original is untouched.
	if tail.Len() != 2 || tail.Head() != 2 {
		t.Fatal("tail was modified by Cons")
	}
}

func TestHeadOfEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	conslist.Empty[int]().Head()
}

func TestEachVisitsInOrder(t *testing.T) {
	var visited []int
	conslist.New(1, 2, 3).Each(func(v int) { visited = append(visited, v) })
	if len(visited) != 3 || visited[0] != 1 || visited[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", visited)
	}
}

func TestReverse(t *testing.T) {
	got := conslist.New(1, 2, 3).Reverse().ToSlice()
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
