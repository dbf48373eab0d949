package core

import (
	"github.com/lguimbarda/lazyseq/seq/conslist"
)

// knownEmpty marks sequences that are statically known to produce nothing.
// Concatenation skips them without acquiring a cursor.
type knownEmpty interface {
	seqKnownEmpty()
}

// baseStepper carries the state every driver loop shares.
type baseStepper[T any] struct {
	sig  *Signal
	head Consumer[T]
}

func (b *baseStepper[T]) chain() Activity { return b.head }
func (b *baseStepper[T]) release() error  { return nil }

// --- slice source ---

type sliceSeq[T any] struct{ items []T }

// FromSlice wraps a slice as a sequence without copying it.
func FromSlice[T any](items []T) Seq[T] { return sliceSeq[T]{items: items} }

func (s sliceSeq[T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s sliceSeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return &sliceStepper[T]{baseStepper: baseStepper[T]{sig: sig, head: head}, items: s.items}
}

type sliceStepper[T any] struct {
	baseStepper[T]
	items []T
	idx   int
}

func (s *sliceStepper[T]) step() bool {
	for s.idx < len(s.items) && !s.sig.Halted() {
		v := s.items[s.idx]
		s.idx++
		if s.head.ProcessNext(v) {
			return true
		}
	}
	return false
}

func (s *sliceStepper[T]) run() {
	for s.idx < len(s.items) && !s.sig.Halted() {
		s.head.ProcessNext(s.items[s.idx])
		s.idx++
	}
}

// --- cons list source ---

type listSeq[T any] struct{ list *conslist.List[T] }

// FromList wraps an immutable cons list as a sequence. The driver walks the
// cells directly.
func FromList[T any](list *conslist.List[T]) Seq[T] { return listSeq[T]{list: list} }

func (s listSeq[T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s listSeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return &listStepper[T]{baseStepper: baseStepper[T]{sig: sig, head: head}, cell: s.list}
}

type listStepper[T any] struct {
	baseStepper[T]
	cell *conslist.List[T]
}

func (s *listStepper[T]) step() bool {
	for !s.cell.IsEmpty() && !s.sig.Halted() {
		v := s.cell.Head()
		s.cell = s.cell.Tail()
		if s.head.ProcessNext(v) {
			return true
		}
	}
	return false
}

func (s *listStepper[T]) run() {
	for !s.cell.IsEmpty() && !s.sig.Halted() {
		v := s.cell.Head()
		s.cell = s.cell.Tail()
		s.head.ProcessNext(v)
	}
}

// --- indexed generation source ---

type initSeq[T any] struct {
	count int // negative means unbounded
	gen   func(int) T
}

// Init generates count elements by index. The generator runs lazily, once
// per demanded element.
func Init[T any](count int, gen func(int) T) Seq[T] {
	return initSeq[T]{count: count, gen: gen}
}

// InitInfinite generates an unbounded sequence by index.
func InitInfinite[T any](gen func(int) T) Seq[T] {
	return initSeq[T]{count: -1, gen: gen}
}

func (s initSeq[T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s initSeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	st := &initStepper[T]{baseStepper: baseStepper[T]{sig: sig, head: head}, count: s.count, gen: s.gen}
	// When the chain is still in a lead-in skip phase the generator must not
	// run for skipped indexes.
	st.skipper, _ = head.(Skipper)
	return st
}

type initStepper[T any] struct {
	baseStepper[T]
	count   int
	gen     func(int) T
	idx     int
	skipper Skipper
}

func (s *initStepper[T]) inRange() bool { return s.count < 0 || s.idx < s.count }

func (s *initStepper[T]) step() bool {
	for s.inRange() && !s.sig.Halted() {
		if s.skipper != nil && s.skipper.Skipping() {
			s.idx++
			continue
		}
		v := s.gen(s.idx)
		s.idx++
		if s.head.ProcessNext(v) {
			return true
		}
	}
	return false
}

func (s *initStepper[T]) run() {
	for s.inRange() && !s.sig.Halted() {
		if s.skipper != nil && s.skipper.Skipping() {
			s.idx++
			continue
		}
		v := s.gen(s.idx)
		s.idx++
		s.head.ProcessNext(v)
	}
}

// --- unfold generator source ---

type unfoldSeq[S, T any] struct {
	seed S
	gen  func(S) (T, S, bool)
}

// Unfold generates a sequence from a seed state. gen returns the next
// element, the next state, and whether the sequence continues.
func Unfold[S, T any](seed S, gen func(S) (T, S, bool)) Seq[T] {
	return unfoldSeq[S, T]{seed: seed, gen: gen}
}

func (s unfoldSeq[S, T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s unfoldSeq[S, T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return &unfoldStepper[S, T]{baseStepper: baseStepper[T]{sig: sig, head: head}, state: s.seed, gen: s.gen}
}

type unfoldStepper[S, T any] struct {
	baseStepper[T]
	state S
	gen   func(S) (T, S, bool)
	done  bool
}

func (s *unfoldStepper[S, T]) step() bool {
	for !s.done && !s.sig.Halted() {
		v, next, ok := s.gen(s.state)
		if !ok {
			s.done = true
			return false
		}
		s.state = next
		if s.head.ProcessNext(v) {
			return true
		}
	}
	return false
}

func (s *unfoldStepper[S, T]) run() {
	for !s.done && !s.sig.Halted() {
		v, next, ok := s.gen(s.state)
		if !ok {
			s.done = true
			return
		}
		s.state = next
		s.head.ProcessNext(v)
	}
}

// --- arbitrary pull source ---

type cursorSeq[T any] struct {
	open func() Cursor[T]
}

// FromCursorFunc wraps a cursor-producing function as a restartable
// sequence: every execution calls open for a fresh cursor. This is the
// adapter for external pull-based resources (database rows, file readers).
func FromCursorFunc[T any](open func() Cursor[T]) Seq[T] {
	return cursorSeq[T]{open: open}
}

func (s cursorSeq[T]) Cursor() Cursor[T] { return s.open() }

// cursorStepper walks any sequence through its public cursor. It is the
// fallback driver for sequences outside the fused engine and the driver for
// FromCursorFunc sources.
type cursorStepper[T any] struct {
	sig      *Signal
	head     Consumer[T]
	src      Seq[T]
	cur      Cursor[T]
	released bool
}

func (c *cursorStepper[T]) chain() Activity { return c.head }

func (c *cursorStepper[T]) ensure() {
	if c.cur == nil {
		c.cur = c.src.Cursor()
	}
}

func (c *cursorStepper[T]) step() bool {
	c.ensure()
	for !c.sig.Halted() && c.cur.Next() {
		if c.head.ProcessNext(c.cur.Value()) {
			return true
		}
	}
	if err := c.cur.Err(); err != nil {
		c.sig.Fail(err)
	}
	return false
}

func (c *cursorStepper[T]) run() {
	c.ensure()
	for !c.sig.Halted() && c.cur.Next() {
		c.head.ProcessNext(c.cur.Value())
	}
	if err := c.cur.Err(); err != nil {
		c.sig.Fail(err)
	}
}

func (c *cursorStepper[T]) release() error {
	if c.released || c.cur == nil {
		c.released = true
		return nil
	}
	c.released = true
	return c.cur.Close()
}

// --- delayed source ---

type delaySeq[T any] struct {
	build func() Seq[T]
}

// Delay defers building the underlying sequence until each execution
// starts.
func Delay[T any](build func() Seq[T]) Seq[T] { return delaySeq[T]{build: build} }

func (s delaySeq[T]) Cursor() Cursor[T] { return s.build().Cursor() }

func (s delaySeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return stepperOf(s.build(), sig, head)
}

// --- empty source ---

type emptySeq[T any] struct{}

// Empty returns the sequence with no elements.
func Empty[T any]() Seq[T] { return emptySeq[T]{} }

func (emptySeq[T]) seqKnownEmpty() {}
func (s emptySeq[T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s emptySeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return &emptyStepper[T]{baseStepper[T]{sig: sig, head: head}}
}

type emptyStepper[T any] struct{ baseStepper[T] }

func (s *emptyStepper[T]) step() bool { return false }
func (s *emptyStepper[T]) run()       {}

// --- concatenation source ---

type concatSeq[T any] struct {
	sources []Seq[T]
}

// Concat yields all elements of each source in order. Each constituent is
// enumerated through its own cursor, so its completion and disposal stay
// its own business; concatenation only feeds the outer chain.
func Concat[T any](sources ...Seq[T]) Seq[T] {
	return &concatSeq[T]{sources: sources}
}

// Append yields first's elements and then second's. Appending to an
// already-concatenated sequence extends the same flat list rather than
// nesting, keeping traversal and disposal linear in the number of sources.
func Append[T any](first, second Seq[T]) Seq[T] {
	out := make([]Seq[T], 0, 2)
	if c, ok := first.(*concatSeq[T]); ok {
		out = append(out, c.sources...)
	} else {
		out = append(out, first)
	}
	if c, ok := second.(*concatSeq[T]); ok {
		out = append(out, c.sources...)
	} else {
		out = append(out, second)
	}
	return &concatSeq[T]{sources: out}
}

func (s *concatSeq[T]) Cursor() Cursor[T] { return newCursor[T](s) }

func (s *concatSeq[T]) stepper(sig *Signal, head Consumer[T]) stepper {
	return &concatStepper[T]{sig: sig, head: head, sources: s.sources}
}

type concatStepper[T any] struct {
	sig      *Signal
	head     Consumer[T]
	sources  []Seq[T]
	idx      int
	cur      Cursor[T]
	released bool
}

func (c *concatStepper[T]) chain() Activity { return c.head }

// advance moves to the next source that is not known to be empty. Known
// empty sources are skipped without requesting a cursor.
func (c *concatStepper[T]) advance() bool {
	for c.idx < len(c.sources) {
		src := c.sources[c.idx]
		c.idx++
		if _, empty := src.(knownEmpty); empty {
			continue
		}
		c.cur = src.Cursor()
		return true
	}
	return false
}

func (c *concatStepper[T]) closeCurrent() {
	if err := c.cur.Err(); err != nil {
		c.sig.Fail(err)
	}
	if err := c.cur.Close(); err != nil {
		c.sig.Fail(err)
	}
	c.cur = nil
}

func (c *concatStepper[T]) step() bool {
	for !c.sig.Halted() {
		if c.cur == nil && !c.advance() {
			return false
		}
		for !c.sig.Halted() && c.cur.Next() {
			if c.head.ProcessNext(c.cur.Value()) {
				return true
			}
		}
		if c.sig.Halted() {
			return false
		}
		c.closeCurrent()
	}
	return false
}

func (c *concatStepper[T]) run() {
	for !c.sig.Halted() {
		if c.cur == nil && !c.advance() {
			return
		}
		for !c.sig.Halted() && c.cur.Next() {
			c.head.ProcessNext(c.cur.Value())
		}
		if c.sig.Halted() {
			return
		}
		c.closeCurrent()
	}
}

func (c *concatStepper[T]) release() error {
	if c.released {
		return nil
	}
	c.released = true
	if c.cur == nil {
		return nil
	}
	return c.cur.Close()
}
