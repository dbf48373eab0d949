// Package core implements the fused-pipeline execution engine behind the
// lazyseq public API. A pipeline is a physical source plus a chain of stage
// factories; executing it builds one consumer chain and drives it with a
// single loop over the source, so no intermediate buffering happens between
// stages.
//
// Most users should import the top-level seq package instead. The types here
// are exported for source adapters (seq/sql, seq/csv, seq/cache) and for
// callers that need to implement their own physical sources.
package core

import (
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// Seq is a lazily evaluated, possibly infinite, restartable sequence of
// values. Obtaining a fresh cursor re-runs the whole source from scratch
// unless the sequence is an explicit cache wrapper.
type Seq[T any] interface {
	// Cursor returns a fresh, independent cursor positioned before the
	// first element. The caller owns the cursor and must Close it.
	Cursor() Cursor[T]
}

// Cursor is an external iterator over a sequence, in the style of
// database/sql.Rows: advance with Next, read with Value, check Err after
// Next returns false, and always Close.
//
// Value panics if called before the first Next ("enumeration not started")
// or after Next returned false ("enumeration already finished"). Cursors
// never support reset; obtain a fresh cursor instead.
type Cursor[T any] interface {
	Next() bool
	Value() T
	Err() error
	Close() error
}

// pipeline is implemented by sequences that can host a fused consumer chain
// over their physical representation. Sequences outside the engine are
// driven through their public Cursor instead.
type pipeline[T any] interface {
	Seq[T]
	stepper(sig *Signal, head Consumer[T]) stepper
}

// stepper is the single-pass driver loop over one physical source shape.
// It pushes raw elements into the head of a consumer chain and honors the
// halted flag at every element boundary. Completion and disposal of the
// chain are the owning cursor's or drain's job, which lets concatenation
// reuse steppers for its constituent sources without firing the chain
// lifecycle early.
type stepper interface {
	// step advances the source until the chain forwards a value to the
	// terminal sink or the input is exhausted or halted. It reports whether
	// a value was produced. Consecutive drops are consumed by an iterative
	// loop, never by recursion.
	step() bool

	// run drives the source to exhaustion or halt in one call, for one-shot
	// push execution.
	run()

	// release frees the physical source resource. It is idempotent.
	release() error

	// chain returns the head of the consumer chain, the stage nearest the
	// raw source. Completion and disposal start there.
	chain() Activity
}

// stepperOf builds a driver for any sequence, falling back to walking the
// public cursor for sequences outside the fused engine.
func stepperOf[T any](s Seq[T], sig *Signal, head Consumer[T]) stepper {
	if p, ok := s.(pipeline[T]); ok {
		return p.stepper(sig, head)
	}
	return &cursorStepper[T]{sig: sig, head: head, src: s}
}

// tailFusible is implemented by transformed sequences. It absorbs a stage
// whose input and output types are both the sequence's element type,
// composing it into the existing factory instead of adding a layer.
type tailFusible[T any] interface {
	fuseTail(f Factory[T, T]) Seq[T]
}

// transformSeq is a sequence with a fused stage pipeline over an origin
// sequence. Nested transformSeq layers cost nothing per element: consumer
// chains are linked once, at execution setup, and a single physical loop
// drives the whole chain.
type transformSeq[T, U any] struct {
	src     Seq[T]
	factory Factory[T, U]
}

func (s *transformSeq[T, U]) Cursor() Cursor[U] {
	return newCursor[U](s)
}

func (s *transformSeq[T, U]) stepper(sig *Signal, head Consumer[U]) stepper {
	return stepperOf(s.src, sig, s.factory.Create(sig, head))
}

func (s *transformSeq[T, U]) fuseTail(f Factory[U, U]) Seq[U] {
	return &transformSeq[T, U]{src: s.src, factory: Compose(s.factory, f)}
}

// Transform applies a type-changing stage to a sequence.
func Transform[T, U any](src Seq[T], f Factory[T, U]) Seq[U] {
	return &transformSeq[T, U]{src: src, factory: f}
}

// TransformSame applies a stage that preserves the element type, fusing it
// into an existing pipeline's factory when the source carries one.
func TransformSame[T any](src Seq[T], f Factory[T, T]) Seq[T] {
	if IsIdentity(f) {
		return src
	}
	if tf, ok := src.(tailFusible[T]); ok {
		return tf.fuseTail(f)
	}
	return &transformSeq[T, T]{src: src, factory: f}
}

// cursorSink is the terminal consumer for cursor-mode execution. It holds
// the most recently forwarded value so the cursor can expose it.
type cursorSink[T any] struct {
	Sink
	current T
}

func (s *cursorSink[T]) ProcessNext(v T) bool {
	s.current = v
	return true
}

// newCursor wires a fresh execution for a pipeline sequence: new Signal,
// terminal sink, consumer chain, and driver.
func newCursor[T any](p pipeline[T]) Cursor[T] {
	sig := NewSignal()
	sink := &cursorSink[T]{}
	return &seqCursor[T]{sig: sig, sink: sink, st: p.stepper(sig, sink)}
}

// seqCursor drives a fused pipeline one element at a time. All source
// shapes share this cursor; the per-source part is the stepper.
type seqCursor[T any] struct {
	sig    *Signal
	sink   *cursorSink[T]
	st     stepper
	closed bool
}

func (c *seqCursor[T]) Next() bool {
	if c.closed || c.sig.Phase() == PhaseFinished {
		return false
	}
	c.sig.begin()
	if c.st.step() {
		return true
	}
	c.sig.finish()
	c.st.chain().ChainComplete()
	return false
}

func (c *seqCursor[T]) Value() T {
	switch {
	case c.closed, c.sig.Phase() == PhaseFinished:
		panic(seqerrors.MsgFinished)
	case c.sig.Phase() == PhaseNotStarted:
		panic(seqerrors.MsgNotStarted)
	}
	return c.sink.current
}

func (c *seqCursor[T]) Err() error { return c.sig.Err() }

// Close releases the physical source first, then runs the chain's disposal
// hooks head to sink. The chain disposal is deferred so it runs even if
// releasing the source panics.
func (c *seqCursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	defer c.st.chain().ChainDispose()
	return c.st.release()
}

// Drain executes a pipeline in one-shot push mode: every element of s (or
// the stopped prefix) is pushed into the consumer chain ending in sink,
// without allocating a cursor. Element sourcing, completion order and
// disposal order are identical to cursor mode. On return the physical
// source is released and then the chain disposed, on every exit path
// including panics. The returned error is the execution's recorded failure,
// or the source release error if the run itself was clean.
func Drain[T any](s Seq[T], sig *Signal, sink Consumer[T]) (err error) {
	st := stepperOf(s, sig, sink)
	defer func() {
		defer st.chain().ChainDispose()
		rerr := st.release()
		if err == nil {
			err = sig.Err()
		}
		if err == nil {
			err = rerr
		}
	}()
	sig.begin()
	st.run()
	sig.finish()
	st.chain().ChainComplete()
	return nil
}

// Run drives a sequence through a sink built by mk for a fresh execution.
// It is the engine's one-shot entry point for eager aggregates: mk receives
// the execution's Signal so completion hooks can record empty-input and
// shortfall failures on it.
func Run[T any](s Seq[T], mk func(sig *Signal) Consumer[T]) error {
	sig := NewSignal()
	return Drain(s, sig, mk(sig))
}
