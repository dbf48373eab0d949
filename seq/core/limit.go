package core

import (
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// --- skip ---

type skipFactory[T any] struct{ count int }

// SkipStage drops the first count elements. If the source completes before
// count elements arrived, the execution fails with a shortfall error at
// completion time; code that never drains the result never observes it.
func SkipStage[T any](count int) Factory[T, T] { return skipFactory[T]{count: count} }

func (s skipFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	return &skipConsumer[T]{chained: link(next), sig: sig, count: s.count, remaining: s.count, next: next}
}

type skipConsumer[T any] struct {
	chained
	sig       *Signal
	count     int
	remaining int
	next      Consumer[T]
}

func (s *skipConsumer[T]) ProcessNext(v T) bool {
	if s.remaining > 0 {
		s.remaining--
		return false
	}
	return s.next.ProcessNext(v)
}

// Skipping consumes one unit of the skip allowance when still in the
// lead-in phase, so index-generation sources can advance without
// materializing the element.
func (s *skipConsumer[T]) Skipping() bool {
	if s.remaining > 0 {
		s.remaining--
		return true
	}
	return false
}

// ChainComplete reports the shortfall only on natural exhaustion. A halted
// execution stopped demanding elements on purpose, so an unfinished lead-in
// is not a failure.
func (s *skipConsumer[T]) ChainComplete() {
	if s.remaining > 0 && !s.sig.Halted() {
		s.sig.Fail(&seqerrors.ShortfallError{Op: "Skip", Needed: s.count, Got: s.count - s.remaining})
	}
	s.forwardComplete()
}

func (s *skipConsumer[T]) ChainDispose() { s.forwardDispose(nil) }

// --- skipWhile ---

type skipWhileFactory[T any] struct{ pred func(T) bool }

// SkipWhileStage drops elements while pred holds; once pred is false every
// later element is forwarded without testing.
func SkipWhileStage[T any](pred func(T) bool) Factory[T, T] {
	return skipWhileFactory[T]{pred: pred}
}

func (s skipWhileFactory[T]) Create(_ *Signal, next Consumer[T]) Consumer[T] {
	return &skipWhileConsumer[T]{chained: link(next), pred: s.pred, dropping: true, next: next}
}

type skipWhileConsumer[T any] struct {
	chained
	pred     func(T) bool
	dropping bool
	next     Consumer[T]
}

func (s *skipWhileConsumer[T]) ProcessNext(v T) bool {
	if s.dropping {
		if s.pred(v) {
			return false
		}
		s.dropping = false
	}
	return s.next.ProcessNext(v)
}

func (s *skipWhileConsumer[T]) ChainComplete() { s.forwardComplete() }
func (s *skipWhileConsumer[T]) ChainDispose()  { s.forwardDispose(nil) }

// --- take ---

type takeFactory[T any] struct{ count int }

// TakeStage forwards the first count elements and then stops the
// execution, never pulling element count+1. A source shorter than count
// fails with a shortfall error at completion, after yielding everything it
// had.
func TakeStage[T any](count int) Factory[T, T] { return takeFactory[T]{count: count} }

func (t takeFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	if t.count == 0 {
		sig.StopFurtherProcessing()
	}
	return &takeConsumer[T]{chained: link(next), sig: sig, count: t.count, next: next}
}

type takeConsumer[T any] struct {
	chained
	sig   *Signal
	count int
	taken int
	next  Consumer[T]
}

func (t *takeConsumer[T]) ProcessNext(v T) bool {
	if t.taken < t.count {
		t.taken++
		if t.taken == t.count {
			t.sig.StopFurtherProcessing()
		}
		return t.next.ProcessNext(v)
	}
	t.sig.StopFurtherProcessing()
	return false
}

func (t *takeConsumer[T]) ChainComplete() {
	if t.taken < t.count && !t.sig.Halted() {
		t.sig.Fail(&seqerrors.ShortfallError{Op: "Take", Needed: t.count, Got: t.taken})
	}
	t.forwardComplete()
}

func (t *takeConsumer[T]) ChainDispose() { t.forwardDispose(nil) }

// --- truncate ---

type truncateFactory[T any] struct{ count int }

// TruncateStage forwards at most count elements, silently accepting
// shorter input.
func TruncateStage[T any](count int) Factory[T, T] { return truncateFactory[T]{count: count} }

func (t truncateFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	if t.count == 0 {
		sig.StopFurtherProcessing()
	}
	return &truncateConsumer[T]{chained: link(next), sig: sig, count: t.count, next: next}
}

type truncateConsumer[T any] struct {
	chained
	sig   *Signal
	count int
	taken int
	next  Consumer[T]
}

func (t *truncateConsumer[T]) ProcessNext(v T) bool {
	if t.taken < t.count {
		t.taken++
		if t.taken == t.count {
			t.sig.StopFurtherProcessing()
		}
		return t.next.ProcessNext(v)
	}
	t.sig.StopFurtherProcessing()
	return false
}

func (t *truncateConsumer[T]) ChainComplete() { t.forwardComplete() }
func (t *truncateConsumer[T]) ChainDispose()  { t.forwardDispose(nil) }

// --- takeWhile ---

type takeWhileFactory[T any] struct{ pred func(T) bool }

// TakeWhileStage forwards elements while pred holds and stops the
// execution on the first failure, without forwarding it.
func TakeWhileStage[T any](pred func(T) bool) Factory[T, T] {
	return takeWhileFactory[T]{pred: pred}
}

func (t takeWhileFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	return &takeWhileConsumer[T]{chained: link(next), sig: sig, pred: t.pred, next: next}
}

type takeWhileConsumer[T any] struct {
	chained
	sig  *Signal
	pred func(T) bool
	next Consumer[T]
}

func (t *takeWhileConsumer[T]) ProcessNext(v T) bool {
	if !t.pred(v) {
		t.sig.StopFurtherProcessing()
		return false
	}
	return t.next.ProcessNext(v)
}

func (t *takeWhileConsumer[T]) ChainComplete() { t.forwardComplete() }
func (t *takeWhileConsumer[T]) ChainDispose()  { t.forwardDispose(nil) }

// --- tail ---

type tailFactory[T any] struct{}

// TailStage drops exactly the first element and forwards the rest. An
// empty source fails at completion.
func TailStage[T any]() Factory[T, T] { return tailFactory[T]{} }

func (tailFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	return &tailConsumer[T]{chained: link(next), sig: sig, next: next}
}

type tailConsumer[T any] struct {
	chained
	sig  *Signal
	seen bool
	next Consumer[T]
}

func (t *tailConsumer[T]) ProcessNext(v T) bool {
	if !t.seen {
		t.seen = true
		return false
	}
	return t.next.ProcessNext(v)
}

func (t *tailConsumer[T]) ChainComplete() {
	if !t.seen && !t.sig.Halted() {
		t.sig.Fail(&seqerrors.ShortfallError{Op: "Tail", Needed: 1, Got: 0})
	}
	t.forwardComplete()
}

func (t *tailConsumer[T]) ChainDispose() { t.forwardDispose(nil) }
