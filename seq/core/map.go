package core

// filterFusible lets a consumer absorb an immediately preceding filter
// stage. This is the explicit capability query used instead of reflection:
// consumers that cannot fuse simply do not implement it and pay one extra
// ProcessNext hop. Fusion never changes observable results or how many
// times user functions run.
type filterFusible[T any] interface {
	fuseFilter(pred func(T) bool) Consumer[T]
}

// --- map ---

type mapFactory[T, U any] struct{ fn func(T) U }

// MapStage transforms each element with fn.
func MapStage[T, U any](fn func(T) U) Factory[T, U] { return mapFactory[T, U]{fn: fn} }

func (m mapFactory[T, U]) Create(_ *Signal, next Consumer[U]) Consumer[T] {
	// A downstream filter collapses into one map-then-filter consumer: the
	// predicate runs on the mapped value without an intermediate hop.
	if fc, ok := next.(*filterConsumer[U]); ok {
		return &mapThenFilterConsumer[T, U]{chained: link(fc.next), fn: m.fn, pred: fc.pred, next: fc.next}
	}
	return &mapConsumer[T, U]{chained: link(next), fn: m.fn, next: next}
}

type mapConsumer[T, U any] struct {
	chained
	fn   func(T) U
	next Consumer[U]
}

func (m *mapConsumer[T, U]) ProcessNext(v T) bool { return m.next.ProcessNext(m.fn(v)) }
func (m *mapConsumer[T, U]) ChainComplete()       { m.forwardComplete() }
func (m *mapConsumer[T, U]) ChainDispose()        { m.forwardDispose(nil) }

func (m *mapConsumer[T, U]) fuseFilter(pred func(T) bool) Consumer[T] {
	return &filterThenMapConsumer[T, U]{chained: link(m.next), pred: pred, fn: m.fn, next: m.next}
}

// mapThenFilterConsumer is the fusion of map immediately followed by
// filter.
type mapThenFilterConsumer[T, U any] struct {
	chained
	fn   func(T) U
	pred func(U) bool
	next Consumer[U]
}

func (m *mapThenFilterConsumer[T, U]) ProcessNext(v T) bool {
	mapped := m.fn(v)
	if m.pred(mapped) {
		return m.next.ProcessNext(mapped)
	}
	return false
}

func (m *mapThenFilterConsumer[T, U]) ChainComplete() { m.forwardComplete() }
func (m *mapThenFilterConsumer[T, U]) ChainDispose()  { m.forwardDispose(nil) }

// filterThenMapConsumer is the fusion of filter immediately followed by
// map.
type filterThenMapConsumer[T, U any] struct {
	chained
	pred func(T) bool
	fn   func(T) U
	next Consumer[U]
}

func (f *filterThenMapConsumer[T, U]) ProcessNext(v T) bool {
	if f.pred(v) {
		return f.next.ProcessNext(f.fn(v))
	}
	return false
}

func (f *filterThenMapConsumer[T, U]) ChainComplete() { f.forwardComplete() }
func (f *filterThenMapConsumer[T, U]) ChainDispose()  { f.forwardDispose(nil) }

// --- indexed map ---

type mapiFactory[T, U any] struct{ fn func(int, T) U }

// MapiStage transforms each element with its zero-based index.
func MapiStage[T, U any](fn func(int, T) U) Factory[T, U] {
	return mapiFactory[T, U]{fn: fn}
}

func (m mapiFactory[T, U]) Create(_ *Signal, next Consumer[U]) Consumer[T] {
	return &mapiConsumer[T, U]{chained: link(next), fn: m.fn, next: next}
}

type mapiConsumer[T, U any] struct {
	chained
	fn   func(int, T) U
	idx  int
	next Consumer[U]
}

func (m *mapiConsumer[T, U]) ProcessNext(v T) bool {
	idx := m.idx
	m.idx++
	return m.next.ProcessNext(m.fn(idx, v))
}

func (m *mapiConsumer[T, U]) ChainComplete() { m.forwardComplete() }
func (m *mapiConsumer[T, U]) ChainDispose()  { m.forwardDispose(nil) }

// --- choose ---

type chooseFactory[T, U any] struct{ fn func(T) (U, bool) }

// ChooseStage maps and filters in one step: elements for which fn reports
// false are dropped.
func ChooseStage[T, U any](fn func(T) (U, bool)) Factory[T, U] {
	return chooseFactory[T, U]{fn: fn}
}

func (c chooseFactory[T, U]) Create(_ *Signal, next Consumer[U]) Consumer[T] {
	return &chooseConsumer[T, U]{chained: link(next), fn: c.fn, next: next}
}

type chooseConsumer[T, U any] struct {
	chained
	fn   func(T) (U, bool)
	next Consumer[U]
}

func (c *chooseConsumer[T, U]) ProcessNext(v T) bool {
	if out, ok := c.fn(v); ok {
		return c.next.ProcessNext(out)
	}
	return false
}

func (c *chooseConsumer[T, U]) ChainComplete() { c.forwardComplete() }
func (c *chooseConsumer[T, U]) ChainDispose()  { c.forwardDispose(nil) }
