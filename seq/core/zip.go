package core

// Multi-source stages drive their secondary sources through internally
// owned cursors advanced in lockstep with the primary. When a secondary
// source exhausts first, the stage stops the execution. Disposal closes the
// secondary cursors as part of the stage's own disposal hook, before
// forwarding along the chain.

// --- map2 ---

type map2Factory[T, U, V any] struct {
	second Seq[U]
	fn     func(T, U) V
}

// Map2Stage combines the pipeline's elements with a second sequence,
// pairing elements positionally.
func Map2Stage[T, U, V any](second Seq[U], fn func(T, U) V) Factory[T, V] {
	return map2Factory[T, U, V]{second: second, fn: fn}
}

func (m map2Factory[T, U, V]) Create(sig *Signal, next Consumer[V]) Consumer[T] {
	return &map2Consumer[T, U, V]{
		chained: link(next),
		sig:     sig,
		fn:      m.fn,
		second:  m.second.Cursor(),
		next:    next,
	}
}

type map2Consumer[T, U, V any] struct {
	chained
	sig    *Signal
	fn     func(T, U) V
	second Cursor[U]
	next   Consumer[V]
}

func (m *map2Consumer[T, U, V]) ProcessNext(v T) bool {
	if !m.second.Next() {
		if err := m.second.Err(); err != nil {
			m.sig.Fail(err)
		}
		m.sig.StopFurtherProcessing()
		return false
	}
	return m.next.ProcessNext(m.fn(v, m.second.Value()))
}

func (m *map2Consumer[T, U, V]) ChainComplete() { m.forwardComplete() }

func (m *map2Consumer[T, U, V]) ChainDispose() {
	m.forwardDispose(func() {
		if err := m.second.Close(); err != nil {
			m.sig.Fail(err)
		}
	})
}

// --- map3 ---

type map3Factory[T, U, V, W any] struct {
	second Seq[U]
	third  Seq[V]
	fn     func(T, U, V) W
}

// Map3Stage combines the pipeline's elements with two further sequences
// positionally.
func Map3Stage[T, U, V, W any](second Seq[U], third Seq[V], fn func(T, U, V) W) Factory[T, W] {
	return map3Factory[T, U, V, W]{second: second, third: third, fn: fn}
}

func (m map3Factory[T, U, V, W]) Create(sig *Signal, next Consumer[W]) Consumer[T] {
	return &map3Consumer[T, U, V, W]{
		chained: link(next),
		sig:     sig,
		fn:      m.fn,
		second:  m.second.Cursor(),
		third:   m.third.Cursor(),
		next:    next,
	}
}

type map3Consumer[T, U, V, W any] struct {
	chained
	sig    *Signal
	fn     func(T, U, V) W
	second Cursor[U]
	third  Cursor[V]
	next   Consumer[W]
}

func (m *map3Consumer[T, U, V, W]) ProcessNext(v T) bool {
	if !m.second.Next() {
		if err := m.second.Err(); err != nil {
			m.sig.Fail(err)
		}
		m.sig.StopFurtherProcessing()
		return false
	}
	if !m.third.Next() {
		if err := m.third.Err(); err != nil {
			m.sig.Fail(err)
		}
		m.sig.StopFurtherProcessing()
		return false
	}
	return m.next.ProcessNext(m.fn(v, m.second.Value(), m.third.Value()))
}

func (m *map3Consumer[T, U, V, W]) ChainComplete() { m.forwardComplete() }

func (m *map3Consumer[T, U, V, W]) ChainDispose() {
	m.forwardDispose(func() {
		// Close both secondaries even if the first Close panics.
		defer func() {
			if err := m.third.Close(); err != nil {
				m.sig.Fail(err)
			}
		}()
		if err := m.second.Close(); err != nil {
			m.sig.Fail(err)
		}
	})
}

// --- mapi2 ---

type mapi2Factory[T, U, V any] struct {
	second Seq[U]
	fn     func(int, T, U) V
}

// Mapi2Stage is Map2Stage with the pair's zero-based position.
func Mapi2Stage[T, U, V any](second Seq[U], fn func(int, T, U) V) Factory[T, V] {
	return mapi2Factory[T, U, V]{second: second, fn: fn}
}

func (m mapi2Factory[T, U, V]) Create(sig *Signal, next Consumer[V]) Consumer[T] {
	return &mapi2Consumer[T, U, V]{
		chained: link(next),
		sig:     sig,
		fn:      m.fn,
		second:  m.second.Cursor(),
		next:    next,
	}
}

type mapi2Consumer[T, U, V any] struct {
	chained
	sig    *Signal
	fn     func(int, T, U) V
	second Cursor[U]
	idx    int
	next   Consumer[V]
}

func (m *mapi2Consumer[T, U, V]) ProcessNext(v T) bool {
	if !m.second.Next() {
		if err := m.second.Err(); err != nil {
			m.sig.Fail(err)
		}
		m.sig.StopFurtherProcessing()
		return false
	}
	idx := m.idx
	m.idx++
	return m.next.ProcessNext(m.fn(idx, v, m.second.Value()))
}

func (m *mapi2Consumer[T, U, V]) ChainComplete() { m.forwardComplete() }

func (m *mapi2Consumer[T, U, V]) ChainDispose() {
	m.forwardDispose(func() {
		if err := m.second.Close(); err != nil {
			m.sig.Fail(err)
		}
	})
}
