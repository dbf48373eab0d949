package core

// --- filter ---

type filterFactory[T any] struct{ pred func(T) bool }

// FilterStage keeps elements satisfying pred.
func FilterStage[T any](pred func(T) bool) Factory[T, T] {
	return filterFactory[T]{pred: pred}
}

func (f filterFactory[T]) Create(_ *Signal, next Consumer[T]) Consumer[T] {
	// Two adjacent filters collapse into one consumer with a short-circuit
	// conjunction, preserving predicate call counts and order.
	if fc, ok := next.(*filterConsumer[T]); ok {
		first, second := f.pred, fc.pred
		return &filterConsumer[T]{
			chained: link(fc.next),
			pred:    func(v T) bool { return first(v) && second(v) },
			next:    fc.next,
		}
	}
	// A downstream map absorbs the filter into a filter-then-map consumer.
	if ff, ok := next.(filterFusible[T]); ok {
		return ff.fuseFilter(f.pred)
	}
	return &filterConsumer[T]{chained: link(next), pred: f.pred, next: next}
}

type filterConsumer[T any] struct {
	chained
	pred func(T) bool
	next Consumer[T]
}

func (f *filterConsumer[T]) ProcessNext(v T) bool {
	if f.pred(v) {
		return f.next.ProcessNext(v)
	}
	return false
}

func (f *filterConsumer[T]) ChainComplete() { f.forwardComplete() }
func (f *filterConsumer[T]) ChainDispose()  { f.forwardDispose(nil) }

// --- distinct ---

type distinctFactory[T comparable] struct{}

// DistinctStage forwards each equal value at most once. The seen set is
// per execution.
func DistinctStage[T comparable]() Factory[T, T] { return distinctFactory[T]{} }

func (distinctFactory[T]) Create(_ *Signal, next Consumer[T]) Consumer[T] {
	return &distinctConsumer[T]{chained: link(next), seen: make(map[T]struct{}), next: next}
}

type distinctConsumer[T comparable] struct {
	chained
	seen map[T]struct{}
	next Consumer[T]
}

func (d *distinctConsumer[T]) ProcessNext(v T) bool {
	if _, dup := d.seen[v]; dup {
		return false
	}
	d.seen[v] = struct{}{}
	return d.next.ProcessNext(v)
}

func (d *distinctConsumer[T]) ChainComplete() { d.forwardComplete() }
func (d *distinctConsumer[T]) ChainDispose()  { d.forwardDispose(nil) }

// --- distinctBy ---

type distinctByFactory[T any, K comparable] struct{ key func(T) K }

// DistinctByStage forwards the first element observed for each key.
func DistinctByStage[T any, K comparable](key func(T) K) Factory[T, T] {
	return distinctByFactory[T, K]{key: key}
}

func (d distinctByFactory[T, K]) Create(_ *Signal, next Consumer[T]) Consumer[T] {
	return &distinctByConsumer[T, K]{chained: link(next), key: d.key, seen: make(map[K]struct{}), next: next}
}

type distinctByConsumer[T any, K comparable] struct {
	chained
	key  func(T) K
	seen map[K]struct{}
	next Consumer[T]
}

func (d *distinctByConsumer[T, K]) ProcessNext(v T) bool {
	k := d.key(v)
	if _, dup := d.seen[k]; dup {
		return false
	}
	d.seen[k] = struct{}{}
	return d.next.ProcessNext(v)
}

func (d *distinctByConsumer[T, K]) ChainComplete() { d.forwardComplete() }
func (d *distinctByConsumer[T, K]) ChainDispose()  { d.forwardDispose(nil) }

// --- except ---

type exceptFactory[T comparable] struct{ excluded Seq[T] }

// ExceptStage drops elements present in excluded. The exclusion set is
// built lazily, on the first element of each execution.
func ExceptStage[T comparable](excluded Seq[T]) Factory[T, T] {
	return exceptFactory[T]{excluded: excluded}
}

func (e exceptFactory[T]) Create(sig *Signal, next Consumer[T]) Consumer[T] {
	return &exceptConsumer[T]{chained: link(next), sig: sig, excluded: e.excluded, next: next}
}

type exceptConsumer[T comparable] struct {
	chained
	sig      *Signal
	excluded Seq[T]
	set      map[T]struct{}
	next     Consumer[T]
}

func (e *exceptConsumer[T]) ProcessNext(v T) bool {
	if e.set == nil {
		e.set = make(map[T]struct{})
		cur := e.excluded.Cursor()
		for cur.Next() {
			e.set[cur.Value()] = struct{}{}
		}
		if err := cur.Err(); err != nil {
			e.sig.Fail(err)
		}
		if err := cur.Close(); err != nil {
			e.sig.Fail(err)
		}
	}
	if _, drop := e.set[v]; drop {
		return false
	}
	return e.next.ProcessNext(v)
}

func (e *exceptConsumer[T]) ChainComplete() { e.forwardComplete() }
func (e *exceptConsumer[T]) ChainDispose()  { e.forwardDispose(nil) }
