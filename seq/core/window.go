package core

// Pair is an ordered pair, produced by the pairwise stage and the zip
// operations.
type Pair[A, B any] struct {
	First  A
	Second B
}

// --- pairwise ---

type pairwiseFactory[T any] struct{}

// PairwiseStage forwards (previous, current) pairs once at least two
// elements have been seen.
func PairwiseStage[T any]() Factory[T, Pair[T, T]] { return pairwiseFactory[T]{} }

func (pairwiseFactory[T]) Create(_ *Signal, next Consumer[Pair[T, T]]) Consumer[T] {
	return &pairwiseConsumer[T]{chained: link(next), next: next}
}

type pairwiseConsumer[T any] struct {
	chained
	prev T
	seen bool
	next Consumer[Pair[T, T]]
}

func (p *pairwiseConsumer[T]) ProcessNext(v T) bool {
	if !p.seen {
		p.seen = true
		p.prev = v
		return false
	}
	pair := Pair[T, T]{First: p.prev, Second: v}
	p.prev = v
	return p.next.ProcessNext(pair)
}

func (p *pairwiseConsumer[T]) ChainComplete() { p.forwardComplete() }
func (p *pairwiseConsumer[T]) ChainDispose()  { p.forwardDispose(nil) }

// --- windowed ---

type windowedFactory[T any] struct{ size int }

// WindowedStage forwards sliding windows of the given size, advancing one
// element at a time. Each forwarded window is a fresh slice.
func WindowedStage[T any](size int) Factory[T, []T] { return windowedFactory[T]{size: size} }

func (w windowedFactory[T]) Create(_ *Signal, next Consumer[[]T]) Consumer[T] {
	return &windowedConsumer[T]{chained: link(next), ring: make([]T, w.size), next: next}
}

type windowedConsumer[T any] struct {
	chained
	ring  []T
	at    int
	count int
	next  Consumer[[]T]
}

func (w *windowedConsumer[T]) ProcessNext(v T) bool {
	w.ring[w.at] = v
	w.at = (w.at + 1) % len(w.ring)
	if w.count < len(w.ring) {
		w.count++
	}
	if w.count < len(w.ring) {
		return false
	}
	window := make([]T, len(w.ring))
	for i := range window {
		window[i] = w.ring[(w.at+i)%len(w.ring)]
	}
	return w.next.ProcessNext(window)
}

func (w *windowedConsumer[T]) ChainComplete() { w.forwardComplete() }
func (w *windowedConsumer[T]) ChainDispose()  { w.forwardDispose(nil) }
