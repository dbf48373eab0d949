package seq

import (
	"github.com/lguimbarda/lazyseq/seq/cache"
)

// Cache wraps source so that repeated and concurrent enumerations share one
// pass over it: elements already pulled are replayed from memory, and only
// the reader furthest ahead pulls new ones. The returned handle is itself a
// Seq; call its Clear method to release the underlying cursor and poison
// the cache.
func Cache[T any](source Seq[T]) *cache.Cached[T] {
	if source == nil {
		panic("seq.Cache: source cannot be nil")
	}
	return cache.New(source)
}
