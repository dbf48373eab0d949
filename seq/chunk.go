package seq

import (
	"fmt"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// ChunkBySize yields the elements in consecutive slices of the given size,
// the final chunk holding whatever remains. Chunking is lazy: a chunk's
// elements are pulled only when that chunk is demanded, so the source may
// be infinite. Each chunk is a fresh slice. If the source fails, elements
// gathered after the last complete chunk are discarded rather than yielded
// as a short chunk; the failure surfaces through Err.
func ChunkBySize[T any](source Seq[T], size int) Seq[[]T] {
	if source == nil {
		panic("seq.ChunkBySize: source cannot be nil")
	}
	if size <= 0 {
		panic(fmt.Sprintf("seq.ChunkBySize: size must be positive, got %d", size))
	}
	return core.FromCursorFunc(func() Cursor[[]T] {
		return &chunkCursor[T]{inner: source.Cursor(), size: size}
	})
}

type chunkCursor[T any] struct {
	inner   Cursor[T]
	size    int
	current []T
	started bool
	// drained: the inner source is exhausted, no further chunk exists.
	// done: Next has reported false, the cursor is past its last chunk.
	drained bool
	done    bool
}

func (c *chunkCursor[T]) Next() bool {
	if c.done {
		return false
	}
	c.started = true
	if c.drained {
		c.done = true
		return false
	}
	chunk := make([]T, 0, c.size)
	for len(chunk) < c.size && c.inner.Next() {
		chunk = append(chunk, c.inner.Value())
	}
	if len(chunk) < c.size {
		c.drained = true
		if c.inner.Err() != nil {
			c.done = true
			return false
		}
	}
	if len(chunk) == 0 {
		c.done = true
		return false
	}
	c.current = chunk
	return true
}

func (c *chunkCursor[T]) Value() []T {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *chunkCursor[T]) Err() error   { return c.inner.Err() }
func (c *chunkCursor[T]) Close() error { return c.inner.Close() }
