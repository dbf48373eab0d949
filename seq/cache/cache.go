// Package cache provides a sequence wrapper that remembers every element it
// has pulled, so repeated and concurrent enumerations share one pass over
// the underlying source.
//
// The wrapper extends its prefix on demand: a reader that walks past the
// cached prefix pulls exactly one more element from the shared underlying
// cursor. Across any number of readers the underlying source is pulled
// len(source)+1 times in total, the final pull being the one that observes
// exhaustion.
package cache

import (
	"sync"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

type state int

const (
	notStarted state = iota // underlying cursor not yet acquired
	running                 // underlying cursor live
	finished                // underlying source exhausted and closed
	cleared                 // Clear was called; the cache is poisoned
)

// Cached wraps a sequence with a shared, growable element cache. It is a
// core.Seq; readers obtained through Cursor are independent and safe to
// drive from different goroutines.
type Cached[T any] struct {
	mu     sync.Mutex
	source core.Seq[T]
	prefix []T
	inner  core.Cursor[T]
	st     state
	err    error
}

// New wraps source. Nothing is pulled until a reader demands an element.
func New[T any](source core.Seq[T]) *Cached[T] {
	if source == nil {
		panic("cache.New: source cannot be nil")
	}
	return &Cached[T]{source: source}
}

// Cursor returns an independent reader over the cached elements and, past
// them, the shared underlying cursor.
func (c *Cached[T]) Cursor() core.Cursor[T] {
	return &readCursor[T]{cache: c, idx: -1}
}

// Clear closes the shared underlying cursor, drops the cached prefix and
// poisons the cache: every subsequent read reports
// seqerrors.ErrCacheCleared. It returns the underlying cursor's close
// error, if any.
func (c *Cached[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	if c.st == running {
		err = c.inner.Close()
	}
	c.st = cleared
	c.inner = nil
	c.prefix = nil
	c.err = seqerrors.ErrCacheCleared
	return err
}

// fetch returns the element at index i, extending the shared prefix by at
// most one underlying pull. ok is false when the source ends before i or
// the cache has failed.
func (c *Cached[T]) fetch(i int) (v T, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < len(c.prefix) {
		return c.prefix[i], true, nil
	}
	switch c.st {
	case cleared:
		return v, false, c.err
	case finished:
		return v, false, c.err
	case notStarted:
		c.inner = c.source.Cursor()
		c.st = running
	}
	// Readers advance one index at a time, so reaching here means
	// i == len(prefix) and one pull decides it.
	if c.inner.Next() {
		v = c.inner.Value()
		c.prefix = append(c.prefix, v)
		return v, true, nil
	}
	c.err = c.inner.Err()
	if cerr := c.inner.Close(); cerr != nil && c.err == nil {
		c.err = cerr
	}
	c.inner = nil
	c.st = finished
	return v, false, c.err
}

type readCursor[T any] struct {
	cache   *Cached[T]
	idx     int
	current T
	err     error
	done    bool
}

func (r *readCursor[T]) Next() bool {
	if r.done {
		return false
	}
	v, ok, err := r.cache.fetch(r.idx + 1)
	if !ok {
		r.done = true
		r.err = err
		return false
	}
	r.idx++
	r.current = v
	return true
}

func (r *readCursor[T]) Value() T {
	switch {
	case r.idx < 0:
		panic(seqerrors.MsgNotStarted)
	case r.done:
		panic(seqerrors.MsgFinished)
	}
	return r.current
}

func (r *readCursor[T]) Err() error { return r.err }

// Close releases nothing: the underlying cursor belongs to the cache and
// is closed when the source is exhausted or the cache is cleared.
func (r *readCursor[T]) Close() error {
	r.done = true
	return nil
}
