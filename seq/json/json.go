// Package json adapts JSON input into lazyseq sequences. Decoded
// sequences are restartable: each execution reopens its input and
// decodes documents on demand.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// DecodeStream returns a sequence of values decoded from a stream of
// concatenated or newline-delimited JSON documents. open runs lazily,
// once per execution, on the first pull; the returned ReadCloser is
// closed when the execution is torn down.
func DecodeStream[T any](open func() (io.ReadCloser, error)) core.Seq[T] {
	if open == nil {
		panic("json.DecodeStream: open cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[T] {
		return &decodeCursor[T]{open: open}
	})
}

// DecodeArray returns a sequence of the elements of a single top-level
// JSON array. Elements are decoded one at a time, so only the demanded
// prefix of the array is ever parsed.
func DecodeArray[T any](open func() (io.ReadCloser, error)) core.Seq[T] {
	if open == nil {
		panic("json.DecodeArray: open cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[T] {
		return &decodeCursor[T]{open: open, array: true}
	})
}

// ReadFile returns a sequence of values decoded from the stream of JSON
// documents in the file at path. The file is opened per execution and
// closed when the execution is torn down.
func ReadFile[T any](path string) core.Seq[T] {
	return DecodeStream[T](func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// ReadArrayFile returns a sequence of the elements of the top-level JSON
// array in the file at path.
func ReadArrayFile[T any](path string) core.Seq[T] {
	return DecodeArray[T](func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// Parse returns a sequence that unmarshals each string of source into T.
// A document that fails to parse fails the execution with the decode
// error.
func Parse[T any](source core.Seq[string]) core.Seq[T] {
	if source == nil {
		panic("json.Parse: source cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[T] {
		return &parseCursor[T]{inner: source.Cursor()}
	})
}

// Render returns a sequence that marshals each value of source into its
// JSON encoding. A value that cannot be marshaled fails the execution.
func Render[T any](source core.Seq[T]) core.Seq[string] {
	if source == nil {
		panic("json.Render: source cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[string] {
		return &renderCursor[T]{inner: source.Cursor()}
	})
}

type decodeCursor[T any] struct {
	open  func() (io.ReadCloser, error)
	array bool

	dec     *json.Decoder
	closer  io.Closer
	current T
	err     error
	started bool
	done    bool
}

func (c *decodeCursor[T]) Next() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		src, err := c.open()
		if err != nil {
			c.err = err
			c.done = true
			return false
		}
		c.closer = src
		c.dec = json.NewDecoder(src)
		if c.array {
			if err := c.expectDelim('['); err != nil {
				c.err = err
				c.done = true
				return false
			}
		}
	}
	if c.array && !c.dec.More() {
		if err := c.expectDelim(']'); err != nil {
			c.err = err
		}
		c.done = true
		return false
	}
	var value T
	err := c.dec.Decode(&value)
	if err == io.EOF {
		c.done = true
		return false
	}
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = value
	return true
}

func (c *decodeCursor[T]) expectDelim(want json.Delim) error {
	tok, err := c.dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("json: expected %q, got %v", want, tok)
	}
	return nil
}

func (c *decodeCursor[T]) Value() T {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *decodeCursor[T]) Err() error { return c.err }

func (c *decodeCursor[T]) Close() error {
	c.done = true
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return closer.Close()
}

type parseCursor[T any] struct {
	inner   core.Cursor[string]
	current T
	err     error
	started bool
	done    bool
}

func (c *parseCursor[T]) Next() bool {
	if c.done {
		return false
	}
	c.started = true
	if !c.inner.Next() {
		c.err = c.inner.Err()
		c.done = true
		return false
	}
	var value T
	if err := json.Unmarshal([]byte(c.inner.Value()), &value); err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = value
	return true
}

func (c *parseCursor[T]) Value() T {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *parseCursor[T]) Err() error { return c.err }

func (c *parseCursor[T]) Close() error {
	c.done = true
	return c.inner.Close()
}

type renderCursor[T any] struct {
	inner   core.Cursor[T]
	current string
	err     error
	started bool
	done    bool
}

func (c *renderCursor[T]) Next() bool {
	if c.done {
		return false
	}
	c.started = true
	if !c.inner.Next() {
		c.err = c.inner.Err()
		c.done = true
		return false
	}
	encoded, err := json.Marshal(c.inner.Value())
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = string(encoded)
	return true
}

func (c *renderCursor[T]) Value() string {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *renderCursor[T]) Err() error { return c.err }

func (c *renderCursor[T]) Close() error {
	c.done = true
	return c.inner.Close()
}
