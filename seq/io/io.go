// Package io adapts line-oriented file input and output to lazyseq
// sequences. Line sequences are restartable: each execution reopens its
// input and scans lines on demand.
package io

import (
	"bufio"
	"io"
	"os"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// Lines returns a sequence of the lines produced by open, without their
// trailing newlines. open runs lazily, once per execution, on the first
// pull; the returned ReadCloser is closed when the execution is torn
// down.
func Lines(open func() (io.ReadCloser, error)) core.Seq[string] {
	if open == nil {
		panic("io.Lines: open cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[string] {
		return &lineCursor{open: open}
	})
}

// ReadLines returns a sequence of the lines of the file at path. The
// file is opened per execution and closed when the execution is torn
// down.
func ReadLines(path string) core.Seq[string] {
	return Lines(func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// WriteLines writes each line of source to the file at path, appending a
// newline after each. The file is created or truncated. Writing stops at
// the first error, from either the sequence or the file.
func WriteLines(path string, source core.Seq[string]) error {
	return writeLines(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, source)
}

// AppendLines appends each line of source to the file at path, creating
// it if absent.
func AppendLines(path string, source core.Seq[string]) error {
	return writeLines(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, source)
}

func writeLines(path string, flag int, source core.Seq[string]) error {
	if source == nil {
		panic("io.WriteLines: source cannot be nil")
	}
	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	if err := WriteTo(writer, source); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteTo writes each line of source to w, appending a newline after
// each.
func WriteTo(w io.Writer, source core.Seq[string]) error {
	cur := source.Cursor()
	defer cur.Close()
	for cur.Next() {
		if _, err := io.WriteString(w, cur.Value()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return cur.Err()
}

type lineCursor struct {
	open func() (io.ReadCloser, error)

	scanner *bufio.Scanner
	closer  io.Closer
	err     error
	started bool
	done    bool
}

func (c *lineCursor) Next() bool {
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
		c.scanner = bufio.NewScanner(src)
	}
	if !c.scanner.Scan() {
		c.err = c.scanner.Err()
		c.done = true
		return false
	}
	return true
}

func (c *lineCursor) Value() string {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.scanner.Text()
}

func (c *lineCursor) Err() error { return c.err }

func (c *lineCursor) Close() error {
	c.done = true
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return closer.Close()
}
