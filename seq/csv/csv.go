// Package csv adapts CSV input into lazyseq sequences. A record sequence
// is restartable: each execution reopens its input and reads rows on
// demand, so only the demanded prefix of a file is ever parsed.
package csv

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// ReaderOption configures a CSV reader.
type ReaderOption func(*csv.Reader)

// WithComma sets the field delimiter (default is ',').
func WithComma(comma rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comma = comma
	}
}

// WithComment sets the comment character. Lines beginning with this
// character are ignored.
func WithComment(comment rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comment = comment
	}
}

// WithFieldsPerRecord sets the expected number of fields per record.
// If positive, each record must have exactly that many fields.
// If 0, the number is set to the first record's field count.
// If negative, no check is made and records may have variable fields.
func WithFieldsPerRecord(n int) ReaderOption {
	return func(r *csv.Reader) {
		r.FieldsPerRecord = n
	}
}

// WithLazyQuotes allows lazy quotes in quoted fields.
func WithLazyQuotes(lazy bool) ReaderOption {
	return func(r *csv.Reader) {
		r.LazyQuotes = lazy
	}
}

// WithTrimLeadingSpace trims leading whitespace from fields.
func WithTrimLeadingSpace(trim bool) ReaderOption {
	return func(r *csv.Reader) {
		r.TrimLeadingSpace = trim
	}
}

// Records returns a sequence of CSV records read from the input produced
// by open. open runs lazily, once per execution, on the first pull; the
// returned ReadCloser is closed when the execution is torn down.
func Records(open func() (io.ReadCloser, error), opts ...ReaderOption) core.Seq[[]string] {
	if open == nil {
		panic("csv.Records: open cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[[]string] {
		return &recordCursor{open: open, opts: opts}
	})
}

// ReadFile returns a sequence of CSV records from the file at path. The
// file is opened per execution and closed when the execution is torn down.
func ReadFile(path string, opts ...ReaderOption) core.Seq[[]string] {
	return Records(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, opts...)
}

type recordCursor struct {
	open func() (io.ReadCloser, error)
	opts []ReaderOption

	reader  *csv.Reader
	closer  io.Closer
	current []string
	err     error
	started bool
	done    bool
}

func (c *recordCursor) Next() bool {
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
		c.reader = csv.NewReader(src)
		for _, opt := range c.opts {
			opt(c.reader)
		}
	}
	record, err := c.reader.Read()
	if err == io.EOF {
		c.done = true
		return false
	}
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = record
	return true
}

func (c *recordCursor) Value() []string {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *recordCursor) Err() error { return c.err }

func (c *recordCursor) Close() error {
	c.done = true
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return closer.Close()
}
