// Package sql adapts database queries into lazyseq sequences. A query
// sequence is restartable: each execution runs the query again and walks a
// fresh database/sql.Rows, released when the execution is torn down.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// Scanner is a function that scans the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query returns a sequence that executes the query and yields one scanned
// value per row. The query runs lazily, once per execution, on the first
// pull.
func Query[T any](ctx context.Context, db *sql.DB, query string, scanner Scanner[T], args ...any) core.Seq[T] {
	if db == nil {
		panic("sql.Query: db cannot be nil")
	}
	if scanner == nil {
		panic("sql.Query: scanner cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[T] {
		return &rowsCursor[T]{ctx: ctx, db: db, query: query, args: args, scan: scanner}
	})
}

type rowsCursor[T any] struct {
	ctx   context.Context
	db    *sql.DB
	query string
	args  []any
	scan  Scanner[T]

	rows    *sql.Rows
	current T
	err     error
	started bool
	done    bool
}

func (c *rowsCursor[T]) Next() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		rows, err := c.db.QueryContext(c.ctx, c.query, c.args...)
		if err != nil {
			c.err = err
			c.done = true
			return false
		}
		c.rows = rows
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		c.done = true
		return false
	}
	v, err := c.scan(c.rows)
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = v
	return true
}

func (c *rowsCursor[T]) Value() T {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *rowsCursor[T]) Err() error { return c.err }

func (c *rowsCursor[T]) Close() error {
	c.done = true
	if c.rows == nil {
		return nil
	}
	rows := c.rows
	c.rows = nil
	return rows.Close()
}

// QueryStrings queries with every column rendered as a string. NULL renders
// as the empty string.
func QueryStrings(ctx context.Context, db *sql.DB, query string, args ...any) core.Seq[[]string] {
	return Query(ctx, db, query, func(rows *sql.Rows) ([]string, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		result := make([]string, len(cols))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				result[i] = ""
			case []byte:
				result[i] = string(val)
			case string:
				result[i] = val
			case int64:
				result[i] = fmt.Sprintf("%d", val)
			case float64:
				result[i] = fmt.Sprintf("%g", val)
			case bool:
				result[i] = fmt.Sprintf("%t", val)
			default:
				result[i] = fmt.Sprintf("%v", val)
			}
		}
		return result, nil
	}, args...)
}

// QueryMaps queries with each row scanned into a map keyed by column name.
func QueryMaps(ctx context.Context, db *sql.DB, query string, args ...any) core.Seq[map[string]any] {
	return Query(ctx, db, query, func(rows *sql.Rows) (map[string]any, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		result := make(map[string]any, len(cols))
		for i, col := range cols {
			result[col] = values[i]
		}
		return result, nil
	}, args...)
}
