// Package glob adapts file system traversal into lazyseq sequences.
// Traversal sequences are restartable and demand-driven: directories are
// listed only as their entries are pulled, so taking a prefix of a walk
// never lists the rest of the tree.
package glob

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// FileInfo describes a visited file or directory.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	IsDir   bool
	ModTime int64
}

// Match returns a sequence of the file paths matching pattern. The
// pattern is evaluated per execution with filepath.Glob, on the first
// pull.
func Match(pattern string) core.Seq[string] {
	return core.FromCursorFunc(func() core.Cursor[string] {
		return &matchCursor{pattern: pattern}
	})
}

// Walk returns a sequence of every file and directory path under root,
// root included, in depth-first lexical order.
func Walk(root string) core.Seq[string] {
	return core.FromCursorFunc(func() core.Cursor[string] {
		return &walkCursor{root: root}
	})
}

// WalkFiles returns a sequence of the file paths under root, directories
// excluded, in depth-first lexical order.
func WalkFiles(root string) core.Seq[string] {
	return core.FromCursorFunc(func() core.Cursor[string] {
		return &walkCursor{root: root, filesOnly: true}
	})
}

// Stat returns a sequence of FileInfo for each path of source. A path
// that cannot be stat'ed fails the execution.
func Stat(source core.Seq[string]) core.Seq[FileInfo] {
	if source == nil {
		panic("glob.Stat: source cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[FileInfo] {
		return &statCursor{inner: source.Cursor()}
	})
}

type matchCursor struct {
	pattern string
	matches []string
	idx     int
	err     error
	started bool
	done    bool
}

func (c *matchCursor) Next() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		matches, err := filepath.Glob(c.pattern)
		if err != nil {
			c.err = err
			c.done = true
			return false
		}
		c.matches = matches
		c.idx = -1
	}
	c.idx++
	if c.idx >= len(c.matches) {
		c.done = true
		return false
	}
	return true
}

func (c *matchCursor) Value() string {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.matches[c.idx]
}

func (c *matchCursor) Err() error { return c.err }

func (c *matchCursor) Close() error {
	c.done = true
	return nil
}

// walkEntry is a pending path on the traversal stack. Directories are
// listed when popped, not when pushed.
type walkEntry struct {
	path  string
	isDir bool
}

type walkCursor struct {
	root      string
	filesOnly bool

	stack   []walkEntry
	current string
	err     error
	started bool
	done    bool
}

func (c *walkCursor) Next() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		info, err := os.Lstat(c.root)
		if err != nil {
			c.err = err
			c.done = true
			return false
		}
		c.stack = []walkEntry{{path: c.root, isDir: info.IsDir()}}
	}
	for len(c.stack) > 0 {
		top := len(c.stack) - 1
		entry := c.stack[top]
		c.stack = c.stack[:top]

		if entry.isDir {
			if err := c.pushChildren(entry.path); err != nil {
				c.err = err
				c.done = true
				return false
			}
			if c.filesOnly {
				continue
			}
		}
		c.current = entry.path
		return true
	}
	c.done = true
	return false
}

// pushChildren lists dir and pushes its entries in reverse lexical order
// so they pop in lexical order.
func (c *walkCursor) pushChildren(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		c.stack = append(c.stack, walkEntry{
			path:  filepath.Join(dir, entry.Name()),
			isDir: entry.IsDir(),
		})
	}
	return nil
}

func (c *walkCursor) Value() string {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *walkCursor) Err() error { return c.err }

func (c *walkCursor) Close() error {
	c.done = true
	c.stack = nil
	return nil
}

type statCursor struct {
	inner   core.Cursor[string]
	current FileInfo
	err     error
	started bool
	done    bool
}

func (c *statCursor) Next() bool {
	if c.done {
		return false
	}
	c.started = true
	if !c.inner.Next() {
		c.err = c.inner.Err()
		c.done = true
		return false
	}
	path := c.inner.Value()
	info, err := os.Lstat(path)
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime().Unix(),
	}
	return true
}

func (c *statCursor) Value() FileInfo {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *statCursor) Err() error { return c.err }

func (c *statCursor) Close() error {
	c.done = true
	return c.inner.Close()
}
