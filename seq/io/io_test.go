package io_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lguimbarda/lazyseq/seq"
	seqio "github.com/lguimbarda/lazyseq/seq/io"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadLinesYieldsLines(t *testing.T) {
	path := writeTempFile(t, "alpha\nbeta\ngamma\n")
	got, err := seq.ToSlice(seqio.ReadLines(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReadLinesIsRestartable(t *testing.T) {
	path := writeTempFile(t, "a\nb\n")
	lines := seqio.ReadLines(path)
	for i := 0; i < 2; i++ {
		n, err := seq.Length(lines)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if n != 2 {
			t.Fatalf("read %d: expected 2 lines, got %d", i, n)
		}
	}
}

func TestReadLinesMissingFileFailsOnPull(t *testing.T) {
	missing := seqio.ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	cur := missing.Cursor()
	defer cur.Close()
	if cur.Next() {
		t.Fatal("expected no lines")
	}
	if cur.Err() == nil {
		t.Fatal("expected an open error")
	}
}

func TestLinesFromCustomSource(t *testing.T) {
	opens := 0
	lines := seqio.Lines(func() (io.ReadCloser, error) {
		opens++
		return io.NopCloser(strings.NewReader("one\ntwo\n")), nil
	})
	if opens != 0 {
		t.Fatalf("expected lazy open, got %d opens", opens)
	}
	first, err := seq.Head(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "one" {
		t.Fatalf("expected %q, got %q", "one", first)
	}
	if opens != 1 {
		t.Fatalf("expected 1 open, got %d", opens)
	}
}

func TestReadStopsAtDemandedPrefix(t *testing.T) {
	path := writeTempFile(t, strings.Repeat("line\n", 10000))
	got, err := seq.ToSlice(seq.Take(seqio.ReadLines(path), 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(got))
	}
}

func TestWriteLinesRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := seqio.WriteLines(path, seq.Of("x", "y", "z")); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := seq.ToSlice(seqio.ReadLines(path))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(back) != 3 || back[2] != "z" {
		t.Fatalf("unexpected round trip: %v", back)
	}
}

func TestWriteLinesTruncates(t *testing.T) {
	path := writeTempFile(t, "old\ncontent\n")
	if err := seqio.WriteLines(path, seq.Of("fresh")); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := seq.ToSlice(seqio.ReadLines(path))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(back) != 1 || back[0] != "fresh" {
		t.Fatalf("unexpected content: %v", back)
	}
}

func TestAppendLinesExtends(t *testing.T) {
	path := writeTempFile(t, "first\n")
	if err := seqio.AppendLines(path, seq.Of("second")); err != nil {
		t.Fatalf("append: %v", err)
	}
	n, err := seq.Length(seqio.ReadLines(path))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
}

func TestWriteLinesPropagatesSourceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	broken := seq.Append(seq.Of("ok"), seq.Tail(seq.Empty[string]()))
	if err := seqio.WriteLines(path, broken); err == nil {
		t.Fatal("expected the source error to surface")
	}
}

func TestWriteToComposesWithPipelines(t *testing.T) {
	var sb strings.Builder
	upper := seq.Map(seq.Of("a", "b"), strings.ToUpper)
	if err := seqio.WriteTo(&sb, upper); err != nil {
		t.Fatalf("write: %v", err)
	}
	if sb.String() != "A\nB\n" {
		t.Fatalf("unexpected output: %q", sb.String())
	}
}
