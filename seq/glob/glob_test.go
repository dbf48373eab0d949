package glob_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lguimbarda/lazyseq/seq"
	seqglob "github.com/lguimbarda/lazyseq/seq/glob"
)

// makeTree creates:
//
//	root/a.txt
//	root/b.log
//	root/sub/c.txt
//	root/sub/deep/d.txt
func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.txt", "b.log", "sub/c.txt", "sub/deep/d.txt"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.WriteFile(path, []byte(name), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func names(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel %s: %v", p, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestMatchYieldsMatchingPaths(t *testing.T) {
	root := makeTree(t)
	got, err := seq.ToSlice(seqglob.Match(filepath.Join(root, "*.txt")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "a.txt" {
		t.Fatalf("unexpected matches: %v", got)
	}
}

func TestMatchIsRestartable(t *testing.T) {
	root := makeTree(t)
	matches := seqglob.Match(filepath.Join(root, "*"))
	first, err := seq.Length(matches)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "new.txt"), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	second, err := seq.Length(matches)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second != first+1 {
		t.Fatalf("expected %d matches after write, got %d", first+1, second)
	}
}

func TestMatchBadPatternFailsOnPull(t *testing.T) {
	bad := seqglob.Match("[")
	cur := bad.Cursor()
	defer cur.Close()
	if cur.Next() {
		t.Fatal("expected no matches")
	}
	if cur.Err() == nil {
		t.Fatal("expected a pattern error")
	}
}

func TestWalkVisitsEverythingInOrder(t *testing.T) {
	root := makeTree(t)
	got, err := seq.ToSlice(seqglob.Walk(root))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{".", "a.txt", "b.log", "sub", "sub/c.txt", "sub/deep", "sub/deep/d.txt"}
	rel := names(t, root, got)
	if len(rel) != len(want) {
		t.Fatalf("expected %v, got %v", want, rel)
	}
	for i := range want {
		if rel[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], rel[i])
		}
	}
}

func TestWalkFilesExcludesDirectories(t *testing.T) {
	root := makeTree(t)
	got, err := seq.ToSlice(seqglob.WalkFiles(root))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 files, got %v", names(t, root, got))
	}
	for _, p := range got {
		info, err := os.Lstat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.IsDir() {
			t.Fatalf("directory leaked into file walk: %s", p)
		}
	}
}

func TestWalkMissingRootFailsOnPull(t *testing.T) {
	missing := seqglob.Walk(filepath.Join(t.TempDir(), "nope"))
	cur := missing.Cursor()
	defer cur.Close()
	if cur.Next() {
		t.Fatal("expected no paths")
	}
	if cur.Err() == nil {
		t.Fatal("expected a stat error")
	}
}

func TestWalkComposesIntoPipelines(t *testing.T) {
	root := makeTree(t)
	logs, err := seq.ToSlice(seq.Filter(seqglob.WalkFiles(root), func(p string) bool {
		return strings.HasSuffix(p, ".log")
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 || filepath.Base(logs[0]) != "b.log" {
		t.Fatalf("unexpected logs: %v", logs)
	}
}

func TestStatYieldsFileInfo(t *testing.T) {
	root := makeTree(t)
	infos, err := seq.ToSlice(seqglob.Stat(seqglob.WalkFiles(root)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, info := range infos {
		if info.IsDir {
			t.Fatalf("expected no directories, got %s", info.Path)
		}
		if info.Size == 0 {
			t.Fatalf("expected non-empty file, got %s", info.Path)
		}
		if info.Name != filepath.Base(info.Path) {
			t.Fatalf("name mismatch: %q vs %q", info.Name, info.Path)
		}
	}
}

func TestStatMissingPathSurfaces(t *testing.T) {
	_, err := seq.ToSlice(seqglob.Stat(seq.Of(filepath.Join(t.TempDir(), "nope"))))
	if err == nil {
		t.Fatal("expected a stat error")
	}
}

func TestWalkTakeListsOnlyDemandedDirectories(t *testing.T) {
	root := makeTree(t)
	got, err := seq.ToSlice(seq.Take(seqglob.Walk(root), 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel := names(t, root, got)
	if rel[0] != "." || rel[1] != "a.txt" {
		t.Fatalf("unexpected prefix: %v", rel)
	}
}
