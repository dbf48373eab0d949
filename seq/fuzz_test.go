package seq_test

import (
	"testing"

	"github.com/lguimbarda/lazyseq/seq"
)

// FuzzStageChain cross-checks a fused map/filter/skip/truncate chain
// against the same computation done with plain slices.
func FuzzStageChain(f *testing.F) {
	f.Add(5, 0, 3)
	f.Add(0, 0, 0)
	f.Add(100, 7, 20)
	f.Add(1, 1, 1)
	f.Add(50, 60, 10)

	f.Fuzz(func(t *testing.T, n, skip, limit int) {
		if n < 0 || n > 1000 {
			return
		}
		if skip < 0 || skip > 2000 {
			return
		}
		if limit < 0 || limit > 2000 {
			return
		}

		src := seq.Init(n, func(i int) int { return i })
		piped := seq.Truncate(
			seq.SkipWhile(
				seq.Filter(
					seq.Map(src, func(v int) int { return v*2 + 1 }),
					func(v int) bool { return v%3 != 0 },
				),
				func(v int) bool { return v < skip },
			),
			limit,
		)
		got, err := seq.ToSlice(piped)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var want []int
		dropping := true
		for i := 0; i < n && len(want) < limit; i++ {
			v := i*2 + 1
			if v%3 == 0 {
				continue
			}
			if dropping && v < skip {
				continue
			}
			dropping = false
			want = append(want, v)
		}

		if len(got) != len(want) {
			t.Fatalf("input n=%d skip=%d limit=%d: expected %v, got %v", n, skip, limit, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("input n=%d skip=%d limit=%d: expected %v, got %v", n, skip, limit, want, got)
			}
		}
	})
}
