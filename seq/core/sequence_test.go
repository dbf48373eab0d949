package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lguimbarda/lazyseq/seq/core"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// countingCursor records how many elements were pulled and whether Close
// ran, so tests can assert over-pull prohibition and resource release.
type countingCursor struct {
	items   []int
	idx     int
	pulls   *int
	closes  *int
	onClose func()
}

func (c *countingCursor) Next() bool {
	*c.pulls++
	if c.idx >= len(c.items) {
		return false
	}
	c.idx++
	return true
}

func (c *countingCursor) Value() int { return c.items[c.idx-1] }
func (c *countingCursor) Err() error { return nil }

func (c *countingCursor) Close() error {
	*c.closes++
	if c.onClose != nil {
		c.onClose()
	}
	return nil
}

func countingSource(items []int, pulls, closes *int) core.Seq[int] {
	return core.FromCursorFunc(func() core.Cursor[int] {
		return &countingCursor{items: items, pulls: pulls, closes: closes}
	})
}

func drainAll[T any](t *testing.T, s core.Seq[T]) []T {
	t.Helper()
	cur := s.Cursor()
	defer func() {
		if err := cur.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()
	var out []T
	for cur.Next() {
		out = append(out, cur.Value())
	}
	if err := cur.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestCursorValuePanicsBeforeNext(t *testing.T) {
	cur := core.FromSlice([]int{1, 2, 3}).Cursor()
	defer cur.Close()

	defer func() {
		r := recover()
		if r != seqerrors.MsgNotStarted {
			t.Fatalf("expected not-started panic, got %v", r)
		}
	}()
	cur.Value()
}

func TestCursorValuePanicsAfterFinish(t *testing.T) {
	cur := core.FromSlice([]int{1}).Cursor()
	defer cur.Close()

	for cur.Next() {
	}

	defer func() {
		r := recover()
		if r != seqerrors.MsgFinished {
			t.Fatalf("expected finished panic, got %v", r)
		}
	}()
	cur.Value()
}

func TestCursorCloseIsIdempotent(t *testing.T) {
	pulls, closes := 0, 0
	cur := countingSource([]int{1, 2}, &pulls, &closes).Cursor()

	if !cur.Next() {
		t.Fatal("expected an element")
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if closes != 1 {
		t.Fatalf("expected 1 close, got %d", closes)
	}
}

func TestNextAfterCloseReturnsFalse(t *testing.T) {
	cur := core.FromSlice([]int{1, 2, 3}).Cursor()
	if !cur.Next() {
		t.Fatal("expected an element")
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if cur.Next() {
		t.Fatal("Next after Close should report false")
	}
}

func TestTransformMapFilterPipeline(t *testing.T) {
	src := core.FromSlice([]string{"a", "bb", "ccc"})
	lengths := core.Transform(src, core.MapStage(func(s string) int { return len(s) }))
	long := core.TransformSame(lengths, core.FilterStage(func(n int) bool { return n > 1 }))

	got := drainAll(t, long)
	want := []int{2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPipelineIsLazyUntilPulled(t *testing.T) {
	calls := 0
	src := core.Init(10, func(i int) int {
		calls++
		return i
	})
	mapped := core.Transform(src, core.MapStage(func(n int) int { return n * 2 }))

	cur := mapped.Cursor()
	defer cur.Close()
	if calls != 0 {
		t.Fatalf("building the pipeline ran the generator %d times", calls)
	}
	cur.Next()
	if calls != 1 {
		t.Fatalf("expected exactly 1 generator call after one pull, got %d", calls)
	}
}

func TestFusionPreservesCallCounts(t *testing.T) {
	mapCalls, predCalls := 0, 0
	src := core.FromSlice([]int{1, 2, 3, 4, 5})
	mapped := core.Transform(src, core.MapStage(func(n int) int {
		mapCalls++
		return n * 10
	}))
	filtered := core.TransformSame(mapped, core.FilterStage(func(n int) bool {
		predCalls++
		return n >= 30
	}))

	got := drainAll(t, filtered)
	want := []int{30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if mapCalls != 5 {
		t.Fatalf("map fn should run once per source element, got %d", mapCalls)
	}
	if predCalls != 5 {
		t.Fatalf("predicate should run once per mapped element, got %d", predCalls)
	}
}

func TestAdjacentFiltersFuseWithShortCircuit(t *testing.T) {
	firstCalls, secondCalls := 0, 0
	src := core.FromSlice([]int{1, 2, 3, 4})
	once := core.TransformSame(src, core.FilterStage(func(n int) bool {
		firstCalls++
		return n%2 == 0
	}))
	twice := core.TransformSame(once, core.FilterStage(func(n int) bool {
		secondCalls++
		return n > 2
	}))

	got := drainAll(t, twice)
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("expected [4], got %v", got)
	}
	if firstCalls != 4 {
		t.Fatalf("first predicate should run once per element, got %d", firstCalls)
	}
	// Second predicate runs only for elements that passed the first.
	if secondCalls != 2 {
		t.Fatalf("second predicate should run twice, got %d", secondCalls)
	}
}

func TestTakeNeverOverPulls(t *testing.T) {
	pulls, closes := 0, 0
	src := countingSource([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, &pulls, &closes)
	taken := core.TransformSame(src, core.TakeStage[int](3))

	got := drainAll(t, taken)
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %v", got)
	}
	if pulls != 3 {
		t.Fatalf("take(3) must pull exactly 3 times, pulled %d", pulls)
	}
	if closes != 1 {
		t.Fatalf("source must be closed exactly once, got %d", closes)
	}
}

// orderFactory builds consumers that append their label to a shared trace
// on completion and disposal, to pin down lifecycle propagation order.
type orderFactory struct {
	label string
	trace *[]string
}

func (f orderFactory) Create(_ *core.Signal, next core.Consumer[int]) core.Consumer[int] {
	return &orderConsumer{label: f.label, trace: f.trace, next: next}
}

type orderConsumer struct {
	label     string
	trace     *[]string
	next      core.Consumer[int]
	completed bool
	disposed  bool
}

func (c *orderConsumer) ProcessNext(v int) bool { return c.next.ProcessNext(v) }

func (c *orderConsumer) ChainComplete() {
	if c.completed {
		*c.trace = append(*c.trace, c.label+":complete-again")
		return
	}
	c.completed = true
	*c.trace = append(*c.trace, c.label+":complete")
	c.next.ChainComplete()
}

func (c *orderConsumer) ChainDispose() {
	if c.disposed {
		*c.trace = append(*c.trace, c.label+":dispose-again")
		return
	}
	c.disposed = true
	*c.trace = append(*c.trace, c.label+":dispose")
	c.next.ChainDispose()
}

func TestDisposeOrderIsSourceToSink(t *testing.T) {
	var trace []string
	pulls, closes := 0, 0
	src := core.FromCursorFunc(func() core.Cursor[int] {
		return &countingCursor{
			items:  []int{1, 2, 3},
			pulls:  &pulls,
			closes: &closes,
			onClose: func() {
				trace = append(trace, "source:release")
			},
		}
	})
	staged := core.Transform[int, int](src, orderFactory{label: "inner", trace: &trace})
	staged = core.Transform[int, int](staged, orderFactory{label: "outer", trace: &trace})

	cur := staged.Cursor()
	for cur.Next() {
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	want := []string{
		"inner:complete", "outer:complete",
		"source:release",
		"inner:dispose", "outer:dispose",
	}
	if len(trace) != len(want) {
		t.Fatalf("expected trace %v, got %v", want, trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("expected trace %v, got %v", want, trace)
		}
	}
}

func TestDrainMatchesCursorMode(t *testing.T) {
	src := core.FromSlice([]int{1, 2, 3, 4})
	mapped := core.Transform(src, core.MapStage(func(n int) int { return n + 1 }))

	var pushed []int
	err := core.Run(mapped, func(_ *core.Signal) core.Consumer[int] {
		return &collectSink{out: &pushed}
	})
	if err != nil {
		t.Fatalf("drain: %v", err)
	}

	viaCursor := drainAll(t, mapped)
	if len(pushed) != len(viaCursor) {
		t.Fatalf("drain %v differs from cursor %v", pushed, viaCursor)
	}
	for i := range pushed {
		if pushed[i] != viaCursor[i] {
			t.Fatalf("drain %v differs from cursor %v", pushed, viaCursor)
		}
	}
}

type collectSink struct {
	core.Sink
	out *[]int
}

func (s *collectSink) ProcessNext(v int) bool {
	*s.out = append(*s.out, v)
	return true
}

func TestDrainReportsShortfall(t *testing.T) {
	src := core.FromSlice([]int{1, 2, 3})
	skipped := core.TransformSame(src, core.SkipStage[int](5))

	var out []int
	err := core.Run(skipped, func(_ *core.Signal) core.Consumer[int] {
		return &collectSink{out: &out}
	})
	if !errors.Is(err, seqerrors.ErrShortSequence) {
		t.Fatalf("expected short-sequence error, got %v", err)
	}
	var shortfall *seqerrors.ShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("expected ShortfallError, got %T", err)
	}
	if shortfall.Needed != 5 || shortfall.Got != 3 {
		t.Fatalf("expected needed=5 got=3, have %+v", shortfall)
	}
}

func TestComposeEliminatesIdentity(t *testing.T) {
	double := core.MapStage(func(n int) int { return n * 2 })

	if !core.IsIdentity(core.Identity[int]()) {
		t.Fatal("Identity should be identity")
	}
	if core.IsIdentity(double) {
		t.Fatal("map stage should not be identity")
	}
	left := core.Compose(core.Identity[int](), double)
	if core.IsIdentity(left) {
		t.Fatal("composition with a real stage should not be identity")
	}
	// Composing with identity must not add a runtime layer: the result is
	// the original factory, not a composed wrapper around it.
	if reflect.TypeOf(left) != reflect.TypeOf(double) {
		t.Fatalf("left identity should vanish in composition, got %T", left)
	}
	right := core.Compose(double, core.Identity[int]())
	if reflect.TypeOf(right) != reflect.TypeOf(double) {
		t.Fatalf("right identity should vanish in composition, got %T", right)
	}
}

func TestTransformSameDropsIdentity(t *testing.T) {
	src := core.FromSlice([]int{1, 2})
	same := core.TransformSame(src, core.Identity[int]())
	if reflect.TypeOf(same) != reflect.TypeOf(src) {
		t.Fatalf("identity stage should return the source unchanged, got %T", same)
	}
}

func TestSequencesAreRestartable(t *testing.T) {
	executions := 0
	src := core.FromCursorFunc(func() core.Cursor[int] {
		executions++
		pulls, closes := 0, 0
		return &countingCursor{items: []int{1, 2}, pulls: &pulls, closes: &closes}
	})
	mapped := core.Transform(src, core.MapStage(func(n int) int { return n * 3 }))

	first := drainAll(t, mapped)
	second := drainAll(t, mapped)
	if executions != 2 {
		t.Fatalf("expected 2 executions, got %d", executions)
	}
	if len(first) != 2 || len(second) != 2 || first[1] != second[1] {
		t.Fatalf("executions disagree: %v vs %v", first, second)
	}
}
