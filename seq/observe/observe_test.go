package observe_test

import (
	"testing"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/lguimbarda/lazyseq/seq"
	"github.com/lguimbarda/lazyseq/seq/observe"
)

func TestMeterReportsPerExecution(t *testing.T) {
	var reports []observe.ExecutionMetrics
	src := observe.Meter(seq.Of(1, 2, 3), func(m observe.ExecutionMetrics) {
		reports = append(reports, m)
	})

	for i := 0; i < 2; i++ {
		got, err := seq.ToSlice(src)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(got) != 3 {
			t.Fatalf("read %d: expected 3 elements, got %v", i, got)
		}
	}

	if len(reports) != 2 {
		t.Fatalf("expected one report per execution, got %d", len(reports))
	}
	for i, m := range reports {
		if m.Elements != 3 {
			t.Fatalf("report %d: expected 3 elements, got %d", i, m.Elements)
		}
		if m.Err != nil {
			t.Fatalf("report %d: unexpected error %v", i, m.Err)
		}
		if m.EndTime.Before(m.StartTime) {
			t.Fatalf("report %d: end before start", i)
		}
	}
}

func TestMeterCountsOnlyDemandedElements(t *testing.T) {
	var report observe.ExecutionMetrics
	src := observe.Meter(seq.InitInfinite(func(i int) int { return i }), func(m observe.ExecutionMetrics) {
		report = m
	})

	got, err := seq.ToSlice(seq.Truncate(src, 4))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 elements, got %v", got)
	}
	if report.Elements != 4 {
		t.Fatalf("expected 4 observed elements, got %d", report.Elements)
	}
}

func TestMeterDoesNotChangeTheData(t *testing.T) {
	metered := observe.Meter(seq.Of("a", "b"), func(observe.ExecutionMetrics) {})
	got, err := seq.ToSlice(metered)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestObservedWithNoopMeter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("lazyseq/observability")
	instrument, err := observe.NewInstrument(meter)
	if err != nil {
		t.Fatalf("create instrument: %v", err)
	}

	observed := observe.Observed(seq.Of(1, 2, 3), instrument, "test-pipeline")
	for i := 0; i < 2; i++ {
		got, err := seq.ToSlice(observed)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(got) != 3 {
			t.Fatalf("read %d: expected 3 elements, got %v", i, got)
		}
	}
}

func TestObservedComposesWithStages(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("lazyseq/observability")
	instrument, err := observe.NewInstrument(meter)
	if err != nil {
		t.Fatalf("create instrument: %v", err)
	}

	piped := seq.Filter(
		observe.Observed(seq.Init(10, func(i int) int { return i }), instrument, "evens"),
		func(n int) bool { return n%2 == 0 },
	)
	n, err := seq.Length(piped)
	if err != nil {
		t.Fatalf("length: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
}
