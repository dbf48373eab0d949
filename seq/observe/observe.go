// Package observe provides sequence wrappers for monitoring pipeline
// executions: a callback-based execution meter and an OpenTelemetry
// instrument. Both wrap the sequence's cursor and observe elements as they
// are pulled, without changing what flows through the pipeline.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/lazyseq/seq/core"
)

// ExecutionMetrics holds statistics about one execution of an observed
// sequence, from the first pull to cursor close.
type ExecutionMetrics struct {
	// Counts
	Elements int64

	// Timing
	StartTime        time.Time
	EndTime          time.Time
	FirstElementTime time.Time
	LastElementTime  time.Time

	// Throughput
	ElementsPerSecond float64

	// Latency (time between pulls that produced an element)
	MinLatency time.Duration
	MaxLatency time.Duration
	AvgLatency time.Duration

	// Err is the execution's recorded failure, if any.
	Err error
}

// Meter wraps source so every execution reports its final metrics through
// onComplete when the execution's cursor is closed.
func Meter[T any](source core.Seq[T], onComplete func(ExecutionMetrics)) core.Seq[T] {
	if source == nil {
		panic("observe.Meter: source cannot be nil")
	}
	if onComplete == nil {
		panic("observe.Meter: onComplete cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[T] {
		return &meterCursor[T]{
			inner:      source.Cursor(),
			onComplete: onComplete,
			metrics: ExecutionMetrics{
				StartTime:  time.Now(),
				MinLatency: time.Duration(1<<63 - 1),
			},
		}
	})
}

type meterCursor[T any] struct {
	inner      core.Cursor[T]
	onComplete func(ExecutionMetrics)
	metrics    ExecutionMetrics

	lastPull     time.Time
	totalLatency time.Duration
	closed       bool
}

func (c *meterCursor[T]) Next() bool {
	if !c.inner.Next() {
		return false
	}
	now := time.Now()
	c.metrics.Elements++
	if c.metrics.Elements == 1 {
		c.metrics.FirstElementTime = now
	}
	c.metrics.LastElementTime = now
	if !c.lastPull.IsZero() {
		latency := now.Sub(c.lastPull)
		if latency < c.metrics.MinLatency {
			c.metrics.MinLatency = latency
		}
		if latency > c.metrics.MaxLatency {
			c.metrics.MaxLatency = latency
		}
		c.totalLatency += latency
	}
	c.lastPull = now
	return true
}

func (c *meterCursor[T]) Value() T   { return c.inner.Value() }
func (c *meterCursor[T]) Err() error { return c.inner.Err() }

func (c *meterCursor[T]) Close() error {
	if c.closed {
		return c.inner.Close()
	}
	c.closed = true
	err := c.inner.Close()
	c.metrics.EndTime = time.Now()
	c.metrics.Err = c.inner.Err()
	if c.metrics.Elements > 0 {
		duration := c.metrics.EndTime.Sub(c.metrics.StartTime).Seconds()
		if duration > 0 {
			c.metrics.ElementsPerSecond = float64(c.metrics.Elements) / duration
		}
		if c.metrics.Elements > 1 {
			c.metrics.AvgLatency = c.totalLatency / time.Duration(c.metrics.Elements-1)
		}
	}
	c.onComplete(c.metrics)
	return err
}

// Instrument holds the OpenTelemetry instruments shared by every sequence
// wrapped through it. Create one per meter and reuse it.
type Instrument struct {
	executions metric.Int64Counter
	elements   metric.Int64Counter
	latency    metric.Int64Histogram
}

// NewInstrument creates the lazyseq instruments on the given meter.
func NewInstrument(meter metric.Meter) (*Instrument, error) {
	executions, err := meter.Int64Counter("lazyseq.executions",
		metric.WithDescription("count of pipeline executions started"))
	if err != nil {
		return nil, err
	}
	elements, err := meter.Int64Counter("lazyseq.elements",
		metric.WithDescription("count of elements pulled through observed sequences"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Int64Histogram("lazyseq.yield_latency_ms",
		metric.WithDescription("latency between consecutive element pulls"))
	if err != nil {
		return nil, err
	}
	return &Instrument{executions: executions, elements: elements, latency: latency}, nil
}

// Observed wraps source so every execution increments the execution
// counter, every pulled element increments the element counter, and the
// gap between consecutive pulls is recorded on the latency histogram. All
// measurements carry a seq.name attribute with the given name.
func Observed[T any](source core.Seq[T], in *Instrument, name string) core.Seq[T] {
	if source == nil {
		panic("observe.Observed: source cannot be nil")
	}
	if in == nil {
		panic("observe.Observed: instrument cannot be nil")
	}
	attrs := metric.WithAttributes(attribute.String("seq.name", name))
	return core.FromCursorFunc(func() core.Cursor[T] {
		ctx := context.Background()
		in.executions.Add(ctx, 1, attrs)
		return &otelCursor[T]{inner: source.Cursor(), in: in, attrs: attrs, ctx: ctx}
	})
}

type otelCursor[T any] struct {
	inner    core.Cursor[T]
	in       *Instrument
	attrs    metric.MeasurementOption
	ctx      context.Context
	lastPull time.Time
}

func (c *otelCursor[T]) Next() bool {
	if !c.inner.Next() {
		return false
	}
	now := time.Now()
	c.in.elements.Add(c.ctx, 1, c.attrs)
	if !c.lastPull.IsZero() {
		c.in.latency.Record(c.ctx, now.Sub(c.lastPull).Milliseconds(), c.attrs)
	}
	c.lastPull = now
	return true
}

func (c *otelCursor[T]) Value() T     { return c.inner.Value() }
func (c *otelCursor[T]) Err() error   { return c.inner.Err() }
func (c *otelCursor[T]) Close() error { return c.inner.Close() }
