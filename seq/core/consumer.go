package core

// Activity is the element-type-independent face of a consumer chain: the
// lifecycle propagation protocol. Both completion and disposal travel from
// the head of the chain (nearest the raw source) toward the terminal sink,
// each stage running its own hook before forwarding.
type Activity interface {
	// ChainComplete fires when the upstream is naturally exhausted or the
	// execution was stopped. It runs at most once per execution.
	ChainComplete()

	// ChainDispose fires when the owning cursor or drain is torn down,
	// whether or not completion happened. Forwarding to the next stage is
	// guaranteed even if the stage's own cleanup panics.
	ChainDispose()
}

// Consumer accepts one input value at a time. The boolean result of
// ProcessNext reports whether a value was forwarded downstream; driver loops
// use it to decide when a pull produced output, it is not a success or
// failure signal.
type Consumer[T any] interface {
	Activity
	ProcessNext(input T) bool
}

// Skipper is answered by consumers that are still in a lead-in skip phase.
// A true answer consumes one unit of the skip allowance, letting sources
// that compute elements on demand advance without materializing a value.
// Only the skip stage (and chains headed by it) answers true.
type Skipper interface {
	Skipping() bool
}

// chained carries the downstream link and the at-most-once guards shared by
// every stage consumer.
type chained struct {
	downstream Activity
	completed  bool
	disposed   bool
}

func link(next Activity) chained { return chained{downstream: next} }

// forwardComplete propagates completion after the stage's own hook ran.
func (c *chained) forwardComplete() {
	if c.completed {
		return
	}
	c.completed = true
	c.downstream.ChainComplete()
}

// forwardDispose runs the stage's own cleanup and then forwards disposal.
// The forward happens even if own panics.
func (c *chained) forwardDispose(own func()) {
	if c.disposed {
		return
	}
	c.disposed = true
	if own == nil {
		c.downstream.ChainDispose()
		return
	}
	defer c.downstream.ChainDispose()
	own()
}

// Sink is embedded by terminal consumers at the tail of a chain. It
// provides no-op lifecycle hooks with at-most-once guards and no downstream
// link. Sinks that need completion or disposal behavior shadow the hook and
// delegate to CompleteOnce or DisposeOnce.
type Sink struct {
	completed bool
	disposed  bool
}

// CompleteOnce runs hook on the first completion and swallows repeats.
func (t *Sink) CompleteOnce(hook func()) {
	if t.completed {
		return
	}
	t.completed = true
	if hook != nil {
		hook()
	}
}

// DisposeOnce runs hook on the first disposal and swallows repeats.
func (t *Sink) DisposeOnce(hook func()) {
	if t.disposed {
		return
	}
	t.disposed = true
	if hook != nil {
		hook()
	}
}

func (t *Sink) ChainComplete() { t.CompleteOnce(nil) }
func (t *Sink) ChainDispose()  { t.DisposeOnce(nil) }
