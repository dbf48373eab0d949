package core

// Phase tracks the lifecycle of a single pipeline execution. Transitions are
// monotonic: NotStarted -> Running -> Finished.
type Phase int32

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseFinished
)

// Signal is the control state shared by every consumer of one pipeline
// execution. A fresh Signal is created per cursor and per one-shot drain,
// handed by pointer to each stage's Create call, and never reused across
// executions. A pipeline execution is single-threaded, so Signal needs no
// synchronization.
type Signal struct {
	phase  Phase
	halted bool
	err    error
}

// NewSignal returns the control state for a new execution.
func NewSignal() *Signal { return &Signal{} }

// Phase returns the current execution phase.
func (s *Signal) Phase() Phase { return s.phase }

// Halted reports whether some stage requested early termination.
func (s *Signal) Halted() bool { return s.halted }

// StopFurtherProcessing requests cooperative early termination. It takes
// effect no later than the next element boundary: the requesting stage must
// not process further elements, and drivers stop pulling from the raw source.
// Once halted an execution never resumes.
func (s *Signal) StopFurtherProcessing() { s.halted = true }

// Err returns the first failure recorded for this execution, if any.
func (s *Signal) Err() error { return s.err }

// Fail records a failure for this execution. The first failure wins;
// later ones are dropped. Completion hooks use this to report structural
// shortfalls and empty-input aggregate errors.
func (s *Signal) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Signal) begin() {
	if s.phase == PhaseNotStarted {
		s.phase = PhaseRunning
	}
}

func (s *Signal) finish() { s.phase = PhaseFinished }
