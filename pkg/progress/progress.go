// Package progress tracks pipeline stage completion for display against a
// fixed stage ordering.
package progress

import (
	"slices"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Tracker assumes stage notifications arrive in order but does not enforce
// it: each stage's position is looked up independently, so a reordered or
// skipped stage degrades the display without breaking it.
type Tracker struct {
	order []tagging.Stage

	state     State
	completed []tagging.Stage
	current   tagging.Stage
}

func NewTracker(order []tagging.Stage) *Tracker {
	return &Tracker{
		order: slices.Clone(order),

		state: StateIdle,
	}
}

// Start resets the tracker for a new run.
func (t *Tracker) Start() {
	t.state = StateRunning
	t.completed = nil

	t.current = ""

	if len(t.order) > 0 {
		t.current = t.order[0]
	}
}

// Observe records a completed stage. Duplicate notifications for the same
// stage are recorded once.
func (t *Tracker) Observe(stage tagging.Stage) {
	if !slices.Contains(t.completed, stage) {
		t.completed = append(t.completed, stage)
	}

	t.current = ""

	if i := slices.Index(t.order, stage); i >= 0 && i+1 < len(t.order) {
		t.current = t.order[i+1]
	}
}

// Complete marks the run as succeeded, keeping the completed stages as the
// historical record.
func (t *Tracker) Complete() {
	t.state = StateSucceeded
	t.current = ""
}

// Fail marks the run as failed and discards all progress, so a retry starts
// from a clean slate.
func (t *Tracker) Fail() {
	t.state = StateFailed
	t.completed = nil
	t.current = ""
}

func (t *Tracker) State() State {
	return t.state
}

// Current returns the stage expected to run next, or "" once the run has no
// more known stages or has terminated.
func (t *Tracker) Current() tagging.Stage {
	return t.current
}

func (t *Tracker) Completed() []tagging.Stage {
	return slices.Clone(t.completed)
}

func (t *Tracker) Done(stage tagging.Stage) bool {
	return slices.Contains(t.completed, stage)
}
