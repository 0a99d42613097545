package pipeline

import "time"

// Stage describes a step of checking one unit.
type Stage string

const (
	// StageLoad reads and validates the resolved-program snapshot.
	StageLoad Stage = "load"
	// StagePrivacy runs the visibility-enforcement pass.
	StagePrivacy Stage = "privacy"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLoad, StagePrivacy}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError means the unit has privacy violations or failed to load.
	StatusError Status = "error"
	// StatusCrashed means the pass hit an internal compiler error.
	StatusCrashed Status = "ice"
)

// Event reports progress for a unit (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds per-stage durations of one unit.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration, len(Stages))
	}
	t.stages[stage] = dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Total sums every recorded stage.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return total
}
