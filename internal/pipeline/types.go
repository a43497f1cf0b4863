package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLocate registers the include roots.
	StageLocate Stage = "locate"
	// StageCompile builds the instruction stream from the entry function.
	StageCompile Stage = "compile"
	// StageEmit renders the stream as assembly text.
	StageEmit Stage = "emit"
	// StageAssemble parses and links the emitted text.
	StageAssemble Stage = "assemble"
	// StageProve executes the program and produces the artifacts.
	StageProve Stage = "prove"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLocate, StageCompile, StageEmit, StageAssemble, StageProve}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusSkipped indicates the stage was not requested.
	StatusSkipped Status = "skipped"
	// StatusError indicates the stage encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a stage.
type Event struct {
	Stage   Stage
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

// Total is the sum over all stages.
func (t Timings) Total() time.Duration { return t.Sum(Stages...) }
