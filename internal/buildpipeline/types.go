package buildpipeline

import (
	"fmt"
	"strings"
	"time"
)

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads and normalises the source file.
	StageLoad Stage = "load"
	// StageParse builds the symbol table and the instruction tree.
	StageParse Stage = "parse"
	// StageTranslate renders main.rs in memory.
	StageTranslate Stage = "translate"
	// StageEmit recreates the output directory and writes the crate.
	StageEmit Stage = "emit"
	// StageFormat runs the external formatter.
	StageFormat Stage = "format"
)

// Stages lists the pipeline stages in execution order.
var Stages = stageOrder[:]

var stageOrder = [...]Stage{StageLoad, StageParse, StageTranslate, StageEmit, StageFormat}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusSkipped marks a stage turned off by settings.
	StatusSkipped Status = "skipped"
	// StatusWarning marks a stage that failed without failing the build.
	StatusWarning Status = "warning"
	// StatusError indicates the stage failed the build.
	StatusError Status = "error"
)

// Event reports progress of one stage for File.
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

// Finished reports whether the stage will not change status again.
func (s Status) Finished() bool {
	switch s {
	case StatusDone, StatusSkipped, StatusWarning, StatusError:
		return true
	}
	return false
}

func stageIndex(stage Stage) int {
	for i, st := range Stages {
		if st == stage {
			return i
		}
	}
	return -1
}

// Timings holds the wall time of every stage that ran.
type Timings struct {
	durations [len(stageOrder)]time.Duration
	recorded  [len(stageOrder)]bool
}

// Set stores a duration for the given stage; unknown stages are ignored.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	i := stageIndex(stage)
	if t == nil || i < 0 {
		return
	}
	t.durations[i] = dur
	t.recorded[i] = true
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	i := stageIndex(stage)
	return i >= 0 && t.recorded[i]
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if i := stageIndex(stage); i >= 0 {
		return t.durations[i]
	}
	return 0
}

// Sum returns the sum of durations across the provided stages; no
// arguments means every stage.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.Duration(stage)
	}
	return total
}

// String renders "load 0.12ms, parse 0.40ms, ... (total 0.90ms)" over the
// recorded stages.
func (t Timings) String() string {
	var sb strings.Builder
	for i, stage := range Stages {
		if !t.recorded[i] {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %.2fms", stage, millis(t.durations[i]))
	}
	if sb.Len() == 0 {
		return "no stages ran"
	}
	fmt.Fprintf(&sb, " (total %.2fms)", millis(t.Sum()))
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
