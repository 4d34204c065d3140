package etl

import (
	"errors"
	"fmt"
	"strings"
)

// Stage identifies where in the pipeline a failure occurred.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageValidate  Stage = "validate"
	StageLoad      Stage = "load"
)

// ErrSourceUnavailable marks a raw source that does not exist or cannot
// be read. Fatal to the run.
var ErrSourceUnavailable = errors.New("source unavailable")

// SchemaMismatchError is raised when an input dataset is empty or lacks
// columns the stage requires. Fatal to the run.
type SchemaMismatchError struct {
	Stage   Stage
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s: schema mismatch: empty input dataset", e.Stage)
	}
	return fmt.Sprintf("%s: schema mismatch: missing columns [%s]", e.Stage, strings.Join(e.Missing, ", "))
}

// ValidationError is the gate's rejection of a transformed dataset. It
// is a reported business outcome rather than a crash; the attached
// Report carries the full diagnostic detail.
type ValidationError struct {
	Report *Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Report.FailureSummary())
}

// StageError wraps a stage failure with the stage that raised it, so the
// orchestrator and CLI can name where the run aborted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
