package etl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/internal/store"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

// RunResult summarizes a completed pipeline invocation.
type RunResult struct {
	RunID   string
	Stats   *TransformStats
	Report  *Report
	Curated *CuratedResult
}

// Pipeline sequences Extract -> Transform -> Validate -> Load over the
// configured stage boundary files. Stages run strictly in order, single
// threaded; the first hard failure aborts the run and later stages
// never execute. A failing validation verdict surfaces as a
// *ValidationError inside a *StageError, so callers can distinguish
// "the gate rejected the data" from "a stage crashed".
type Pipeline struct {
	Config *config.Config
	Log    *logger.Logger
	// Runs is the optional run ledger; nil disables recording.
	Runs *store.RunStore
	// ExtractSeed fixes sampling for reproducible runs; zero means random.
	ExtractSeed int64
}

// New returns a Pipeline over cfg logging to log.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{Config: cfg, Log: log}
}

// Run executes all four stages. On success the curated artifact exists
// and the returned result carries the full stage telemetry; on failure
// the returned error is a *StageError naming the aborted stage.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	res := &RunResult{RunID: uuid.NewString()}
	p.Log.Infof("pipeline: starting run %s", res.RunID)
	p.recordBegin(res.RunID)

	if err := p.Config.EnsureDirs(); err != nil {
		return res, p.fail(res.RunID, StageExtract, fmt.Errorf("ensure data dirs: %w", err))
	}

	// Stage 1: Extract.
	ext := &Extractor{SampleRows: p.Config.SampleRows, Seed: p.ExtractSeed, Log: p.Log}
	sample, err := ext.Extract(ctx, p.Config.RawFile, p.Config.SampleFile)
	if err != nil {
		return res, p.fail(res.RunID, StageExtract, err)
	}

	// Stage 2: Transform.
	tr := &Transformer{Log: p.Log}
	staged, stats, err := tr.Transform(sample)
	if err != nil {
		return res, p.fail(res.RunID, StageTransform, err)
	}
	res.Stats = stats
	if err := dataset.WriteCSV(staged, p.Config.StagedFile); err != nil {
		return res, p.fail(res.RunID, StageTransform, fmt.Errorf("write staged dataset: %w", err))
	}
	p.Log.Infof("pipeline: staged dataset written to %s", p.Config.StagedFile)

	// Stage 3: Validate. The gate must pass before Load may run.
	res.Report = Validator{}.Validate(staged)
	res.Report.Log(p.Log)
	if !res.Report.Passed() {
		return res, p.fail(res.RunID, StageValidate, &ValidationError{Report: res.Report})
	}

	// Stage 4: Load.
	loader := &Loader{S3: p.Config.S3, Log: p.Log}
	curated, err := loader.Load(ctx, staged, p.Config.CuratedFile)
	if err != nil {
		return res, p.fail(res.RunID, StageLoad, err)
	}
	res.Curated = curated

	p.recordFinish(res.RunID, store.StatusSucceeded, StageLoad, "")
	p.Log.Infof("pipeline: run %s completed successfully (%d rows curated)", res.RunID, curated.Rows)
	return res, nil
}

func (p *Pipeline) fail(runID string, stage Stage, err error) error {
	serr := &StageError{Stage: stage, Err: err}
	p.recordFinish(runID, store.StatusFailed, stage, serr.Error())
	p.Log.Errorf("pipeline: run %s aborted at %s: %v", runID, stage, err)
	return serr
}

// Ledger writes are best effort: the ledger observes runs, it must
// never abort one.
func (p *Pipeline) recordBegin(runID string) {
	if p.Runs == nil {
		return
	}
	if err := p.Runs.Begin(runID); err != nil {
		p.Log.Warnf("pipeline: could not record run start: %v", err)
	}
}

func (p *Pipeline) recordFinish(runID, status string, stage Stage, errText string) {
	if p.Runs == nil {
		return
	}
	if err := p.Runs.Finish(runID, status, string(stage), errText); err != nil {
		p.Log.Warnf("pipeline: could not record run finish: %v", err)
	}
}
