package etl

import (
	"fmt"
	"strings"

	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

const duplicateSampleLimit = 5

// SchemaResult reports whether every required column is present.
type SchemaResult struct {
	Passed         bool
	MissingColumns []string
}

// CompletenessResult reports null counts for the required-non-null
// columns. Only columns with at least one null appear in NullCounts.
type CompletenessResult struct {
	Passed     bool
	NullCounts map[string]int
}

// UniquenessResult reports duplicate identifier values.
type UniquenessResult struct {
	Passed         bool
	DuplicateCount int
	SampleIDs      []string
}

// Report is the gate's verdict over a transformed dataset. The three
// checks are independent, so one run surfaces every violated condition
// at once.
type Report struct {
	RowCount     int
	Schema       SchemaResult
	Completeness CompletenessResult
	Uniqueness   UniquenessResult
}

// Passed combines the three checks with logical AND.
func (r *Report) Passed() bool {
	return r.Schema.Passed && r.Completeness.Passed && r.Uniqueness.Passed
}

// FailureSummary renders the failed checks on one line for error text.
func (r *Report) FailureSummary() string {
	var parts []string
	if !r.Schema.Passed {
		parts = append(parts, fmt.Sprintf("schema: missing columns [%s]", strings.Join(r.Schema.MissingColumns, ", ")))
	}
	if !r.Completeness.Passed {
		parts = append(parts, fmt.Sprintf("completeness: null counts %v", r.Completeness.NullCounts))
	}
	if !r.Uniqueness.Passed {
		parts = append(parts, fmt.Sprintf("uniqueness: %d duplicated ids (e.g. %s)",
			r.Uniqueness.DuplicateCount, strings.Join(r.Uniqueness.SampleIDs, ", ")))
	}
	if len(parts) == 0 {
		return "all checks passed"
	}
	return strings.Join(parts, "; ")
}

// Log writes the per-check outcomes to the run's log stream.
func (r *Report) Log(l *logger.Logger) {
	if r.Schema.Passed {
		l.Infof("validate: schema check passed, all required columns present")
	} else {
		l.Warnf("validate: schema check failed, missing columns: %s", strings.Join(r.Schema.MissingColumns, ", "))
	}
	if r.Completeness.Passed {
		l.Infof("validate: completeness check passed, no nulls in required columns")
	} else {
		for col, n := range r.Completeness.NullCounts {
			l.Warnf("validate: completeness check failed, column %s has %d nulls", col, n)
		}
	}
	if r.Uniqueness.Passed {
		l.Infof("validate: uniqueness check passed, all ids unique")
	} else {
		l.Warnf("validate: uniqueness check failed, %d duplicated ids (e.g. %s)",
			r.Uniqueness.DuplicateCount, strings.Join(r.Uniqueness.SampleIDs, ", "))
	}
}

// Validator is the gate between Transform and Load. Validate is a pure
// function of the dataset: it never mutates its input and builds a
// fresh Report on every call.
type Validator struct{}

// Validate runs the schema, completeness and uniqueness checks.
func (Validator) Validate(ds *dataset.Dataset) *Report {
	r := &Report{RowCount: ds.NumRows()}
	r.Schema = checkSchema(ds)
	r.Completeness = checkCompleteness(ds)
	r.Uniqueness = checkUniqueness(ds)
	return r
}

func checkSchema(ds *dataset.Dataset) SchemaResult {
	missing := ds.MissingColumns(requiredColumns)
	return SchemaResult{Passed: len(missing) == 0, MissingColumns: missing}
}

func checkCompleteness(ds *dataset.Dataset) CompletenessResult {
	counts := make(map[string]int)
	for _, col := range nonNullColumns {
		idx := ds.ColumnIndex(col)
		if idx < 0 {
			// Absence is the schema check's finding, not a null count.
			continue
		}
		for _, row := range ds.Rows {
			if idx >= len(row) || row[idx] == "" {
				counts[col]++
			}
		}
	}
	return CompletenessResult{Passed: len(counts) == 0, NullCounts: counts}
}

func checkUniqueness(ds *dataset.Dataset) UniquenessResult {
	idx := ds.ColumnIndex(ColID)
	if idx < 0 {
		return UniquenessResult{Passed: true}
	}

	seen := make(map[string]bool, ds.NumRows())
	res := UniquenessResult{}
	for _, row := range ds.Rows {
		id := row[idx]
		if seen[id] {
			res.DuplicateCount++
			if len(res.SampleIDs) < duplicateSampleLimit {
				res.SampleIDs = append(res.SampleIDs, id)
			}
			continue
		}
		seen[id] = true
	}
	res.Passed = res.DuplicateCount == 0
	return res
}
