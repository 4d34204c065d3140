package etl

import (
	"strconv"
	"strings"
	"time"

	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

// TransformStats is the row-count telemetry of one transformation.
type TransformStats struct {
	InputRows     int
	OutputRows    int
	BadTimestamps int
	Duplicates    int
	OutOfDomain   int
}

// Transformer cleans a sample dataset and derives the temporal feature
// columns. Steps run in a fixed order and each one drops rows rather
// than imputing values:
//
//  1. parse the hour field, dropping unparseable rows
//  2. derive hour_of_day and weekday
//  3. normalize categorical columns to trimmed lowercase
//  4. drop exact-duplicate rows, first occurrence kept
//  5. drop rows with values outside the allowed domains
type Transformer struct {
	Log *logger.Logger
}

// Transform returns a new dataset; the input is never mutated. An empty
// input or one missing required columns is a fatal precondition
// violation.
func (t *Transformer) Transform(in *dataset.Dataset) (*dataset.Dataset, *TransformStats, error) {
	if in == nil || in.NumRows() == 0 {
		return nil, nil, &SchemaMismatchError{Stage: StageTransform}
	}
	if missing := in.MissingColumns(transformInputColumns); len(missing) > 0 {
		return nil, nil, &SchemaMismatchError{Stage: StageTransform, Missing: missing}
	}

	stats := &TransformStats{InputRows: in.NumRows()}
	t.Log.Infof("transform: %d rows, %d columns in", in.NumRows(), in.NumCols())

	cols := make([]string, 0, in.NumCols()+2)
	cols = append(cols, in.Columns...)
	cols = append(cols, ColHourOfDay, ColWeekday)

	hourIdx := in.ColumnIndex(ColHour)
	catIdx := make([]int, 0, len(categoricalColumns))
	for _, c := range categoricalColumns {
		if i := in.ColumnIndex(c); i >= 0 {
			catIdx = append(catIdx, i)
		}
	}

	// Steps 1-3: parse timestamps, derive features, normalize.
	rows := make([][]string, 0, in.NumRows())
	for _, src := range in.Rows {
		ts, err := time.Parse(hourLayout, src[hourIdx])
		if err != nil {
			stats.BadTimestamps++
			continue
		}

		row := make([]string, len(cols))
		copy(row, src)
		row[len(cols)-2] = strconv.Itoa(ts.Hour())
		row[len(cols)-1] = strconv.Itoa(int(ts.Weekday()))
		for _, i := range catIdx {
			row[i] = strings.ToLower(strings.TrimSpace(row[i]))
		}
		rows = append(rows, row)
	}
	t.Log.Infof("transform: dropped %d rows with unparseable timestamps", stats.BadTimestamps)

	// Step 4: exact-duplicate removal.
	seen := make(map[string]struct{}, len(rows))
	deduped := rows[:0]
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}
	t.Log.Infof("transform: removed %d duplicate rows", stats.Duplicates)

	// Step 5: domain filter.
	out := &dataset.Dataset{Columns: cols}
	clickIdx := in.ColumnIndex(ColClick)
	bannerIdx := in.ColumnIndex(ColBannerPos)
	devTypeIdx := in.ColumnIndex(ColDeviceType)
	devConnIdx := in.ColumnIndex(ColDeviceConnType)
	for _, row := range deduped {
		if !intInRange(row[clickIdx], 0, 1) ||
			!intInRange(row[bannerIdx], 0, 7) ||
			!intInRange(row[devTypeIdx], 0, 5) ||
			!intInRange(row[devConnIdx], 0, 5) {
			stats.OutOfDomain++
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	t.Log.Infof("transform: dropped %d rows with out-of-domain values", stats.OutOfDomain)

	stats.OutputRows = out.NumRows()
	t.Log.Infof("transform: %d rows, %d columns out", out.NumRows(), out.NumCols())
	return out, stats, nil
}

func intInRange(s string, lo, hi int) bool {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return v >= lo && v <= hi
}
