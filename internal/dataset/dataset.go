// Package dataset provides the tabular value passed between pipeline
// stages, plus the CSV and parquet codecs for the stage boundary files.
package dataset

import (
	"os"
	"path/filepath"
)

// Dataset is an in-memory table: an ordered header and string cells.
// An empty cell is a null. Datasets are passed by value between stages;
// a stage that changes rows builds a new Dataset rather than mutating
// its input in place.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// MissingColumns returns the subset of names not present in the header,
// in the order given.
func (d *Dataset) MissingColumns(names []string) []string {
	var missing []string
	for _, name := range names {
		if d.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnsureParentDir creates the parent directory of path if needed, so
// stage writers never fail on a missing data folder.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
