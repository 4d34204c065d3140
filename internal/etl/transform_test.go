package etl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moshu0517/etl-pipeline/internal/dataset"
)

func TestTransformDerivesTemporalFeatures(t *testing.T) {
	// 2014-10-21 was a Tuesday.
	in := testDataset([][]string{testRow("1", "14102113")})

	tr := &Transformer{Log: testLogger()}
	out, stats, err := tr.Transform(in)
	require.NoError(t, err)
	require.Equal(t, 1, stats.OutputRows)

	hodIdx := out.ColumnIndex(ColHourOfDay)
	wdIdx := out.ColumnIndex(ColWeekday)
	require.GreaterOrEqual(t, hodIdx, 0)
	require.GreaterOrEqual(t, wdIdx, 0)
	require.Equal(t, "13", out.Rows[0][hodIdx])
	require.Equal(t, "2", out.Rows[0][wdIdx])
}

func TestTransformDropsUnparseableTimestamps(t *testing.T) {
	in := testDataset([][]string{
		testRow("1", "14102100"),
		testRow("2", "not-a-time"),
		testRow("3", "99999999"),
		testRow("4", "14102101"),
	})

	tr := &Transformer{Log: testLogger()}
	out, stats, err := tr.Transform(in)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	require.Equal(t, 2, stats.BadTimestamps)
}

func TestTransformRemovesExactDuplicates(t *testing.T) {
	dup := testRow("1", "14102100")
	in := testDataset([][]string{
		dup,
		testRow("2", "14102100"),
		append([]string(nil), dup...),
		append([]string(nil), dup...),
	})

	tr := &Transformer{Log: testLogger()}
	out, stats, err := tr.Transform(in)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	require.Equal(t, 2, stats.Duplicates)

	// Duplicate-freedom invariant: no two output rows identical.
	seen := map[string]bool{}
	for _, row := range out.Rows {
		key := ""
		for _, cell := range row {
			key += cell + "\x1f"
		}
		require.False(t, seen[key], "duplicate row in output")
		seen[key] = true
	}
}

func TestTransformNormalizesCategoricals(t *testing.T) {
	row := testRow("1", "14102100")
	row[4] = "  NeWs " // site_category
	in := testDataset([][]string{row})

	tr := &Transformer{Log: testLogger()}
	out, _, err := tr.Transform(in)
	require.NoError(t, err)
	require.Equal(t, "news", out.Rows[0][out.ColumnIndex("site_category")])
}

func TestTransformDropsOutOfDomainRows(t *testing.T) {
	bad := testRow("2", "14102100")
	bad[1] = "3" // click outside {0,1}
	worse := testRow("3", "14102100")
	worse[3] = "99" // banner_pos outside [0,7]
	in := testDataset([][]string{testRow("1", "14102100"), bad, worse})

	tr := &Transformer{Log: testLogger()}
	out, stats, err := tr.Transform(in)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	require.Equal(t, 2, stats.OutOfDomain)
}

func TestTransformRowCountNeverGrows(t *testing.T) {
	in := testDataset(sourceRows(50))

	tr := &Transformer{Log: testLogger()}
	out, stats, err := tr.Transform(in)
	require.NoError(t, err)
	require.LessOrEqual(t, out.NumRows(), in.NumRows())
	require.Equal(t, 50, stats.InputRows)
}

func TestTransformEmptyInputIsFatal(t *testing.T) {
	tr := &Transformer{Log: testLogger()}

	_, _, err := tr.Transform(testDataset(nil))
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestTransformMissingColumnsIsFatal(t *testing.T) {
	in := &dataset.Dataset{
		Columns: []string{ColID, ColHour},
		Rows:    [][]string{{"1", "14102100"}},
	}

	tr := &Transformer{Log: testLogger()}
	_, _, err := tr.Transform(in)

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Contains(t, mismatch.Missing, ColClick)
	require.Contains(t, mismatch.Missing, ColBannerPos)
}
