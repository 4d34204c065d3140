package etl

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moshu0517/etl-pipeline/internal/dataset"
)

func sourceRows(n int) [][]string {
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, testRow(fmt.Sprintf("%d", 1000+i), "14102100"))
	}
	return rows
}

func TestExtractSampleSize(t *testing.T) {
	dir := t.TempDir()
	src := writeGzipCSV(t, dir, testColumns, sourceRows(100))
	out := filepath.Join(dir, "sample.csv")

	ext := &Extractor{SampleRows: 10, Seed: 1, Log: testLogger()}
	ds, err := ext.Extract(context.Background(), src, out)
	require.NoError(t, err)
	require.Equal(t, 10, ds.NumRows())
	require.Equal(t, testColumns, ds.Columns)

	// The side-effect sample file matches the returned dataset.
	onDisk, err := dataset.ReadCSV(out)
	require.NoError(t, err)
	require.Equal(t, ds.Rows, onDisk.Rows)
}

func TestExtractSampleLargerThanSource(t *testing.T) {
	dir := t.TempDir()
	src := writeGzipCSV(t, dir, testColumns, sourceRows(7))

	ext := &Extractor{SampleRows: 50, Seed: 1, Log: testLogger()}
	ds, err := ext.Extract(context.Background(), src, filepath.Join(dir, "sample.csv"))
	require.NoError(t, err)
	require.Equal(t, 7, ds.NumRows())
}

func TestExtractDeterministicWithSeed(t *testing.T) {
	dir := t.TempDir()
	src := writeGzipCSV(t, dir, testColumns, sourceRows(200))

	first := &Extractor{SampleRows: 25, Seed: 42, Log: testLogger()}
	a, err := first.Extract(context.Background(), src, filepath.Join(dir, "a.csv"))
	require.NoError(t, err)

	second := &Extractor{SampleRows: 25, Seed: 42, Log: testLogger()}
	b, err := second.Extract(context.Background(), src, filepath.Join(dir, "b.csv"))
	require.NoError(t, err)

	require.Equal(t, a.Rows, b.Rows)
}

func TestExtractMissingSource(t *testing.T) {
	dir := t.TempDir()

	ext := &Extractor{SampleRows: 10, Log: testLogger()}
	_, err := ext.Extract(context.Background(), filepath.Join(dir, "absent.gz"), filepath.Join(dir, "sample.csv"))
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestExtractCorruptSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bogus.gz")
	require.NoError(t, writeFile(src, "not gzip data"))

	ext := &Extractor{SampleRows: 10, Log: testLogger()}
	_, err := ext.Extract(context.Background(), src, filepath.Join(dir, "sample.csv"))
	require.ErrorIs(t, err, ErrSourceUnavailable)
}
