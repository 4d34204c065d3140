package etl

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

var testColumns = []string{
	ColID, ColClick, ColHour, ColBannerPos,
	"site_category", ColDeviceType, ColDeviceConnType,
}

// testRow builds a valid row for testColumns with the given id and hour.
func testRow(id, hour string) []string {
	return []string{id, "0", hour, "1", "news", "1", "0"}
}

func testLogger() *logger.Logger {
	return logger.New(io.Discard)
}

// writeGzipCSV writes header+rows as a gzip CSV file and returns its path.
func writeGzipCSV(t *testing.T, dir string, header []string, rows [][]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	w := csv.NewWriter(gz)
	require.NoError(t, w.Write(header))
	for _, row := range rows {
		require.NoError(t, w.Write(row))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, gz.Close())

	path := filepath.Join(dir, "train.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func testDataset(rows [][]string) *dataset.Dataset {
	return &dataset.Dataset{Columns: testColumns, Rows: rows}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
