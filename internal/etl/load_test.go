package etl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/internal/dataset"
)

func TestLoadPersistsLocallyWithoutUploadConfig(t *testing.T) {
	ds := transformedDataset()
	out := filepath.Join(t.TempDir(), "curated.parquet")

	loader := &Loader{Log: testLogger()}
	res, err := loader.Load(context.Background(), ds, out)
	require.NoError(t, err)
	require.Equal(t, out, res.Path)
	require.Equal(t, ds.NumRows(), res.Rows)
	require.Equal(t, ds.NumCols(), res.Columns)
	require.Equal(t, UploadSkipped, res.Upload.Status)
	require.NotEmpty(t, res.Upload.Reason)

	// Round-trip: the curated artifact reproduces row count and columns.
	back, err := dataset.ReadParquet(out)
	require.NoError(t, err)
	require.Equal(t, ds.NumRows(), back.NumRows())
	require.Equal(t, ds.NumCols(), back.NumCols())
}

func TestLoadSkipsUploadOnPartialCredentials(t *testing.T) {
	ds := transformedDataset()
	out := filepath.Join(t.TempDir(), "curated.parquet")

	// Access key present, secret absent: treated as upload disabled.
	loader := &Loader{
		S3: config.S3Settings{
			Endpoint:  "s3.amazonaws.com",
			AccessKey: "AKIAEXAMPLE",
			Region:    "us-east-1",
			Bucket:    "etl-demo-bucket",
			Prefix:    "curated/",
		},
		Log: testLogger(),
	}
	res, err := loader.Load(context.Background(), ds, out)
	require.NoError(t, err)
	require.Equal(t, UploadSkipped, res.Upload.Status)
	require.FileExists(t, out)
}

func TestProbeUploadCapability(t *testing.T) {
	tests := []struct {
		name      string
		s3        config.S3Settings
		available bool
	}{
		{
			name:      "nothing configured",
			s3:        config.S3Settings{Endpoint: "s3.amazonaws.com"},
			available: false,
		},
		{
			name: "missing prefix",
			s3: config.S3Settings{
				Endpoint: "s3.amazonaws.com", AccessKey: "k", SecretKey: "s",
				Region: "us-east-1", Bucket: "b",
			},
			available: false,
		},
		{
			name: "complete",
			s3: config.S3Settings{
				Endpoint: "s3.amazonaws.com", AccessKey: "k", SecretKey: "s",
				Region: "us-east-1", Bucket: "b", Prefix: "curated/",
			},
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &Loader{S3: tt.s3, Log: testLogger()}
			capability := loader.probeUpload()
			require.Equal(t, tt.available, capability.Available())
			if !tt.available {
				require.NotEmpty(t, capability.Reason)
			}
		})
	}
}
