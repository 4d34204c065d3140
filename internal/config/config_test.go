package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, DefaultSampleRows, cfg.SampleRows)
	require.Equal(t, filepath.Join("data", "raw"), cfg.RawDir)
	require.Equal(t, filepath.Join("data", "raw", "train.gz"), cfg.RawFile)
	require.Equal(t, filepath.Join("data", "curated", "train_curated.parquet"), cfg.CuratedFile)
	require.False(t, cfg.S3.Complete())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/etl-data")
	t.Setenv("SAMPLE_ROWS", "250")

	cfg := Load()

	require.Equal(t, 250, cfg.SampleRows)
	require.Equal(t, filepath.Join("/tmp/etl-data", "samples"), cfg.SamplesDir)
}

func TestLoadIgnoresInvalidSampleRows(t *testing.T) {
	t.Setenv("SAMPLE_ROWS", "not-a-number")

	cfg := Load()
	require.Equal(t, DefaultSampleRows, cfg.SampleRows)
}

func TestS3SettingsComplete(t *testing.T) {
	s3 := S3Settings{
		Endpoint: "s3.amazonaws.com", AccessKey: "k", SecretKey: "s",
		Region: "us-east-1", Bucket: "b", Prefix: "curated/",
	}
	require.True(t, s3.Complete())

	partial := s3
	partial.SecretKey = ""
	require.False(t, partial.Complete())
}

func TestEnsureDirs(t *testing.T) {
	t.Setenv("DATA_DIR", filepath.Join(t.TempDir(), "data"))
	cfg := Load()

	require.NoError(t, cfg.EnsureDirs())
	require.DirExists(t, cfg.RawDir)
	require.DirExists(t, cfg.CuratedDir)
}
