// Package config holds all process-wide settings: the data directory
// layout, sampling knobs, and the optional S3 upload settings. It is
// loaded once from environment variables (populated from .env in main)
// and passed by reference into every stage.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultSampleRows bounds how much of the raw source a run materializes.
	DefaultSampleRows = 10000

	defaultDataDir  = "data"
	defaultEndpoint = "s3.amazonaws.com"
)

// S3Settings configure the optional curated-artifact upload. Upload is
// attempted only when AccessKey, SecretKey, Region, Bucket and Prefix
// are all present; any subset missing means the upload is disabled.
type S3Settings struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Prefix    string
}

// Complete reports whether every required upload setting is present.
func (s S3Settings) Complete() bool {
	return s.AccessKey != "" && s.SecretKey != "" && s.Region != "" &&
		s.Bucket != "" && s.Prefix != ""
}

// Config is the process-wide configuration for a pipeline run.
type Config struct {
	DataDir    string
	RawDir     string
	SamplesDir string
	StagedDir  string
	CuratedDir string

	// Default stage boundary files. Each stage can also be pointed at
	// explicit paths from the CLI.
	RawFile     string
	SampleFile  string
	StagedFile  string
	CuratedFile string

	SampleRows int
	RunDBPath  string

	S3 S3Settings
}

// Load builds a Config from environment variables, falling back to
// defaults for anything unset.
func Load() *Config {
	dataDir := envOr("DATA_DIR", defaultDataDir)

	cfg := &Config{
		DataDir:    dataDir,
		RawDir:     filepath.Join(dataDir, "raw"),
		SamplesDir: filepath.Join(dataDir, "samples"),
		StagedDir:  filepath.Join(dataDir, "staged"),
		CuratedDir: filepath.Join(dataDir, "curated"),
		SampleRows: DefaultSampleRows,
		S3: S3Settings{
			Endpoint:  envOr("ETL_S3_ENDPOINT", defaultEndpoint),
			AccessKey: os.Getenv("ETL_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("ETL_S3_SECRET_KEY"),
			Region:    os.Getenv("ETL_S3_REGION"),
			Bucket:    os.Getenv("ETL_S3_BUCKET"),
			Prefix:    os.Getenv("ETL_S3_PREFIX"),
		},
	}

	cfg.RawFile = envOr("RAW_FILE", filepath.Join(cfg.RawDir, "train.gz"))
	cfg.SampleFile = filepath.Join(cfg.SamplesDir, "train_sample.csv")
	cfg.StagedFile = filepath.Join(cfg.StagedDir, "train_transformed.csv")
	cfg.CuratedFile = filepath.Join(cfg.CuratedDir, "train_curated.parquet")
	cfg.RunDBPath = envOr("ETL_RUN_DB", filepath.Join(dataDir, "runs.db"))

	if v := os.Getenv("SAMPLE_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRows = n
		}
	}

	return cfg
}

// EnsureDirs creates the standard data directories if they don't exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.RawDir, c.SamplesDir, c.StagedDir, c.CuratedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
