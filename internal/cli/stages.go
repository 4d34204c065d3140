package cli

import (
	"github.com/spf13/cobra"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/internal/etl"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

// Stage commands default to the configured boundary files so each one
// can be rerun standalone once the previous stage's output exists.

func newExtractCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var in, out string
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Sample the raw compressed source into the samples directory",
		RunE: func(c *cobra.Command, args []string) error {
			if err := cfg.EnsureDirs(); err != nil {
				return err
			}
			ext := &etl.Extractor{SampleRows: rows, Seed: seed, Log: log}
			_, err := ext.Extract(c.Context(), in, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", cfg.RawFile, "Raw gzip CSV source")
	cmd.Flags().StringVarP(&out, "out", "o", cfg.SampleFile, "Sample CSV destination")
	cmd.Flags().IntVarP(&rows, "rows", "n", cfg.SampleRows, "Sample size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Sampling seed for reproducible runs")

	return cmd
}

func newTransformCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Clean and enrich a sample CSV into the staged directory",
		RunE: func(c *cobra.Command, args []string) error {
			ds, err := dataset.ReadCSV(in)
			if err != nil {
				return err
			}
			tr := &etl.Transformer{Log: log}
			staged, _, err := tr.Transform(ds)
			if err != nil {
				return err
			}
			if err := dataset.WriteCSV(staged, out); err != nil {
				return err
			}
			log.Infof("transform: saved staged dataset to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", cfg.SampleFile, "Sample CSV input")
	cmd.Flags().StringVarP(&out, "out", "o", cfg.StagedFile, "Staged CSV destination")

	return cmd
}

func newValidateCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the data-quality checks against a staged CSV",
		RunE: func(c *cobra.Command, args []string) error {
			ds, err := dataset.ReadCSV(in)
			if err != nil {
				return err
			}
			report := etl.Validator{}.Validate(ds)
			report.Log(log)
			if !report.Passed() {
				return &etl.ValidationError{Report: report}
			}
			log.Infof("validate: all checks passed over %d rows", report.RowCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", cfg.StagedFile, "Staged CSV input")

	return cmd
}

func newLoadCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Persist a staged CSV as curated parquet, with optional S3 upload",
		RunE: func(c *cobra.Command, args []string) error {
			ds, err := dataset.ReadCSV(in)
			if err != nil {
				return err
			}
			loader := &etl.Loader{S3: cfg.S3, Log: log}
			_, err = loader.Load(c.Context(), ds, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", cfg.StagedFile, "Staged CSV input")
	cmd.Flags().StringVarP(&out, "out", "o", cfg.CuratedFile, "Curated parquet destination")

	return cmd
}
