// Package cli wires the pipeline stages to the command line using
// Cobra. Each stage is independently invocable against its expected
// on-disk input; `run` chains all four.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

// NewRootCmd builds the root command. The configuration and log handle
// are constructed once in main and passed down into every stage.
func NewRootCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "etl",
		Short: "Batch pipeline that curates a compressed click-log dataset",
		Long: `etl samples a gzip-compressed click-log source, cleans and enriches
the sample, gates it behind data-quality checks, and persists the
curated result as parquet with an optional S3 upload.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(newRunCmd(cfg, log))
	rootCmd.AddCommand(newExtractCmd(cfg, log))
	rootCmd.AddCommand(newTransformCmd(cfg, log))
	rootCmd.AddCommand(newValidateCmd(cfg, log))
	rootCmd.AddCommand(newLoadCmd(cfg, log))
	rootCmd.AddCommand(newRunsCmd(cfg, log))

	return rootCmd
}
