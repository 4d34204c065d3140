package cli

import (
	"github.com/spf13/cobra"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/internal/etl"
	"github.com/moshu0517/etl-pipeline/internal/store"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

type runOptions struct {
	SampleRows int
	Seed       int64
}

func newRunCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full Extract -> Transform -> Validate -> Load pipeline",
		RunE: func(c *cobra.Command, args []string) error {
			if opts.SampleRows > 0 {
				cfg.SampleRows = opts.SampleRows
			}

			p := etl.New(cfg, log)
			p.ExtractSeed = opts.Seed

			// The run ledger is ancillary; a broken ledger must not
			// block the pipeline.
			if runs, err := store.Open(cfg.RunDBPath); err != nil {
				log.Warnf("run ledger unavailable: %v", err)
			} else {
				p.Runs = runs
				defer runs.Close()
			}

			_, err := p.Run(c.Context())
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.SampleRows, "rows", "n", 0, "Sample size (default from SAMPLE_ROWS)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Sampling seed for reproducible runs")

	return cmd
}

func newRunsCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded pipeline runs",
		RunE: func(c *cobra.Command, args []string) error {
			runs, err := store.Open(cfg.RunDBPath)
			if err != nil {
				return err
			}
			defer runs.Close()

			entries, err := runs.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				log.Infof("no recorded runs")
				return nil
			}
			for _, r := range entries {
				if r.Error != "" {
					log.Infof("%s  %-9s stage=%-9s started=%s  %s",
						r.ID, r.Status, r.Stage, r.StartedAt.Format("2006-01-02 15:04:05"), r.Error)
				} else {
					log.Infof("%s  %-9s stage=%-9s started=%s",
						r.ID, r.Status, r.Stage, r.StartedAt.Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		},
	}
}
