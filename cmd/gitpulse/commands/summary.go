package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/summary"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
)

func newSummaryCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Repo-wide descriptive statistics",
		Long: `Aggregate the commit history into descriptive statistics: counts,
date ranges, idle gaps, momentum, concentration indices (HHI, Gini,
core size), weekday/hour buckets, merge/revert rates and message
hygiene. "now" is the newest commit timestamp, so results are
reproducible for archived repositories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, format, err := g.setup()
			if err != nil {
				return err
			}

			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			ledger, err := g.loadLedger(opts)
			if err != nil {
				return err
			}

			rep, err := summary.Compute(ledger)
			if err != nil {
				return err
			}

			return report.RenderSummary(os.Stdout, format, rep)
		},
	}

	traversalFlags(cmd)

	return cmd
}
