package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/churn"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
)

func newChurnCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Windowed, decay-weighted change volume per path",
		Long: `Rank paths by recent change volume. Each commit inside the trailing
window contributes (adds+dels) scaled by a linear decay weight: 1.0 at
the newest commit, 0.0 at the window boundary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, format, err := g.setup()
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

			churnOpts := churn.Options{
				WindowDays: cfg.Churn.WindowDays,
				Depth:      churn.NoRollup,
				MinTotal:   cfg.Churn.MinTotal,
			}

			if cmd.Flags().Changed("window") {
				churnOpts.WindowDays, _ = cmd.Flags().GetInt("window")
			}

			if cmd.Flags().Changed("depth") {
				churnOpts.Depth, _ = cmd.Flags().GetInt("depth")
			}

			if cmd.Flags().Changed("min-total") {
				churnOpts.MinTotal, _ = cmd.Flags().GetInt("min-total")
			}

			return report.RenderChurn(os.Stdout, format, churn.Compute(ledger, churnOpts))
		},
	}

	cmd.Flags().Int("window", 0, "trailing window in days (default from config, 30)")
	cmd.Flags().Int("depth", churn.NoRollup, "roll paths up to the first N directory components (0 = repo root)")
	cmd.Flags().Int("min-total", 0, "drop paths below this many unweighted changed lines or touches")
	traversalFlags(cmd)

	return cmd
}
