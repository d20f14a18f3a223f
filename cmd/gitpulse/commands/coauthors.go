package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/coauthors"
	"github.com/Sumatoshi-tech/gitpulse/internal/history"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
)

func newCoauthorsCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "co-authors",
		Short: "Author pairs that touched the same files",
		Long: `Count, for every pair of authors, how many distinct files both of
them have touched. High counts indicate shared ownership; isolated
authors never appear.`,
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

			idx := history.NewPathIndex(ledger)

			return report.RenderCoauthors(os.Stdout, format, coauthors.Compute(idx))
		},
	}

	traversalFlags(cmd)

	return cmd
}
