package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/busfactor"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
)

func newBlameSummaryCommand(g *global) *cobra.Command {
	return &cobra.Command{
		Use:   "blame-summary <path>",
		Short: "Per-author owned-line breakdown for one file",
		Long: `Blame a single file at HEAD and break its current lines down by
the author who last modified each of them. The path is relative to the
repository root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, format, err := g.setup()
			if err != nil {
				return err
			}

			repo, err := g.openRepo()
			if err != nil {
				return err
			}
			defer repo.Free()

			rows, err := busfactor.BlameSummary(repo, args[0])
			if err != nil {
				return err
			}

			return report.RenderBlameSummary(os.Stdout, format, rows)
		},
	}
}
