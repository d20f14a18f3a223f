package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/activity"
	"github.com/Sumatoshi-tech/gitpulse/internal/config"
	"github.com/Sumatoshi-tech/gitpulse/internal/history"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
)

func newTopAuthorsCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top-authors",
		Short: "Authors ranked by commit count",
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

			since := time.Time{}

			sinceStr, _ := cmd.Flags().GetString("active-since")
			if sinceStr != "" {
				since, err = parseSince(sinceStr)
				if err != nil {
					return err
				}
			}

			return report.RenderAuthorStats(os.Stdout, format, activity.TopAuthors(ledger, since))
		},
	}

	cmd.Flags().String("active-since", "", "only count commits at or after this instant")
	traversalFlags(cmd)

	return cmd
}

func newAuthorActivityCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author-activity <email>",
		Short: "Commit count and active range for one author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			stat, err := activity.AuthorActivity(ledger, args[0])
			if err != nil {
				if errors.Is(err, activity.ErrUnknownAuthor) {
					return fmt.Errorf("%w: %s %s", config.ErrConfig, err, args[0])
				}

				return err
			}

			return report.RenderAuthorStats(os.Stdout, format, []activity.AuthorStat{stat})
		},
	}

	traversalFlags(cmd)

	return cmd
}

func newFirstCommitsCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "first-commits",
		Short: "Each author's earliest contribution",
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

			return report.RenderFirstCommits(os.Stdout, format, activity.FirstCommits(ledger))
		},
	}

	traversalFlags(cmd)

	return cmd
}

func newCommitTimesCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit-times",
		Short: "Per-author time-of-day commit histogram",
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

			return report.RenderCommitTimes(os.Stdout, format, activity.CommitTimes(ledger))
		},
	}

	traversalFlags(cmd)

	return cmd
}

func newFileContributionsCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file-contributions",
		Short: "Per-file author touch breakdown",
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

			return report.RenderFileContributions(os.Stdout, format, activity.FileContributions(idx))
		},
	}

	traversalFlags(cmd)

	return cmd
}
