package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/busfactor"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
	"github.com/Sumatoshi-tech/gitpulse/internal/scan"
)

func newBusFactorCommand(g *global) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bus-factor",
		Short: "Ownership concentration per path",
		Long: `Rank paths by their single strongest author's ownership share.

Accurate mode (default) blames every tracked file at HEAD on a bounded
worker pool and attributes each current line to its last-modifying
author. Fast mode (--fast) approximates ownership from touch counts
over the most recent commits, with no blame work.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, format, err := g.setup()
			if err != nil {
				return err
			}

			opts := busfactor.Options{
				Threshold:  cfg.BusFactor.Threshold,
				MinTotal:   cfg.BusFactor.MinTotal,
				MaxCommits: cfg.BusFactor.MaxCommits,
				Threads:    cfg.BusFactor.Threads,
				Depth:      busfactor.NoRollup,
			}

			if cmd.Flags().Changed("threshold") {
				opts.Threshold, _ = cmd.Flags().GetFloat64("threshold")
			}

			if cmd.Flags().Changed("min-total") {
				opts.MinTotal, _ = cmd.Flags().GetInt("min-total")
			}

			if cmd.Flags().Changed("max-commits") {
				opts.MaxCommits, _ = cmd.Flags().GetInt("max-commits")
			}

			if cmd.Flags().Changed("threads") {
				opts.Threads, _ = cmd.Flags().GetInt("threads")
			}

			if cmd.Flags().Changed("depth") {
				opts.Depth, _ = cmd.Flags().GetInt("depth")
			}

			filter := scan.Filter{All: cfg.Scan.All, IncludeExt: cfg.Scan.IncludeExt}

			if cmd.Flags().Changed("all") {
				filter.All, _ = cmd.Flags().GetBool("all")
			}

			if cmd.Flags().Changed("include-ext") {
				extra, _ := cmd.Flags().GetStringSlice("include-ext")
				filter.IncludeExt = append(filter.IncludeExt, extra...)
			}

			fast, _ := cmd.Flags().GetBool("fast")

			result, err := g.runBusFactor(cmd, fast, filter, opts)
			if err != nil {
				return err
			}

			report.LogWarnings(result.Warnings)

			return report.RenderOwnership(os.Stdout, format, result.Rows)
		},
	}

	cmd.Flags().Bool("fast", false, "approximate ownership from touch counts instead of blame")
	cmd.Flags().Float64("threshold", busfactor.DefaultThreshold, "flag paths whose top-author share reaches this")
	cmd.Flags().Int("min-total", busfactor.DefaultMinTotal, "drop paths below this many lines (accurate) or touches (fast)")
	cmd.Flags().Int("threads", 0, "blame worker pool size (0 = available parallelism)")
	cmd.Flags().Int("max-commits", busfactor.DefaultMaxCommits, "fast mode: most recent commits to consider")
	cmd.Flags().Int("depth", busfactor.NoRollup, "roll paths up to the first N directory components (0 = repo root)")
	cmd.Flags().Bool("all", false, "include all tracked files, ignoring the extension allow-list")
	cmd.Flags().StringSlice("include-ext", nil, "extra extensions to include (e.g. proto,graphql)")
	traversalFlags(cmd)

	return cmd
}

// runBusFactor dispatches to the selected ownership strategy. Fast mode
// consumes the ledger; accurate mode works from the current HEAD tree.
func (g *global) runBusFactor(cmd *cobra.Command, fast bool, filter scan.Filter, opts busfactor.Options) (*busfactor.Result, error) {
	if fast {
		loadOpts, err := loadOptions(cmd)
		if err != nil {
			return nil, err
		}

		ledger, err := g.loadLedger(loadOpts)
		if err != nil {
			return nil, err
		}

		result := busfactor.ComputeFast(ledger, opts)
		filterRows(result, filter, opts)

		return result, nil
	}

	repo, err := g.openRepo()
	if err != nil {
		return nil, err
	}
	defer repo.Free()

	files, err := busfactor.ListTrackedFiles(repo)
	if err != nil {
		return nil, err
	}

	return busfactor.ComputeAccurate(cmd.Context(), g.repoPath, filter.Apply(files), opts), nil
}

// filterRows applies the extension filter to fast-mode output. Fast mode
// aggregates from the ledger, so filtering happens on result paths; rollup
// keys are directories and pass through untouched.
func filterRows(result *busfactor.Result, filter scan.Filter, opts busfactor.Options) {
	if filter.All || opts.Depth != busfactor.NoRollup {
		return
	}

	kept := result.Rows[:0]

	for _, row := range result.Rows {
		if filter.Allow(row.Path) {
			kept = append(kept, row)
		}
	}

	result.Rows = kept
}
