// Package commands implements CLI command handlers for gitpulse.
package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/internal/config"
	"github.com/Sumatoshi-tech/gitpulse/internal/history"
	"github.com/Sumatoshi-tech/gitpulse/internal/observability"
	"github.com/Sumatoshi-tech/gitpulse/internal/report"
	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
)

// Version metadata, set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// ErrInvalidTimeFormat is returned when a --since value cannot be parsed.
var ErrInvalidTimeFormat = errors.New("cannot parse time")

// global holds the persistent flags shared by every subcommand.
type global struct {
	repoPath   string
	format     string
	configPath string
	verbose    bool
	logJSON    bool
}

// NewRootCommand builds the gitpulse command tree.
func NewRootCommand() *cobra.Command {
	g := &global{}

	root := &cobra.Command{
		Use:   "gitpulse",
		Short: "Authorship, volatility and ownership-risk metrics for git history",
		Long: `gitpulse turns a repository's commit history into team metrics:
descriptive statistics, decay-weighted churn, ownership concentration
(bus factor) and co-authorship pairing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.repoPath, "repo", "r", ".", "path to the git repository")
	root.PersistentFlags().StringVarP(&g.format, "format", "f", "table", "output format (table, json, yaml)")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default: .gitpulse.yaml in CWD or $HOME)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "JSON-formatted logs")

	root.AddCommand(
		newSummaryCommand(g),
		newChurnCommand(g),
		newBusFactorCommand(g),
		newBlameSummaryCommand(g),
		newCoauthorsCommand(g),
		newTopAuthorsCommand(g),
		newAuthorActivityCommand(g),
		newFirstCommitsCommand(g),
		newCommitTimesCommand(g),
		newFileContributionsCommand(g),
		versionCommand(),
	)

	return root
}

// setup loads configuration, installs logging and validates the output
// format. Called at the start of every subcommand run.
func (g *global) setup() (*config.Config, report.Format, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, "", err
	}

	level := cfg.Log.Level
	if g.verbose {
		level = "debug"
	}

	observability.SetupLogging(os.Stderr, level, g.logJSON || cfg.Log.JSON)

	format, err := report.ParseFormat(g.format)
	if err != nil {
		return nil, "", err
	}

	return cfg, format, nil
}

// openRepo discovers the repository at the --repo path.
func (g *global) openRepo() (*gitlib.Repository, error) {
	repo, err := gitlib.DiscoverRepository(g.repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", history.ErrRepository, err)
	}

	return repo, nil
}

// loadLedger opens the repository and performs the single history traversal.
// Per-commit warnings are logged; the caller still gets the full ledger.
func (g *global) loadLedger(opts history.LoadOptions) (*history.Ledger, error) {
	repo, err := g.openRepo()
	if err != nil {
		return nil, err
	}
	defer repo.Free()

	ledger, err := history.Load(repo, opts)
	if err != nil {
		return nil, err
	}

	report.LogWarnings(ledger.Warnings)

	return ledger, nil
}

// traversalFlags registers the flags bounding the history traversal.
func traversalFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "max commits to traverse (0 = no limit)")
	cmd.Flags().String("since", "", "ignore commits older than this (e.g. '2024-01-01', RFC3339 or '720h')")
	cmd.Flags().String("ref", "", "starting reference (default: HEAD)")
}

// loadOptions resolves the traversal flags into loader options.
func loadOptions(cmd *cobra.Command) (history.LoadOptions, error) {
	opts := history.LoadOptions{}

	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Reference, _ = cmd.Flags().GetString("ref")

	sinceStr, _ := cmd.Flags().GetString("since")
	if sinceStr != "" {
		since, err := parseSince(sinceStr)
		if err != nil {
			return opts, err
		}

		opts.Since = since
	}

	return opts, nil
}

// parseSince parses a time bound given as a duration relative to now, an
// RFC3339 instant, or a plain date.
func parseSince(s string) (time.Time, error) {
	d, durationErr := time.ParseDuration(s)
	if durationErr == nil {
		return time.Now().Add(-d), nil
	}

	parsed, rfc3339Err := time.Parse(time.RFC3339, s)
	if rfc3339Err == nil {
		return parsed, nil
	}

	parsed, dateOnlyErr := time.Parse(time.DateOnly, s)
	if dateOnlyErr == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitpulse %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
