package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/activity"
	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/busfactor"
	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/churn"
	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/coauthors"
	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/summary"
)

// maxTableRows caps human-oriented tables; machine formats are never capped.
const maxTableRows = 50

var flaggedStyle = color.New(color.FgRed, color.Bold)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)

	return t
}

// RenderSummary writes the aggregation report.
func RenderSummary(w io.Writer, format Format, rep *summary.Report) error {
	if format != FormatTable {
		return writeMachine(w, format, rep)
	}

	t := newTable(w, table.Row{"Metric", "Value"})

	t.AppendRows([]table.Row{
		{"First commit", fmt.Sprintf("%s (%s)", stampDate(rep.FirstCommit.Date), rep.FirstCommit.Author)},
		{"Last commit", fmt.Sprintf("%s (%s)", stampDate(rep.LastCommit.Date), rep.LastCommit.Author)},
		{"Total commits", rep.TotalCommits},
		{"Contributors", rep.ContributorsTotal},
		{"Active days", rep.ActiveDays},
		{"Avg commits/day", fmt.Sprintf("%.2f", rep.AvgCommitsPerDay)},
		{"Peak day", fmt.Sprintf("%s (%d commits)", rep.PeakDay, rep.PeakDayCommits)},
		{"Longest idle gap", fmt.Sprintf("%d days", rep.LongestIdleGapDays)},
		{"Momentum (90d)", fmt.Sprintf("%.1f%%", rep.Momentum90dPct)},
		{"Active authors (90d)", rep.ActiveAuthorsLast90d},
		{"Drive-by authors", fmt.Sprintf("%.1f%%", rep.DriveByRatioPct)},
		{"Core size (80%)", rep.CoreSize80Pct},
		{"HHI", fmt.Sprintf("%.3f", rep.ConcentrationHHI)},
		{"Gini", fmt.Sprintf("%.3f", rep.ConcentrationGini)},
		{"Work hours", fmt.Sprintf("%.1f%%", rep.WorkHoursPct)},
		{"Merge rate", fmt.Sprintf("%.1f%%", rep.MergeRatePct)},
		{"Revert rate", fmt.Sprintf("%.1f%%", rep.RevertRatePct)},
		{"Median subject length", rep.MedianSubjectLen},
		{"Body present", fmt.Sprintf("%.1f%%", rep.BodyPresentPct)},
		{"Conventional commits", fmt.Sprintf("%.1f%%", rep.ConventionalCommitPct)},
	})

	t.Render()

	return nil
}

// stampDate renders an ISO timestamp with a relative hint.
func stampDate(iso string) string {
	when, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}

	return fmt.Sprintf("%s, %s", when.Format(time.DateOnly), humanize.Time(when))
}

// RenderChurn writes the ranked churn rows.
func RenderChurn(w io.Writer, format Format, rows []churn.Row) error {
	if format != FormatTable {
		return writeMachine(w, format, rows)
	}

	t := newTable(w, table.Row{"Path", "Churn", "Adds", "Dels", "Touches"})

	for i, row := range rows {
		if i >= maxTableRows {
			break
		}

		t.AppendRow(table.Row{row.Path, fmt.Sprintf("%.1f", row.Churn), row.Adds, row.Dels, row.Touches})
	}

	t.Render()

	return nil
}

// RenderOwnership writes bus-factor rows; flagged rows are highlighted.
func RenderOwnership(w io.Writer, format Format, rows []busfactor.Row) error {
	if format != FormatTable {
		return writeMachine(w, format, rows)
	}

	t := newTable(w, table.Row{"Path", "Top author", "Share", "Total", "Mode"})

	for i, row := range rows {
		if i >= maxTableRows {
			break
		}

		path := row.Path
		if row.Flagged {
			path = flaggedStyle.Sprintf("! %s", path)
		}

		t.AppendRow(table.Row{path, row.TopAuthor, fmt.Sprintf("%.1f%%", row.Share*100), row.Total, row.Mode})
	}

	t.Render()

	return nil
}

// RenderBlameSummary writes one file's per-author owned-line breakdown.
func RenderBlameSummary(w io.Writer, format Format, rows []busfactor.AuthorLines) error {
	if format != FormatTable {
		return writeMachine(w, format, rows)
	}

	t := newTable(w, table.Row{"Author", "Lines", "Share"})

	for _, row := range rows {
		t.AppendRow(table.Row{row.Author, row.Lines, fmt.Sprintf("%.1f%%", row.Share*100)})
	}

	t.Render()

	return nil
}

// RenderCoauthors writes the ranked co-authorship pairs.
func RenderCoauthors(w io.Writer, format Format, pairs []coauthors.Pair) error {
	if format != FormatTable {
		return writeMachine(w, format, pairs)
	}

	t := newTable(w, table.Row{"Author A", "Author B", "Shared files"})

	for i, pair := range pairs {
		if i >= maxTableRows {
			break
		}

		t.AppendRow(table.Row{pair.AuthorA, pair.AuthorB, pair.SharedFiles})
	}

	t.Render()

	return nil
}

// RenderAuthorStats writes per-author commit counts and active ranges.
func RenderAuthorStats(w io.Writer, format Format, stats []activity.AuthorStat) error {
	if format != FormatTable {
		return writeMachine(w, format, stats)
	}

	t := newTable(w, table.Row{"Author", "Commits", "First", "Last"})

	for _, stat := range stats {
		t.AppendRow(table.Row{stat.Author, stat.Commits, stampDate(stat.First), stampDate(stat.Last)})
	}

	t.Render()

	return nil
}

// RenderFirstCommits writes each author's earliest contribution.
func RenderFirstCommits(w io.Writer, format Format, firsts []activity.FirstCommit) error {
	if format != FormatTable {
		return writeMachine(w, format, firsts)
	}

	t := newTable(w, table.Row{"Author", "First commit"})

	for _, first := range firsts {
		t.AppendRow(table.Row{first.Author, stampDate(first.Date)})
	}

	t.Render()

	return nil
}

// RenderCommitTimes writes per-author time-of-day histograms.
func RenderCommitTimes(w io.Writer, format Format, times []activity.AuthorTimes) error {
	if format != FormatTable {
		return writeMachine(w, format, times)
	}

	t := newTable(w, table.Row{"Author", "Night", "Morning", "Afternoon", "Evening"})

	for _, row := range times {
		t.AppendRow(table.Row{row.Author, row.Night, row.Morning, row.Afternoon, row.Evening})
	}

	t.Render()

	return nil
}

// RenderFileContributions writes path → author touch breakdowns.
func RenderFileContributions(w io.Writer, format Format, contribs []activity.FileContribution) error {
	if format != FormatTable {
		return writeMachine(w, format, contribs)
	}

	t := newTable(w, table.Row{"Path", "Author", "Touches"})

	for i, contrib := range contribs {
		if i >= maxTableRows {
			break
		}

		for _, author := range contrib.Authors {
			t.AppendRow(table.Row{contrib.Path, author.Author, author.Touches})
		}
	}

	t.Render()

	return nil
}
