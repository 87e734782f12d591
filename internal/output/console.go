package output

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/repolens/repolens/internal/model"
)

const consoleTimeLayout = "2006-01-02 15:04"

// ConsolePageWriter writes a page of log entries to the console.
type ConsolePageWriter struct{}

// Write renders the page as a table with navigation hints.
func (w *ConsolePageWriter) Write(page *model.Page, options OutputOptions) error {
	color.Green("Page %d of %d", page.PageNumber, page.TotalPages)

	if page.IsEmpty() {
		fmt.Println("No entries on this page.")
		return nil
	}

	fmt.Printf("Time range: %s to %s\n",
		page.TimestampRange.Start.Format(consoleTimeLayout),
		page.TimestampRange.End.Format(consoleTimeLayout))
	fmt.Printf("Navigation: %s | %s\n\n", backLabel(page), continueLabel(page))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if options.Verbose {
		fmt.Fprintln(tw, "#\tTime\tSubmodule\tCommit\tAuthor\t+/-\tFiles\tMessage")
	} else {
		fmt.Fprintln(tw, "#\tTime\tSubmodule\tCommit\tAuthor\tMessage")
	}

	for i, entry := range page.Items {
		if options.Verbose {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t+%d/-%d\t%d\t%s\n",
				i+1,
				entry.Timestamp.Format(consoleTimeLayout),
				entry.SubmodulePath,
				entry.ShortHash(),
				entry.Author,
				entry.DiffStats.Insertions,
				entry.DiffStats.Deletions,
				entry.DiffStats.FilesChanged,
				entry.Title(),
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1,
				entry.Timestamp.Format(consoleTimeLayout),
				entry.SubmodulePath,
				entry.ShortHash(),
				entry.Author,
				entry.Title(),
			)
		}
	}

	return tw.Flush()
}

func backLabel(page *model.Page) string {
	if page.Navigation.CanGoBack {
		return "<- previous"
	}
	return "(start)"
}

func continueLabel(page *model.Page) string {
	if page.Navigation.CanContinue {
		return "next ->"
	}
	return "(end)"
}

// ConsoleSummaryWriter writes an aggregation summary to the console.
type ConsoleSummaryWriter struct{}

// Write renders per-submodule commit counts and skipped submodules.
func (w *ConsoleSummaryWriter) Write(report *SummaryReport, options OutputOptions) error {
	color.Green("Aggregated %d log entries from %s", report.TotalEntries, report.RepoPath)
	fmt.Printf("Submodules discovered: %d (skipped: %d)\n\n", len(report.Submodules), len(report.Skipped))

	names := make([]string, 0, len(report.CommitCounts))
	for name := range report.CommitCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Submodule\tCommits")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, report.CommitCounts[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, skipped := range report.Skipped {
		color.Yellow("skipped %s: %s", skipped.Submodule.Name, skipped.Reason)
	}

	return nil
}
