package cmd

import (
	"time"

	"github.com/repolens/repolens/internal/output"
	"github.com/urfave/cli/v2"
)

// CollectCmd returns the collect command.
func CollectCmd() *cli.Command {
	return &cli.Command{
		Name:    "collect",
		Aliases: []string{"l"},
		Usage:   "Aggregate commit logs from the repository and all submodules",
		Flags:   commonFlags(),
		Action:  collectAction,
	}
}

func collectAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	report := &output.SummaryReport{
		RepoPath:     ctx.RepoPath,
		GeneratedAt:  time.Now().UTC(),
		TotalEntries: ctx.Index.Len(),
		Submodules:   ctx.Submodules,
		CommitCounts: ctx.Index.SubmoduleStats(),
		Skipped:      ctx.Result.Skipped,
	}

	opts := OutputOptions(c)
	writer := output.NewSummaryWriter(opts.Format)
	return writer.Write(report, opts)
}
