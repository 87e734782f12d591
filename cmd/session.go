package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/repolens/repolens/internal/enrich"
	"github.com/repolens/repolens/internal/output"
	"github.com/repolens/repolens/internal/session"
	"github.com/urfave/cli/v2"
)

// SessionCmd returns the session command.
func SessionCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:    "pages",
			Aliases: []string{"p"},
			Usage:   "Number of pages to review",
			Value:   5,
		},
		&cli.BoolFlag{
			Name:  "interactive",
			Usage: "Pause for Enter between pages",
		},
		&cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory for the session snapshot",
			Value: ".",
		},
	)

	return &cli.Command{
		Name:   "session",
		Usage:  "Review pages of aggregated log output with enrichment reactions",
		Flags:  flags,
		Action: sessionAction,
	}
}

func sessionAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	if !ctx.HasEntries() {
		fmt.Println("No log entries found; nothing to review.")
		return nil
	}

	enricher := enrich.Detect(enrichmentTool(ctx), slog.Default())
	sess := session.New(ctx.RepoPath, enricher.Name(), c.Int("pages"), ctx.Paginator.PageSize())

	opts := OutputOptions(c)
	writer := output.NewPageWriter(opts.Format)
	stdin := bufio.NewReader(os.Stdin)

	number := 1
	for sess.ShouldContinue() {
		page := ctx.Paginator.Page(number)
		if page.IsEmpty() {
			break
		}

		if err := writer.Write(&page, opts); err != nil {
			return err
		}

		reactions, err := enricher.EnrichPage(context.Background(), &page)
		if err != nil {
			slog.Warn("enrichment failed", slog.Int("page", number), slog.Any("error", err))
		}
		sess.RecordPage(page, reactions)

		fmt.Printf("Generated %d reactions for page %d\n\n", len(reactions), number)

		if c.Bool("interactive") && sess.ShouldContinue() && page.Navigation.CanContinue {
			fmt.Print("Press Enter to continue to the next page...")
			if _, err := stdin.ReadString('\n'); err != nil {
				break
			}
		}

		number++
	}

	fmt.Println(sess.Summary())

	path, err := sess.Save(c.String("snapshot-dir"))
	if err != nil {
		return err
	}
	fmt.Printf("Session snapshot saved to %s\n", path)

	return nil
}

func enrichmentTool(ctx *CommandContext) string {
	if !ctx.Config.Enrichment.Enabled {
		return ""
	}
	return ctx.Config.Enrichment.Tool
}
