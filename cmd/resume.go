package cmd

import (
	"fmt"

	"github.com/repolens/repolens/internal/output"
	"github.com/urfave/cli/v2"
)

// ResumeCmd returns the resume command.
func ResumeCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "from",
			Usage:    "Timestamp to resume from (RFC 3339 or YYYY-MM-DD)",
			Required: true,
		},
	)

	return &cli.Command{
		Name:   "resume",
		Usage:  "Continue paging from the first entry at or after a timestamp",
		Flags:  flags,
		Action: resumeAction,
	}
}

func resumeAction(c *cli.Context) error {
	from, err := parseTimestampFlag(c.String("from"))
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	page := ctx.Paginator.ContinueFrom(from)

	opts := OutputOptions(c)
	writer := output.NewPageWriter(opts.Format)
	return writer.Write(&page, opts)
}
