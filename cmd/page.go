package cmd

import (
	"github.com/repolens/repolens/internal/output"
	"github.com/urfave/cli/v2"
)

// PageCmd returns the page command.
func PageCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:    "number",
			Aliases: []string{"n"},
			Usage:   "Page number to show (1-based)",
			Value:   1,
		},
	)

	return &cli.Command{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Show one page of the globally ordered commit log",
		Flags:   flags,
		Action:  pageAction,
	}
}

func pageAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	page := ctx.Paginator.Page(c.Int("number"))

	opts := OutputOptions(c)
	writer := output.NewPageWriter(opts.Format)
	return writer.Write(&page, opts)
}
