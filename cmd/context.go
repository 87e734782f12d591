package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/repolens/repolens/config"
	"github.com/repolens/repolens/internal/aggregation"
	"github.com/repolens/repolens/internal/git"
	"github.com/repolens/repolens/internal/index"
	"github.com/repolens/repolens/internal/model"
	"github.com/repolens/repolens/internal/output"
	"github.com/repolens/repolens/internal/pagination"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution: the full
// discovery -> collection -> aggregation -> indexing pipeline, run once
// and shared by whatever the command does next.
type CommandContext struct {
	Config     *config.Config
	RepoPath   string
	Submodules []model.SubmoduleInfo
	Result     *aggregation.Result
	Index      *index.TimestampIndex
	Paginator  *pagination.Paginator
}

// NewCommandContext runs the aggregation pipeline from CLI flags.
// Discovery failure (root path is not a repository) is the only fatal
// error; per-submodule collection failures degrade to skip records on
// the result.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	if c.NArg() > 0 {
		repoPath = c.Args().Get(0)
	}

	submodules, err := git.DiscoverSubmodules(repoPath)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	aggregator := aggregation.New(aggregation.Options{
		RootPath: repoPath,
		Include:  cfg.Filters.Include,
		Exclude:  cfg.Filters.Exclude,
		Jobs:     cfg.Collection.Jobs,
		Timeout:  cfg.Collection.Timeout(),
		Logger:   slog.Default(),
	})

	result, err := aggregator.Run(context.Background(), submodules)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	ix := index.Build(result.Entries)

	paginator, err := pagination.NewPaginator(ix, cfg.Pagination.PageSize)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:     cfg,
		RepoPath:   repoPath,
		Submodules: submodules,
		Result:     result,
		Index:      ix,
		Paginator:  paginator,
	}, nil
}

// HasEntries returns true if any log entries were aggregated.
func (ctx *CommandContext) HasEntries() bool {
	return ctx.Index.Len() > 0
}

// OutputOptions creates output options from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		OutputPath: c.String("output"),
		Verbose:    c.Bool("verbose"),
	}
}
