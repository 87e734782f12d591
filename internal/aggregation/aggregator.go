package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/repolens/repolens/internal/git"
	"github.com/repolens/repolens/internal/model"
)

// Options configures an Aggregator.
type Options struct {
	RootPath string
	Include  []string
	Exclude  []string

	// Jobs bounds how many repositories are collected concurrently.
	// Values below 1 are treated as 1.
	Jobs int

	// Timeout bounds the collection of a single repository so one
	// unreachable or huge repository cannot stall the whole run.
	// Zero means no per-repository timeout.
	Timeout time.Duration

	Logger *slog.Logger

	// NewCollector is a seam for tests; the default opens a real
	// repository with git.NewHistoryCollector.
	NewCollector func(git.CollectOptions) (git.Collector, error)
}

// SkippedSubmodule records a repository that could not be collected.
type SkippedSubmodule struct {
	Submodule model.SubmoduleInfo `json:"submodule"`
	Reason    string              `json:"reason"`
}

// Result is the unordered union of every successfully collected
// repository's log entries, plus the submodules that were skipped.
type Result struct {
	Entries []model.LogEntry
	Skipped []SkippedSubmodule
}

// Aggregator runs one collection per discovered submodule and
// concatenates the results. Per-submodule failures are recorded and
// skipped; they never abort the aggregation.
type Aggregator struct {
	opts         Options
	logger       *slog.Logger
	newCollector func(git.CollectOptions) (git.Collector, error)
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newCollector := opts.NewCollector
	if newCollector == nil {
		newCollector = func(co git.CollectOptions) (git.Collector, error) {
			return git.NewHistoryCollector(co)
		}
	}
	return &Aggregator{opts: opts, logger: logger, newCollector: newCollector}
}

// Run collects every submodule's history. Collection across submodules
// is independent, so repositories are walked concurrently up to Jobs;
// results are merged in discovery order so concurrency never leaks into
// output ordering.
func (a *Aggregator) Run(ctx context.Context, submodules []model.SubmoduleInfo) (*Result, error) {
	collected := make([][]model.LogEntry, len(submodules))
	failures := make([]error, len(submodules))

	sem := make(chan struct{}, a.opts.Jobs)
	var wg sync.WaitGroup

	for i, sub := range submodules {
		wg.Add(1)
		go func(i int, sub model.SubmoduleInfo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			collected[i], failures[i] = a.collectOne(ctx, sub)
		}(i, sub)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation canceled: %w", err)
	}

	result := &Result{}
	for i, sub := range submodules {
		if failures[i] != nil {
			a.logger.Warn("skipping submodule",
				slog.String("submodule", sub.Name),
				slog.String("path", sub.Path),
				slog.Any("error", failures[i]))
			result.Skipped = append(result.Skipped, SkippedSubmodule{
				Submodule: sub,
				Reason:    failures[i].Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, collected[i]...)
	}

	a.logger.Info("aggregation complete",
		slog.Int("entries", len(result.Entries)),
		slog.Int("submodules", len(submodules)),
		slog.Int("skipped", len(result.Skipped)))

	return result, nil
}

func (a *Aggregator) collectOne(ctx context.Context, sub model.SubmoduleInfo) ([]model.LogEntry, error) {
	repoPath := filepath.Join(a.opts.RootPath, sub.Path)

	if _, err := os.Stat(repoPath); err != nil {
		return nil, fmt.Errorf("submodule path does not exist: %w", err)
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	collector, err := a.newCollector(git.CollectOptions{
		RepoPath:      repoPath,
		SubmodulePath: sub.Name,
		Include:       a.opts.Include,
		Exclude:       a.opts.Exclude,
		Logger:        a.logger,
	})
	if err != nil {
		return nil, err
	}

	entries, err := collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("collected submodule",
		slog.String("submodule", sub.Name),
		slog.Int("entries", len(entries)))

	return entries, nil
}
