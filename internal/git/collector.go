package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/model"
)

// CollectOptions configures a HistoryCollector.
type CollectOptions struct {
	RepoPath      string
	SubmodulePath string // label recorded on every produced entry
	Include       []string
	Exclude       []string
	Logger        *slog.Logger
}

// HistoryCollector reads commit history from a single Git repository.
type HistoryCollector struct {
	repo   *git.Repository
	opts   CollectOptions
	logger *slog.Logger
}

// NewHistoryCollector opens the repository at opts.RepoPath. An open
// failure is the caller's recoverable per-submodule error; it never
// affects other repositories.
func NewHistoryCollector(opts CollectOptions) (*HistoryCollector, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", opts.RepoPath, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryCollector{repo: repo, opts: opts, logger: logger}, nil
}

// Collect walks commits reachable from HEAD in committer-time order and
// returns one entry per commit. Missing author or message metadata
// degrades to empty values, and a failed tree diff degrades to empty
// diff statistics; neither aborts the walk.
func (c *HistoryCollector) Collect(ctx context.Context) ([]model.LogEntry, error) {
	head, err := c.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD of %s: %w", c.opts.RepoPath, err)
	}

	iter, err := c.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", c.opts.RepoPath, err)
	}
	defer iter.Close()

	var entries []model.LogEntry

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries = append(entries, c.entryFromCommit(ctx, commit))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", c.opts.RepoPath, err)
	}

	return entries, nil
}

func (c *HistoryCollector) entryFromCommit(ctx context.Context, commit *object.Commit) model.LogEntry {
	stats, files, err := c.commitDiff(ctx, commit)
	if err != nil {
		// Recoverable at commit granularity: the entry still carries
		// author, message and timestamp value.
		c.logger.Warn("diff computation failed, recording empty stats",
			slog.String("repo", c.opts.RepoPath),
			slog.String("commit", commit.Hash.String()),
			slog.Any("error", err))
		stats = model.DiffStats{}
		files = nil
	}

	return model.LogEntry{
		ID:            uuid.New(),
		Timestamp:     commit.Committer.When.UTC(),
		CommitHash:    commit.Hash.String(),
		Author:        commit.Author.Name,
		Message:       strings.TrimRight(commit.Message, "\n"),
		SubmodulePath: c.opts.SubmodulePath,
		FilesChanged:  files,
		DiffStats:     stats,
	}
}

// commitDiff computes line statistics and changed paths against the
// first parent's tree, or against an empty tree for root commits.
func (c *HistoryCollector) commitDiff(ctx context.Context, commit *object.Commit) (model.DiffStats, []string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return model.DiffStats{}, nil, err
	}

	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return model.DiffStats{}, nil, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return model.DiffStats{}, nil, err
		}
	}

	patch, err := parentTree.PatchContext(ctx, tree)
	if err != nil {
		return model.DiffStats{}, nil, err
	}

	var stats model.DiffStats
	var files []string
	for _, fileStat := range patch.Stats() {
		if !c.matchesFilters(fileStat.Name) {
			continue
		}
		stats.Insertions += fileStat.Addition
		stats.Deletions += fileStat.Deletion
		stats.FilesChanged++
		files = append(files, fileStat.Name)
	}

	return stats, files, nil
}

// matchesFilters checks a changed path against the include/exclude globs.
func (c *HistoryCollector) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range c.opts.Exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	if len(c.opts.Include) == 0 {
		return true
	}

	for _, pattern := range c.opts.Include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}
