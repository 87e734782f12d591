package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/repolens/repolens/internal/model"
)

// UnknownCommitHash is recorded for a submodule whose checked-out commit
// cannot be resolved. Discovery is total over the declared set: an
// unreadable entry is still included, never dropped.
const UnknownCommitHash = "unknown"

// DiscoverSubmodules enumerates the repositories to aggregate: every
// submodule declared by the repository at rootPath, plus a synthetic
// entry for the root repository itself. It fails only when rootPath is
// not a valid repository.
func DiscoverSubmodules(rootPath string) ([]model.SubmoduleInfo, error) {
	repo, err := git.PlainOpen(rootPath)
	if err != nil {
		return nil, fmt.Errorf("open root repository %s: %w", rootPath, err)
	}

	now := time.Now().UTC()
	var infos []model.SubmoduleInfo

	// A bare repository has no worktree and therefore no checked-out
	// submodules; the root entry alone is still a valid result.
	if worktree, err := repo.Worktree(); err == nil {
		submodules, err := worktree.Submodules()
		if err == nil {
			for _, sub := range submodules {
				cfg := sub.Config()
				infos = append(infos, model.SubmoduleInfo{
					Name:        cfg.Name,
					Path:        cfg.Path,
					URL:         cfg.URL,
					CommitHash:  submoduleCommitHash(sub),
					LastUpdated: now,
				})
			}
		}
	}

	infos = append(infos, model.SubmoduleInfo{
		Name:        "root",
		Path:        ".",
		URL:         "local",
		CommitHash:  rootCommitHash(repo),
		LastUpdated: now,
	})

	return infos, nil
}

// submoduleCommitHash resolves the commit recorded for a submodule,
// preferring the superproject index over the submodule's own checkout.
func submoduleCommitHash(sub *git.Submodule) string {
	status, err := sub.Status()
	if err != nil {
		return UnknownCommitHash
	}
	if !status.Expected.IsZero() {
		return status.Expected.String()
	}
	if !status.Current.IsZero() {
		return status.Current.String()
	}
	return UnknownCommitHash
}

func rootCommitHash(repo *git.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return UnknownCommitHash
	}
	return head.Hash().String()
}
