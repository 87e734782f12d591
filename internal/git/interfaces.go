package git

import (
	"context"

	"github.com/repolens/repolens/internal/model"
)

// Collector walks one repository's commit history and produces
// normalized log entries. Global ordering across repositories is not
// the collector's job; entries come back in the backend's native
// commit-time traversal order.
type Collector interface {
	// Collect returns every log entry reachable from the repository's
	// current HEAD.
	Collect(ctx context.Context) ([]model.LogEntry, error)
}

// Compile-time interface conformance checks.
var (
	_ Collector = (*HistoryCollector)(nil)
	_ Collector = (*MockCollector)(nil)
)
