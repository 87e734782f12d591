// Package index orders aggregated log entries by commit timestamp.
//
// The index is an explicit value built once per aggregation run and
// passed to the paginator; it is never mutated after construction.
package index

import (
	"sort"
	"time"

	"github.com/repolens/repolens/internal/model"
)

// TimestampIndex holds all aggregated entries in non-decreasing
// timestamp order. Entries with identical timestamps are ordered by
// (submodule path, commit hash) so no entry is ever dropped and
// rebuilding from the same input yields the same order.
type TimestampIndex struct {
	entries []model.LogEntry
}

// Build constructs a fresh index from the aggregated collection. The
// input slice is copied; the caller keeps ownership of it.
func Build(entries []model.LogEntry) *TimestampIndex {
	sorted := make([]model.LogEntry, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		return entryLess(sorted[i], sorted[j])
	})

	return &TimestampIndex{entries: sorted}
}

func entryLess(a, b model.LogEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	if a.SubmodulePath != b.SubmodulePath {
		return a.SubmodulePath < b.SubmodulePath
	}
	return a.CommitHash < b.CommitHash
}

// Len returns the number of indexed entries.
func (ix *TimestampIndex) Len() int {
	return len(ix.entries)
}

// At returns the entry at position i in timestamp order.
func (ix *TimestampIndex) At(i int) model.LogEntry {
	return ix.entries[i]
}

// Slice returns copies of the entries in [lo, hi), clamped to the valid
// range. Callers may mutate the returned slice freely.
func (ix *TimestampIndex) Slice(lo, hi int) []model.LogEntry {
	if lo < 0 {
		lo = 0
	}
	if hi > len(ix.entries) {
		hi = len(ix.entries)
	}
	if lo >= hi {
		return nil
	}
	out := make([]model.LogEntry, hi-lo)
	copy(out, ix.entries[lo:hi])
	return out
}

// FirstAtOrAfter returns the position of the first entry whose
// timestamp is at or after t, or Len() if no such entry exists.
func (ix *TimestampIndex) FirstAtOrAfter(t time.Time) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		return !ix.entries[i].Timestamp.Before(t)
	})
}

// SubmoduleStats returns the number of indexed entries per submodule.
func (ix *TimestampIndex) SubmoduleStats() map[string]int {
	stats := make(map[string]int)
	for _, entry := range ix.entries {
		stats[entry.SubmodulePath]++
	}
	return stats
}
