package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmoduleInfo describes one repository participating in an aggregation
// run. The root repository is represented by a synthetic entry with
// Name "root" and Path ".".
type SubmoduleInfo struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	CommitHash  string    `json:"commitHash"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// IsRoot reports whether this entry is the synthetic root repository.
func (s SubmoduleInfo) IsRoot() bool {
	return s.Path == "."
}

// DiffStats holds line and file counts for a commit, computed against
// the commit's first parent (or an empty tree for root commits).
type DiffStats struct {
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
	FilesChanged int `json:"filesChanged"`
}

// Churn returns total lines changed (insertions + deletions).
func (d DiffStats) Churn() int {
	return d.Insertions + d.Deletions
}

// LogEntry is one commit from one repository, normalized for aggregation.
type LogEntry struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	CommitHash    string    `json:"commitHash"`
	Author        string    `json:"author"`
	Message       string    `json:"message"`
	SubmodulePath string    `json:"submodulePath"`
	FilesChanged  []string  `json:"filesChanged"`
	DiffStats     DiffStats `json:"diffStats"`
}

// Title returns the first line of the commit message.
func (e LogEntry) Title() string {
	if idx := strings.IndexByte(e.Message, '\n'); idx != -1 {
		return e.Message[:idx]
	}
	return e.Message
}

// ShortHash returns an abbreviated commit hash for display.
func (e LogEntry) ShortHash() string {
	if len(e.CommitHash) > 8 {
		return e.CommitHash[:8]
	}
	return e.CommitHash
}

// TimeRange is a closed interval of commit timestamps.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Page is a fixed-size window over the ordered log sequence.
// Pages are constructed on demand and hold copies of the indexed
// entries; mutating a page never affects the index it came from.
type Page struct {
	PageNumber     int            `json:"pageNumber"`
	TotalPages     int            `json:"totalPages"`
	Items          []LogEntry     `json:"items"`
	TimestampRange TimeRange      `json:"timestampRange"`
	Navigation     PageNavigation `json:"navigation"`
	Metadata       PageMetadata   `json:"metadata"`
}

// IsEmpty reports whether the page contains no entries.
func (p *Page) IsEmpty() bool {
	return len(p.Items) == 0
}

// PageNavigation describes how to move forward or backward from a page
// without resending the full query.
type PageNavigation struct {
	PreviousTimestamp *time.Time `json:"previousTimestamp,omitempty"`
	NextTimestamp     *time.Time `json:"nextTimestamp,omitempty"`
	CanGoBack         bool       `json:"canGoBack"`
	CanContinue       bool       `json:"canContinue"`
	BookmarkID        *uuid.UUID `json:"bookmarkId,omitempty"`
}

// PageMetadata carries presentation-level counts for a page. The
// reaction count is filled in by the enrichment layer, not the paginator.
type PageMetadata struct {
	TotalEntries  int            `json:"totalEntries"`
	Submodules    map[string]int `json:"submodules,omitempty"`
	ReactionCount int            `json:"reactionCount"`
}

// ReactionKind classifies an enrichment reaction.
type ReactionKind string

const (
	ReactionInsight    ReactionKind = "insight"
	ReactionQuestion   ReactionKind = "question"
	ReactionConnection ReactionKind = "connection"
	ReactionHotTake    ReactionKind = "hot_take"
	ReactionExternal   ReactionKind = "external"
)

// Reaction is a single annotation produced by an Enricher for one page.
// Reactions are auxiliary output; they are never fed back into the index.
type Reaction struct {
	ID            uuid.UUID    `json:"id"`
	Timestamp     time.Time    `json:"timestamp"`
	PageNumber    int          `json:"pageNumber"`
	Kind          ReactionKind `json:"kind"`
	Content       string       `json:"content"`
	Confidence    float64      `json:"confidence"`
	TargetEntryID uuid.UUID    `json:"targetEntryId"`
}
