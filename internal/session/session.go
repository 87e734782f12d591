// Package session records a paginated review run and serializes it as
// a JSON snapshot once complete.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/model"
)

// PageRecord captures the outcome of reviewing one page.
type PageRecord struct {
	PageNumber     int              `json:"pageNumber"`
	BookmarkID     uuid.UUID        `json:"bookmarkId"`
	TimestampRange model.TimeRange  `json:"timestampRange"`
	EntryCount     int              `json:"entryCount"`
	Reactions      []model.Reaction `json:"reactions"`
}

// Metrics summarizes a completed session.
type Metrics struct {
	PagesProcessed     int `json:"pagesProcessed"`
	EntriesReviewed    int `json:"entriesReviewed"`
	ReactionsGenerated int `json:"reactionsGenerated"`
	InsightCount       int `json:"insightCount"`
	QuestionCount      int `json:"questionCount"`
	HotTakeCount       int `json:"hotTakeCount"`
}

// Session is one review run over paginated log output. It is a plain
// value owned by the caller; the snapshot written by Save is the only
// persisted artifact.
type Session struct {
	ID          uuid.UUID    `json:"sessionId"`
	StartTime   time.Time    `json:"startTime"`
	RepoPath    string       `json:"repoPath"`
	Enricher    string       `json:"enricher"`
	TargetPages int          `json:"targetPages"`
	PageSize    int          `json:"pageSize"`
	Pages       []PageRecord `json:"pages"`
	Metrics     Metrics      `json:"metrics"`
}

// New starts a session.
func New(repoPath, enricher string, targetPages, pageSize int) *Session {
	return &Session{
		ID:          uuid.New(),
		StartTime:   time.Now().UTC(),
		RepoPath:    repoPath,
		Enricher:    enricher,
		TargetPages: targetPages,
		PageSize:    pageSize,
	}
}

// ShouldContinue reports whether the session wants more pages.
func (s *Session) ShouldContinue() bool {
	return len(s.Pages) < s.TargetPages
}

// RecordPage appends a reviewed page and its reactions, updating the
// session metrics.
func (s *Session) RecordPage(page model.Page, reactions []model.Reaction) PageRecord {
	record := PageRecord{
		PageNumber:     page.PageNumber,
		BookmarkID:     uuid.New(),
		TimestampRange: page.TimestampRange,
		EntryCount:     len(page.Items),
		Reactions:      reactions,
	}
	s.Pages = append(s.Pages, record)

	s.Metrics.PagesProcessed++
	s.Metrics.EntriesReviewed += len(page.Items)
	s.Metrics.ReactionsGenerated += len(reactions)
	for _, r := range reactions {
		switch r.Kind {
		case model.ReactionInsight:
			s.Metrics.InsightCount++
		case model.ReactionQuestion:
			s.Metrics.QuestionCount++
		case model.ReactionHotTake:
			s.Metrics.HotTakeCount++
		}
	}

	return record
}

// Summary renders a short human-readable wrap-up.
func (s *Session) Summary() string {
	return fmt.Sprintf(
		"Session %s: %d pages, %d entries reviewed, %d reactions (%d insights, %d questions, %d hot takes)",
		s.ID, s.Metrics.PagesProcessed, s.Metrics.EntriesReviewed, s.Metrics.ReactionsGenerated,
		s.Metrics.InsightCount, s.Metrics.QuestionCount, s.Metrics.HotTakeCount)
}

// Save writes the session snapshot as pretty-printed JSON into dir and
// returns the file path.
func (s *Session) Save(dir string) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session_%s.json", s.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write session snapshot: %w", err)
	}

	return path, nil
}
