// Package enrich annotates pages of log entries with reactions.
//
// Enrichment is a capability: when the configured external analyzer
// tool is on PATH it is invoked per entry, otherwise a built-in
// heuristic enricher takes over. The aggregation and pagination core
// never depends on enrichment being present or succeeding.
package enrich

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/model"
)

// Enricher produces auxiliary reactions for a page. Reactions are
// read-only annotations; they are never fed back into the index.
type Enricher interface {
	// Name identifies the enricher in logs and session snapshots.
	Name() string
	// EnrichPage returns reactions for the given page.
	EnrichPage(ctx context.Context, page *model.Page) ([]model.Reaction, error)
}

// Compile-time interface conformance checks.
var (
	_ Enricher = (*ExecEnricher)(nil)
	_ Enricher = (*StubEnricher)(nil)
)

// Detect returns an ExecEnricher when the named tool is resolvable on
// PATH, and the built-in StubEnricher otherwise.
func Detect(tool string, logger *slog.Logger) Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	if tool != "" {
		if e, err := NewExecEnricher(tool); err == nil {
			logger.Info("external analyzer detected", slog.String("tool", tool))
			return e
		}
		logger.Warn("external analyzer not found, using built-in enricher", slog.String("tool", tool))
	}
	return &StubEnricher{}
}

// ExecEnricher shells out to an external analyzer executable for each
// entry on a page and records its output as reactions.
type ExecEnricher struct {
	tool string
	path string
}

// NewExecEnricher resolves the tool on PATH.
func NewExecEnricher(tool string) (*ExecEnricher, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return nil, err
	}
	return &ExecEnricher{tool: tool, path: path}, nil
}

// Name returns the resolved tool name.
func (e *ExecEnricher) Name() string {
	return e.tool
}

// EnrichPage runs the analyzer once per entry. An entry whose analysis
// fails is skipped; the remaining entries are still enriched.
func (e *ExecEnricher) EnrichPage(ctx context.Context, page *model.Page) ([]model.Reaction, error) {
	var reactions []model.Reaction

	for _, entry := range page.Items {
		if err := ctx.Err(); err != nil {
			return reactions, err
		}

		cmd := exec.CommandContext(ctx, e.path, "--analyze", "--input", entry.Message, "--format", "json")
		out, err := cmd.Output()
		if err != nil {
			continue
		}

		content := strings.TrimSpace(string(out))
		if content == "" {
			continue
		}

		reactions = append(reactions, model.Reaction{
			ID:            uuid.New(),
			Timestamp:     time.Now().UTC(),
			PageNumber:    page.PageNumber,
			Kind:          model.ReactionExternal,
			Content:       content,
			Confidence:    0.9,
			TargetEntryID: entry.ID,
		})
	}

	return reactions, nil
}

// StubEnricher generates reactions from simple commit-message and diff
// heuristics. It stands in when no external analyzer is available.
type StubEnricher struct{}

// Name identifies the built-in enricher.
func (s *StubEnricher) Name() string {
	return "builtin"
}

var technicalKeywords = []string{
	"fix", "refactor", "optimize", "implement", "rewrite", "migrate", "perf",
}

// EnrichPage derives reactions for every entry on the page.
func (s *StubEnricher) EnrichPage(_ context.Context, page *model.Page) ([]model.Reaction, error) {
	now := time.Now().UTC()
	var reactions []model.Reaction

	add := func(kind model.ReactionKind, content string, confidence float64, target uuid.UUID) {
		reactions = append(reactions, model.Reaction{
			ID:            uuid.New(),
			Timestamp:     now,
			PageNumber:    page.PageNumber,
			Kind:          kind,
			Content:       content,
			Confidence:    confidence,
			TargetEntryID: target,
		})
	}

	// Track file overlap across the page for connection reactions.
	firstTouched := make(map[string]uuid.UUID)

	for _, entry := range page.Items {
		title := entry.Title()
		lower := strings.ToLower(title)

		if containsAny(lower, technicalKeywords) {
			add(model.ReactionInsight,
				"Technical change in "+entry.SubmodulePath+": "+title,
				0.8, entry.ID)
		}

		if strings.TrimSpace(title) == "" || len(title) < 10 {
			add(model.ReactionQuestion,
				"Commit "+entry.ShortHash()+" has a very short message; what changed?",
				0.6, entry.ID)
		}

		if entry.DiffStats.Churn() > 500 {
			add(model.ReactionHotTake,
				"Commit "+entry.ShortHash()+" changes "+entry.SubmodulePath+" heavily; consider splitting work of this size",
				0.7, entry.ID)
		}

		for _, file := range entry.FilesChanged {
			if other, ok := firstTouched[file]; ok && other != entry.ID {
				add(model.ReactionConnection,
					"File "+file+" is touched by multiple commits on this page",
					0.7, entry.ID)
				break
			}
			firstTouched[file] = entry.ID
		}
	}

	return reactions, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
