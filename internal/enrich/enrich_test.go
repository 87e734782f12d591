package enrich

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testPage(entries ...model.LogEntry) *model.Page {
	return &model.Page{
		PageNumber: 1,
		TotalPages: 1,
		Items:      entries,
	}
}

func testEntry(message string, files []string, churn int) model.LogEntry {
	return model.LogEntry{
		ID:           uuid.New(),
		Timestamp:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CommitHash:   "0123456789abcdef0123456789abcdef01234567",
		Message:      message,
		FilesChanged: files,
		DiffStats:    model.DiffStats{Insertions: churn},
	}
}

func TestDetect_FallsBackToStub(t *testing.T) {
	e := Detect("definitely-not-a-real-tool-name", quietLogger())
	if _, ok := e.(*StubEnricher); !ok {
		t.Fatalf("expected StubEnricher fallback, got %T", e)
	}
}

func TestDetect_EmptyToolNameUsesStub(t *testing.T) {
	e := Detect("", quietLogger())
	if _, ok := e.(*StubEnricher); !ok {
		t.Fatalf("expected StubEnricher for empty tool, got %T", e)
	}
}

func TestStubEnricher_TechnicalInsight(t *testing.T) {
	page := testPage(testEntry("fix race in collector shutdown", nil, 10))

	reactions, err := (&StubEnricher{}).EnrichPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasKind(reactions, model.ReactionInsight) {
		t.Errorf("expected an insight reaction, got %v", kinds(reactions))
	}
}

func TestStubEnricher_ShortMessageQuestion(t *testing.T) {
	page := testPage(testEntry("wip", nil, 1))

	reactions, err := (&StubEnricher{}).EnrichPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasKind(reactions, model.ReactionQuestion) {
		t.Errorf("expected a question reaction, got %v", kinds(reactions))
	}
}

func TestStubEnricher_LargeChurnHotTake(t *testing.T) {
	page := testPage(testEntry("rewrite the storage layer completely", nil, 900))

	reactions, err := (&StubEnricher{}).EnrichPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasKind(reactions, model.ReactionHotTake) {
		t.Errorf("expected a hot take reaction, got %v", kinds(reactions))
	}
}

func TestStubEnricher_FileOverlapConnection(t *testing.T) {
	page := testPage(
		testEntry("touch shared file", []string{"core/engine.go"}, 10),
		testEntry("touch shared file again", []string{"core/engine.go"}, 10),
	)

	reactions, err := (&StubEnricher{}).EnrichPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasKind(reactions, model.ReactionConnection) {
		t.Errorf("expected a connection reaction, got %v", kinds(reactions))
	}
}

func TestStubEnricher_ReactionsTargetPage(t *testing.T) {
	entry := testEntry("fix a bug", nil, 10)
	page := testPage(entry)
	page.PageNumber = 7

	reactions, err := (&StubEnricher{}).EnrichPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reactions) == 0 {
		t.Fatal("expected at least one reaction")
	}
	for _, r := range reactions {
		if r.PageNumber != 7 {
			t.Errorf("PageNumber = %d, want 7", r.PageNumber)
		}
		if r.TargetEntryID != entry.ID {
			t.Errorf("TargetEntryID = %v, want %v", r.TargetEntryID, entry.ID)
		}
	}
}

func hasKind(reactions []model.Reaction, kind model.ReactionKind) bool {
	for _, r := range reactions {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

func kinds(reactions []model.Reaction) []model.ReactionKind {
	out := make([]model.ReactionKind, len(reactions))
	for i, r := range reactions {
		out[i] = r.Kind
	}
	return out
}
