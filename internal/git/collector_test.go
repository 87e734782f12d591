package git

import (
	"context"
	"testing"
	"time"
)

func TestHistoryCollector_Collect(t *testing.T) {
	repoPath, repo := createTestRepo(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	addCommitToRepo(t, repo, "initial commit", []string{"main.go"}, base)
	addCommitToRepo(t, repo, "add parser", []string{"parser.go", "parser_test.go"}, base.Add(time.Hour))
	addCommitToRepo(t, repo, "fix parser bug", []string{"parser.go"}, base.Add(2*time.Hour))

	collector, err := NewHistoryCollector(CollectOptions{
		RepoPath:      repoPath,
		SubmodulePath: "root",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for _, entry := range entries {
		if entry.SubmodulePath != "root" {
			t.Errorf("SubmodulePath = %q, want %q", entry.SubmodulePath, "root")
		}
		if entry.Author != "Test Author" {
			t.Errorf("Author = %q, want %q", entry.Author, "Test Author")
		}
		if entry.CommitHash == "" {
			t.Error("expected non-empty commit hash")
		}
		if entry.Timestamp.Location() != time.UTC {
			t.Errorf("timestamp location = %v, want UTC", entry.Timestamp.Location())
		}
		if entry.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("expected non-zero entry ID")
		}
	}
}

func TestHistoryCollector_RootCommitDiffedAgainstEmptyTree(t *testing.T) {
	repoPath, repo := createTestRepo(t)
	addCommitToRepo(t, repo, "initial commit", []string{"a.txt", "b.txt"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	collector, err := NewHistoryCollector(CollectOptions{RepoPath: repoPath, SubmodulePath: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.DiffStats.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d, want 2", entry.DiffStats.FilesChanged)
	}
	if entry.DiffStats.Insertions == 0 {
		t.Error("expected insertions for the root commit")
	}
	if entry.DiffStats.Deletions != 0 {
		t.Errorf("Deletions = %d, want 0", entry.DiffStats.Deletions)
	}
	if len(entry.FilesChanged) != 2 {
		t.Errorf("len(FilesChanged) = %d, want 2", len(entry.FilesChanged))
	}
}

func TestHistoryCollector_MessagePreserved(t *testing.T) {
	repoPath, repo := createTestRepo(t)
	addCommitToRepo(t, repo, "subject line\n\nbody text here", []string{"f.go"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	collector, err := NewHistoryCollector(CollectOptions{RepoPath: repoPath, SubmodulePath: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := entries[0].Message; got != "subject line\n\nbody text here" {
		t.Errorf("Message = %q, want full message", got)
	}
	if got := entries[0].Title(); got != "subject line" {
		t.Errorf("Title() = %q, want %q", got, "subject line")
	}
}

func TestHistoryCollector_ExcludeFilter(t *testing.T) {
	repoPath, repo := createTestRepo(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	addCommitToRepo(t, repo, "mixed commit", []string{"src/app.go", "vendor/dep.go"}, base)

	collector, err := NewHistoryCollector(CollectOptions{
		RepoPath:      repoPath,
		SubmodulePath: "root",
		Exclude:       []string{"vendor/**"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := entries[0]
	if entry.DiffStats.FilesChanged != 1 {
		t.Errorf("FilesChanged = %d, want 1", entry.DiffStats.FilesChanged)
	}
	if len(entry.FilesChanged) != 1 || entry.FilesChanged[0] != "src/app.go" {
		t.Errorf("FilesChanged = %v, want [src/app.go]", entry.FilesChanged)
	}
}

func TestNewHistoryCollector_NotARepository(t *testing.T) {
	_, err := NewHistoryCollector(CollectOptions{RepoPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for non-repository path")
	}
}

func TestHistoryCollector_ContextCancellation(t *testing.T) {
	repoPath, repo := createTestRepo(t)
	addCommitToRepo(t, repo, "one", []string{"a.go"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	collector, err := NewHistoryCollector(CollectOptions{RepoPath: repoPath, SubmodulePath: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := collector.Collect(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
