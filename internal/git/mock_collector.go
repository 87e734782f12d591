package git

import (
	"context"

	"github.com/repolens/repolens/internal/model"
)

// MockCollector is a test double for HistoryCollector. It lets tests
// provide predefined log entries without needing a real Git repository.
type MockCollector struct {
	Entries []model.LogEntry
	Error   error
}

// NewMockCollector creates a MockCollector with the given data.
func NewMockCollector(entries []model.LogEntry, err error) *MockCollector {
	return &MockCollector{Entries: entries, Error: err}
}

// Collect returns the predefined entries or error.
func (m *MockCollector) Collect(_ context.Context) ([]model.LogEntry, error) {
	return m.Entries, m.Error
}
