package output

import (
	"time"

	"github.com/repolens/repolens/internal/aggregation"
	"github.com/repolens/repolens/internal/model"
)

// Compile-time interface conformance checks.
var (
	_ PageWriter = (*ConsolePageWriter)(nil)
	_ PageWriter = (*JSONPageWriter)(nil)

	_ SummaryWriter = (*ConsoleSummaryWriter)(nil)
	_ SummaryWriter = (*JSONSummaryWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
	Verbose    bool
}

// SummaryReport is the per-submodule commit-count summary for one
// aggregation run. Its JSON form is a persisted artifact.
type SummaryReport struct {
	RepoPath     string                         `json:"repo"`
	GeneratedAt  time.Time                      `json:"generatedAt"`
	TotalEntries int                            `json:"totalEntries"`
	Submodules   []model.SubmoduleInfo          `json:"submodules"`
	CommitCounts map[string]int                 `json:"commitCounts"`
	Skipped      []aggregation.SkippedSubmodule `json:"skipped,omitempty"`
}

// PageWriter renders one page of log entries.
type PageWriter interface {
	Write(page *model.Page, options OutputOptions) error
}

// SummaryWriter renders an aggregation summary.
type SummaryWriter interface {
	Write(report *SummaryReport, options OutputOptions) error
}

// NewPageWriter creates a page writer for the specified format.
func NewPageWriter(format OutputFormat) PageWriter {
	switch format {
	case FormatJSON:
		return &JSONPageWriter{}
	default:
		return &ConsolePageWriter{}
	}
}

// NewSummaryWriter creates a summary writer for the specified format.
func NewSummaryWriter(format OutputFormat) SummaryWriter {
	switch format {
	case FormatJSON:
		return &JSONSummaryWriter{}
	default:
		return &ConsoleSummaryWriter{}
	}
}
