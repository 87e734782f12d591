// Package pagination slices a timestamp index into fixed-size pages and
// supports resuming from an arbitrary point in time.
package pagination

import (
	"fmt"
	"time"

	"github.com/repolens/repolens/internal/index"
	"github.com/repolens/repolens/internal/model"
)

// Paginator exposes cursor-based pagination over an immutable
// TimestampIndex. Both operations are pure functions of the index and
// the request: the same arguments always produce the same page.
type Paginator struct {
	index    *index.TimestampIndex
	pageSize int
}

// NewPaginator creates a Paginator over the given index.
func NewPaginator(ix *index.TimestampIndex, pageSize int) (*Paginator, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	return &Paginator{index: ix, pageSize: pageSize}, nil
}

// PageSize returns the configured entries-per-page.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// TotalPages returns ceil(total entries / page size).
func (p *Paginator) TotalPages() int {
	return (p.index.Len() + p.pageSize - 1) / p.pageSize
}

// Page returns the 1-based page with the given number. Page numbers
// below 1 are clamped to 1; a page past the end is an empty page, not
// an error.
func (p *Paginator) Page(number int) model.Page {
	if number < 1 {
		number = 1
	}

	total := p.index.Len()
	start := (number - 1) * p.pageSize
	end := start + p.pageSize
	if end > total {
		end = total
	}

	items := p.index.Slice(start, end)

	var timestampRange model.TimeRange
	if len(items) > 0 {
		timestampRange = model.TimeRange{
			Start: items[0].Timestamp,
			End:   items[len(items)-1].Timestamp,
		}
	}

	navigation := model.PageNavigation{
		CanGoBack:   number > 1,
		CanContinue: end < total,
	}
	if number > 1 && start-1 < total && start > 0 {
		ts := p.index.At(min(start, total) - 1).Timestamp
		navigation.PreviousTimestamp = &ts
	}
	if end < total {
		ts := p.index.At(end).Timestamp
		navigation.NextTimestamp = &ts
	}

	submodules := make(map[string]int)
	for _, item := range items {
		submodules[item.SubmodulePath]++
	}

	return model.Page{
		PageNumber:     number,
		TotalPages:     p.TotalPages(),
		Items:          items,
		TimestampRange: timestampRange,
		Navigation:     navigation,
		Metadata: model.PageMetadata{
			TotalEntries: total,
			Submodules:   submodules,
		},
	}
}

// ContinueFrom resumes pagination at the page containing the first
// entry whose timestamp is at or after t. If no entry is at or after t,
// it returns the page containing the index's final entries.
func (p *Paginator) ContinueFrom(t time.Time) model.Page {
	total := p.index.Len()
	if total == 0 {
		return p.Page(1)
	}

	position := p.index.FirstAtOrAfter(t)
	if position == total {
		return p.Page(p.TotalPages())
	}

	return p.Page(position/p.pageSize + 1)
}
