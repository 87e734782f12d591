package pagination

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/index"
	"github.com/repolens/repolens/internal/model"
	"pgregory.net/rapid"
)

func genIndex() *rapid.Generator[*index.TimestampIndex] {
	return rapid.Custom(func(t *rapid.T) *index.TimestampIndex {
		count := rapid.IntRange(0, 120).Draw(t, "count")
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		entries := make([]model.LogEntry, count)
		for i := 0; i < count; i++ {
			hourOffset := rapid.IntRange(0, 30).Draw(t, fmt.Sprintf("hour%d", i))
			entries[i] = model.LogEntry{
				ID:            uuid.New(),
				Timestamp:     base.Add(time.Duration(hourOffset) * time.Hour),
				CommitHash:    fmt.Sprintf("%040x", i),
				SubmodulePath: rapid.SampledFrom([]string{"root", "lib-a"}).Draw(t, fmt.Sprintf("sub%d", i)),
			}
		}
		return index.Build(entries)
	})
}

func TestRapidPaginate_CoverageForAnyPageSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ix := genIndex().Draw(t, "index")
		size := rapid.IntRange(1, 50).Draw(t, "size")

		p, err := NewPaginator(ix, size)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []model.LogEntry
		for n := 1; n <= p.TotalPages(); n++ {
			page := p.Page(n)
			if len(page.Items) > size {
				t.Fatalf("page %d has %d items, page size is %d", n, len(page.Items), size)
			}
			got = append(got, page.Items...)
		}

		if len(got) != ix.Len() {
			t.Fatalf("concatenated pages have %d entries, index has %d", len(got), ix.Len())
		}
		for i := range got {
			if got[i].ID != ix.At(i).ID {
				t.Fatalf("gap or duplicate at position %d", i)
			}
		}
	})
}

func TestRapidContinueFrom_FirstItemAtOrAfter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ix := genIndex().Draw(t, "index")
		if ix.Len() == 0 {
			return
		}
		size := rapid.IntRange(1, 50).Draw(t, "size")
		p, _ := NewPaginator(ix, size)

		pos := rapid.IntRange(0, ix.Len()-1).Draw(t, "pos")
		ts := ix.At(pos).Timestamp

		page := p.ContinueFrom(ts)
		direct := p.Page(ix.FirstAtOrAfter(ts)/size + 1)

		if page.PageNumber != direct.PageNumber {
			t.Fatalf("ContinueFrom = page %d, direct computation = page %d", page.PageNumber, direct.PageNumber)
		}
		if len(page.Items) != len(direct.Items) {
			t.Fatalf("item counts differ: %d vs %d", len(page.Items), len(direct.Items))
		}
		for i := range page.Items {
			if page.Items[i].ID != direct.Items[i].ID {
				t.Fatalf("item %d differs between resume and direct pagination", i)
			}
		}
	})
}
