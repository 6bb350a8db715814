package report

import (
	"sort"

	"github.com/sot/schedule-view/internal/loads"
)

// PathMapper maps a load name to its directory fragment in the MP archive
type PathMapper func(id loads.ID) (string, error)

// Finalize sets the starcheck links and returns the entries ordered most
// recent first. Entries are stable sorted by date string, then reversed, so
// entries with equal dates come out in reverse input order.
//
// A load name the mapper rejects is left without a link.
func Finalize(entries []Entry, mapper PathMapper, starcheckBase string) []Entry {
	if mapper == nil {
		mapper = loads.MPDir
	}

	for i := range entries {
		if !entries[i].HasProducts() {
			continue
		}
		if fragment, err := mapper(entries[i].Products); err == nil {
			entries[i].StarcheckURL = loads.StarcheckURL(starcheckBase, fragment)
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}
