package pricing

import (
	"stitchquote/models"
)

// Snapshot is the immutable point-in-time view of cost configuration used
// for one pricing pass. The engine never reaches back to storage; one
// pricing pass = one snapshot = one quote.
type Snapshot struct {
	entries map[string]models.CostEntry
}

// NewSnapshot indexes the given cost entries by their key. Later duplicates
// replace earlier ones, matching the load order of the stores.
func NewSnapshot(entries []models.CostEntry) *Snapshot {
	m := make(map[string]models.CostEntry, len(entries))
	for _, e := range entries {
		if k := e.Key(); k != "" {
			m[k] = e
		}
	}
	return &Snapshot{entries: m}
}

// Entry returns the cost entry for a key.
func (s *Snapshot) Entry(key string) (models.CostEntry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Len returns the number of indexed entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}
