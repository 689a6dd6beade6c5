// ABOUTME: CorpusSnapshot model for the versioned, immutable corpus
// ABOUTME: Built wholesale by the corpus builder, replaced atomically on rebuild
package models

import (
	"fmt"
	"time"
)

// CorpusSnapshot is the full candidate set plus its build version.
// A snapshot never mutates after it is published; rebuilds produce a fresh
// snapshot with a new version so concurrent readers keep a consistent view.
type CorpusSnapshot struct {
	Version string       `json:"version"`
	BuiltAt time.Time    `json:"built_at"`
	Items   []CorpusItem `json:"items"`
}

// NewCorpusSnapshot assembles a snapshot, rejecting duplicate imdb ids
func NewCorpusSnapshot(version string, builtAt time.Time, items []CorpusItem) (*CorpusSnapshot, error) {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid item at position %d: %w", i, err)
		}
		if seen[items[i].ImdbID] {
			return nil, fmt.Errorf("duplicate imdb id %s in snapshot", items[i].ImdbID)
		}
		seen[items[i].ImdbID] = true
	}
	return &CorpusSnapshot{
		Version: version,
		BuiltAt: builtAt,
		Items:   items,
	}, nil
}

// Size returns the number of items in the snapshot
func (s *CorpusSnapshot) Size() int {
	return len(s.Items)
}

// ItemIndex maps imdb id to the item's position in snapshot order.
// Embedding matrices are aligned with this order.
func (s *CorpusSnapshot) ItemIndex() map[string]int {
	idx := make(map[string]int, len(s.Items))
	for i := range s.Items {
		idx[s.Items[i].ImdbID] = i
	}
	return idx
}
