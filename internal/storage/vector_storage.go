// ABOUTME: Embedding cache backend on Charm KV for cloud-synced vectors
// ABOUTME: One JSON entry per corpus position, keyed by snapshot version
package storage

import (
	"fmt"
	"sort"

	"github.com/moodreel/moodreel/internal/charm"
	"github.com/moodreel/moodreel/internal/models"
)

// vectorEntry is the stored form of one corpus vector
type vectorEntry struct {
	ImdbID string    `json:"imdb_id"`
	Pos    int       `json:"pos"`
	Vector []float64 `json:"vector"`
}

// VectorStorage mirrors the embedding cache to Charm KV so a rebuilt
// machine can pull vectors instead of re-encoding the corpus
type VectorStorage struct {
	charm *charm.Client
}

// NewVectorStorage creates a VectorStorage over an open charm client
func NewVectorStorage(charmClient *charm.Client) *VectorStorage {
	return &VectorStorage{charm: charmClient}
}

// SaveMatrix writes every vector of the snapshot under its version prefix,
// replacing any entries from older snapshots
func (vs *VectorStorage) SaveMatrix(snap *models.CorpusSnapshot, vectors [][]float64) error {
	if len(vectors) != len(snap.Items) {
		return fmt.Errorf("matrix has %d vectors for %d items", len(vectors), len(snap.Items))
	}

	// Drop entries for superseded snapshots first
	stale, err := vs.charm.ListKeys(charm.VectorPrefix)
	if err != nil {
		return fmt.Errorf("listing stale vector keys: %w", err)
	}
	keep := charm.VersionPrefix(snap.Version)
	for _, key := range stale {
		if len(key) < len(keep) || key[:len(keep)] != keep {
			if err := vs.charm.Delete(key); err != nil {
				return fmt.Errorf("deleting stale key %s: %w", key, err)
			}
		}
	}

	for pos, vec := range vectors {
		entry := vectorEntry{
			ImdbID: snap.Items[pos].ImdbID,
			Pos:    pos,
			Vector: vec,
		}
		if err := vs.charm.SetJSON(charm.VectorKey(snap.Version, pos), entry); err != nil {
			return fmt.Errorf("storing vector for %s: %w", entry.ImdbID, err)
		}
	}
	return nil
}

// LoadMatrix returns the stored vectors for a snapshot version in item
// order, or nil when the version has no entries
func (vs *VectorStorage) LoadMatrix(version string) ([][]float64, error) {
	keys, err := vs.charm.ListKeys(charm.VersionPrefix(version))
	if err != nil {
		return nil, fmt.Errorf("listing vector keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	// Key format zero-pads positions so lexical order is item order
	sort.Strings(keys)

	vectors := make([][]float64, 0, len(keys))
	for _, key := range keys {
		var entry vectorEntry
		if err := vs.charm.GetJSON(key, &entry); err != nil {
			return nil, fmt.Errorf("reading vector %s: %w", key, err)
		}
		vectors = append(vectors, entry.Vector)
	}
	return vectors, nil
}
