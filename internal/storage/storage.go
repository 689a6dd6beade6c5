// ABOUTME: Durable store facade for corpus snapshots and embedding matrices
// ABOUTME: SQLite is the primary backend; Charm KV optionally mirrors vectors
package storage

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/moodreel/moodreel/internal/charm"
	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/models"
	"github.com/moodreel/moodreel/internal/storage/sqlite"
)

// Store is the durable backend behind the corpus builder and embedding
// cache. All writes go to SQLite; when Charm sync is enabled, vectors are
// mirrored to Charm KV and pulled from there on a cold local database.
type Store struct {
	db         *sqlite.DB
	corpus     *sqlite.CorpusStore
	embeddings *sqlite.EmbeddingStore
	vectors    *VectorStorage // nil unless Charm sync is enabled
	charm      *charm.Client
}

// Open initializes the store under cfg.DataDir (XDG data home when unset)
func Open(cfg *config.Config) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = sqlite.DefaultDataDir()
	}

	db, err := sqlite.Open(filepath.Join(dataDir, "corpus.db"))
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	s := &Store{
		db:         db,
		corpus:     sqlite.NewCorpusStore(db),
		embeddings: sqlite.NewEmbeddingStore(db),
	}

	if cfg.CharmSync {
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: true,
		})
		if err != nil {
			// Charm is a mirror, not the source of truth; run local-only
			log.Printf("Warning: charm sync unavailable, using local cache only: %v", err)
		} else {
			s.charm = client
			s.vectors = NewVectorStorage(client)
		}
	}

	return s, nil
}

// OpenInMemory creates a store over an in-memory database (for testing)
func OpenInMemory() (*Store, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return &Store{
		db:         db,
		corpus:     sqlite.NewCorpusStore(db),
		embeddings: sqlite.NewEmbeddingStore(db),
	}, nil
}

// Close releases the underlying databases
func (s *Store) Close() error {
	if s.charm != nil {
		_ = s.charm.Close()
	}
	return s.db.Close()
}

// SaveSnapshot persists a snapshot and marks it current atomically
func (s *Store) SaveSnapshot(snap *models.CorpusSnapshot) error {
	return s.corpus.SaveSnapshot(snap)
}

// LoadSnapshot returns the current snapshot, or nil when none exists
func (s *Store) LoadSnapshot() (*models.CorpusSnapshot, error) {
	return s.corpus.LoadSnapshot()
}

// SaveVectors persists the embedding matrix for a snapshot
func (s *Store) SaveVectors(snap *models.CorpusSnapshot, vectors [][]float64) error {
	if err := s.embeddings.SaveMatrix(snap, vectors); err != nil {
		return err
	}
	if s.vectors != nil {
		if err := s.vectors.SaveMatrix(snap, vectors); err != nil {
			log.Printf("Warning: mirroring vectors to charm failed: %v", err)
		}
	}
	return nil
}

// LoadVectors returns the stored matrix for a snapshot version, or nil
// when nothing is cached. A cold local database falls back to the Charm
// mirror and rehydrates SQLite from it.
func (s *Store) LoadVectors(snap *models.CorpusSnapshot) ([][]float64, error) {
	vectors, err := s.embeddings.LoadMatrix(snap.Version)
	if err != nil {
		return nil, err
	}
	if vectors != nil || s.vectors == nil {
		return vectors, nil
	}

	vectors, err = s.vectors.LoadMatrix(snap.Version)
	if err != nil {
		log.Printf("Warning: reading charm vector mirror failed: %v", err)
		return nil, nil
	}
	if len(vectors) == len(snap.Items) {
		if err := s.embeddings.SaveMatrix(snap, vectors); err != nil {
			log.Printf("Warning: rehydrating local vector cache failed: %v", err)
		}
	}
	return vectors, nil
}
