// ABOUTME: Embedding cache persistence for SQLite
// ABOUTME: Vectors stored as little-endian float64 BLOBs keyed by snapshot version
package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/moodreel/moodreel/internal/models"
)

// EmbeddingStore handles embedding matrix persistence
type EmbeddingStore struct {
	db *DB
}

// NewEmbeddingStore creates a new EmbeddingStore
func NewEmbeddingStore(db *DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// SaveMatrix replaces all vectors for a snapshot version in one
// transaction. Vectors are written in snapshot item order; a partial
// matrix is never visible.
func (s *EmbeddingStore) SaveMatrix(snap *models.CorpusSnapshot, vectors [][]float64) error {
	if len(vectors) != len(snap.Items) {
		return fmt.Errorf("matrix has %d vectors for %d items", len(vectors), len(snap.Items))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning embedding transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM embeddings WHERE version = ?`, snap.Version); err != nil {
		return fmt.Errorf("clearing stale vectors: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO embeddings (version, pos, imdb_id, vector)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer stmt.Close()

	for pos, vec := range vectors {
		if _, err := stmt.Exec(snap.Version, pos, snap.Items[pos].ImdbID, vectorToBlob(vec)); err != nil {
			return fmt.Errorf("inserting vector for %s: %w", snap.Items[pos].ImdbID, err)
		}
	}

	return tx.Commit()
}

// LoadMatrix returns all vectors for a snapshot version in item order.
// Returns nil when no vectors are stored for the version.
func (s *EmbeddingStore) LoadMatrix(version string) ([][]float64, error) {
	rows, err := s.db.Query(`
		SELECT vector FROM embeddings WHERE version = ? ORDER BY pos ASC
	`, version)
	if err != nil {
		return nil, fmt.Errorf("loading vectors for %s: %w", version, err)
	}
	defer rows.Close()

	var vectors [][]float64
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		vectors = append(vectors, blobToVector(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	return vectors, nil
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
