// ABOUTME: Embedding cache mapping a corpus snapshot to its vector matrix
// ABOUTME: Loads persisted vectors by version; recomputes fully on any mismatch
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/models"
)

// ErrVectorCountMismatch signals that the persisted matrix does not line
// up with the current snapshot. Recovered locally by a full re-encode;
// the cache is never partially patched.
var ErrVectorCountMismatch = errors.New("persisted vector count disagrees with corpus size")

// VectorStore is the durable backend for embedding matrices
type VectorStore interface {
	SaveVectors(*models.CorpusSnapshot, [][]float64) error
	LoadVectors(*models.CorpusSnapshot) ([][]float64, error)
}

// EmbeddingCache provides one vector per corpus item, aligned with
// snapshot item order, computing lazily and persisting by version
type EmbeddingCache struct {
	store     VectorStore
	encoder   llm.Encoder
	batchSize int
	dimension int

	mu      sync.Mutex
	version string
	matrix  [][]float64
}

// NewEmbeddingCache creates an embedding cache
func NewEmbeddingCache(store VectorStore, encoder llm.Encoder, batchSize, dimension int) *EmbeddingCache {
	if batchSize <= 0 {
		batchSize = 64
	}
	return &EmbeddingCache{
		store:     store,
		encoder:   encoder,
		batchSize: batchSize,
		dimension: dimension,
	}
}

// VectorsFor returns the matrix for the snapshot, encoding and persisting
// it on first use. Matrix rows align with snapshot item order.
func (c *EmbeddingCache) VectorsFor(ctx context.Context, snap *models.CorpusSnapshot) ([][]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.version == snap.Version && len(c.matrix) == snap.Size() {
		return c.matrix, nil
	}

	matrix, err := c.store.LoadVectors(snap)
	if err != nil {
		return nil, fmt.Errorf("loading embedding cache: %w", err)
	}
	if matrix != nil && len(matrix) != snap.Size() {
		log.Printf("embedding cache: %v (have %d, corpus %d), re-encoding",
			ErrVectorCountMismatch, len(matrix), snap.Size())
		matrix = nil
	}

	if matrix == nil {
		matrix, err = c.encodeAll(ctx, snap)
		if err != nil {
			return nil, err
		}
		if err := c.store.SaveVectors(snap, matrix); err != nil {
			return nil, fmt.Errorf("persisting embedding cache: %w", err)
		}
	}

	c.version = snap.Version
	c.matrix = matrix
	return matrix, nil
}

// encodeAll embeds every item overview in batches. Items with no
// overview get a zero vector so they degrade to the semantic floor
// instead of failing the pass.
func (c *EmbeddingCache) encodeAll(ctx context.Context, snap *models.CorpusSnapshot) ([][]float64, error) {
	matrix := make([][]float64, snap.Size())

	var texts []string
	var positions []int
	for i := range snap.Items {
		if text := snap.Items[i].EmbeddingText(); text != "" {
			texts = append(texts, text)
			positions = append(positions, i)
		}
	}

	log.Printf("embedding cache: encoding %d of %d items for version %s",
		len(texts), snap.Size(), snap.Version)

	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := c.encoder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("encoding batch %d-%d: %w", start, end, err)
		}
		for i, vec := range vectors {
			matrix[positions[start+i]] = vec
		}
	}

	// Fill zero vectors for overview-less items, matching the encoded
	// dimension when one exists
	dim := c.dimension
	for _, vec := range matrix {
		if vec != nil {
			dim = len(vec)
			break
		}
	}
	for i, vec := range matrix {
		if vec == nil {
			matrix[i] = make([]float64, dim)
		}
	}

	return matrix, nil
}
