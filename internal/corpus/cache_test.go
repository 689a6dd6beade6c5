// ABOUTME: Tests for the embedding cache with a deterministic fake encoder
// ABOUTME: Covers lazy encoding, persistence reuse, and mismatch recovery
package corpus

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/moodreel/moodreel/internal/models"
)

func snapTime(t *testing.T) time.Time {
	t.Helper()
	return time.Now().UTC()
}

// hashEncoder produces deterministic unit vectors from text content
type hashEncoder struct {
	mu    sync.Mutex
	calls int
	dim   int
}

func (e *hashEncoder) encode(text string) []float64 {
	vec := make([]float64, e.dim)
	if text == "" {
		return vec
	}
	var h uint64 = 14695981039346656037
	for _, r := range text {
		h = (h ^ uint64(r)) * 1099511628211
		vec[h%uint64(e.dim)] += 1
	}
	// unit norm
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum > 0 {
		norm := math.Sqrt(sum)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (e *hashEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *hashEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = e.encode(t)
	}
	return out, nil
}

// memVectorStore is an in-memory VectorStore
type memVectorStore struct {
	mu       sync.Mutex
	version  string
	matrix   [][]float64
	saves    int
	loadions int
}

func (m *memVectorStore) SaveVectors(snap *models.CorpusSnapshot, vectors [][]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = snap.Version
	m.matrix = vectors
	m.saves++
	return nil
}

func (m *memVectorStore) LoadVectors(snap *models.CorpusSnapshot) ([][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadions++
	if m.version != snap.Version {
		return nil, nil
	}
	return m.matrix, nil
}

func cacheSnapshot(t *testing.T, version string, n int) *models.CorpusSnapshot {
	t.Helper()
	items := make([]models.CorpusItem, n)
	titles := []string{"The Fog", "The Mist", "The Witch", "The Thing", "The Host"}
	for i := range items {
		items[i] = models.CorpusItem{
			ImdbID:   string(rune('a'+i)) + "-id",
			Title:    titles[i%len(titles)],
			Overview: "overview for " + titles[i%len(titles)],
			Rating:   7,
		}
	}
	snap, err := models.NewCorpusSnapshot(version, snapTime(t), items)
	if err != nil {
		t.Fatalf("NewCorpusSnapshot: %v", err)
	}
	return snap
}

func TestEmbeddingCache_EncodesOnceAndPersists(t *testing.T) {
	enc := &hashEncoder{dim: 8}
	store := &memVectorStore{}
	cache := NewEmbeddingCache(store, enc, 2, 8)

	snap := cacheSnapshot(t, "v1", 5)

	matrix, err := cache.VectorsFor(context.Background(), snap)
	if err != nil {
		t.Fatalf("VectorsFor: %v", err)
	}
	if len(matrix) != 5 {
		t.Fatalf("matrix rows = %d, want 5", len(matrix))
	}
	// 5 texts with batch size 2 means 3 encoder calls
	if enc.calls != 3 {
		t.Errorf("encoder calls = %d, want 3 batches", enc.calls)
	}
	if store.saves != 1 {
		t.Errorf("store saves = %d, want 1", store.saves)
	}

	// Second call for the same version must hit the in-memory cache
	if _, err := cache.VectorsFor(context.Background(), snap); err != nil {
		t.Fatalf("second VectorsFor: %v", err)
	}
	if enc.calls != 3 {
		t.Errorf("encoder re-invoked on cached version: %d calls", enc.calls)
	}
}

func TestEmbeddingCache_LoadsPersistedMatrix(t *testing.T) {
	snap := cacheSnapshot(t, "v1", 3)

	pre := make([][]float64, 3)
	for i := range pre {
		pre[i] = []float64{float64(i), 0, 0}
	}
	store := &memVectorStore{version: "v1", matrix: pre}
	enc := &hashEncoder{dim: 3}
	cache := NewEmbeddingCache(store, enc, 64, 3)

	matrix, err := cache.VectorsFor(context.Background(), snap)
	if err != nil {
		t.Fatalf("VectorsFor: %v", err)
	}
	if enc.calls != 0 {
		t.Errorf("encoder called %d times despite persisted matrix", enc.calls)
	}
	if matrix[2][0] != 2 {
		t.Errorf("persisted matrix not returned: %v", matrix[2])
	}
}

func TestEmbeddingCache_MismatchForcesFullReencode(t *testing.T) {
	snap := cacheSnapshot(t, "v1", 4)

	// Persisted matrix from a smaller corpus: must be discarded wholesale
	store := &memVectorStore{version: "v1", matrix: [][]float64{{1}, {2}}}
	enc := &hashEncoder{dim: 8}
	cache := NewEmbeddingCache(store, enc, 64, 8)

	matrix, err := cache.VectorsFor(context.Background(), snap)
	if err != nil {
		t.Fatalf("VectorsFor: %v", err)
	}
	if len(matrix) != 4 {
		t.Fatalf("matrix rows = %d, want 4", len(matrix))
	}
	if enc.calls == 0 {
		t.Error("expected full re-encode after count mismatch")
	}
	if store.saves != 1 {
		t.Errorf("recomputed matrix not persisted, saves = %d", store.saves)
	}
}

func TestEmbeddingCache_EmptyOverviewGetsZeroVector(t *testing.T) {
	items := []models.CorpusItem{
		{ImdbID: "tt1", Title: "Film With Plot", Overview: "a haunted lighthouse", Rating: 7},
		{ImdbID: "tt2", Title: "Film Without Plot", Overview: "", Rating: 7},
	}
	snap, err := models.NewCorpusSnapshot("v1", snapTime(t), items)
	if err != nil {
		t.Fatalf("NewCorpusSnapshot: %v", err)
	}

	cache := NewEmbeddingCache(&memVectorStore{}, &hashEncoder{dim: 8}, 64, 8)
	matrix, err := cache.VectorsFor(context.Background(), snap)
	if err != nil {
		t.Fatalf("VectorsFor: %v", err)
	}

	var norm float64
	for _, v := range matrix[1] {
		norm += v * v
	}
	if norm != 0 {
		t.Errorf("overview-less item should get a zero vector, got %v", matrix[1])
	}
	if len(matrix[1]) != len(matrix[0]) {
		t.Errorf("zero vector dimension %d differs from encoded %d", len(matrix[1]), len(matrix[0]))
	}
}
