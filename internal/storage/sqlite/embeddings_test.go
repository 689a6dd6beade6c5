// ABOUTME: Tests for embedding blob persistence
// ABOUTME: Verifies exact float64 round-trip and matrix/item alignment checks
package sqlite

import (
	"math"
	"testing"

	"github.com/moodreel/moodreel/internal/models"
)

func TestEmbeddingStore_RoundTrip(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	snap := testSnapshot(t, "v-emb", []models.CorpusItem{
		{ImdbID: "tt0054215", Title: "Psycho", Rating: 8.5},
		{ImdbID: "tt0078748", Title: "Alien", Rating: 8.5},
	})
	if err := NewCorpusStore(db).SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	store := NewEmbeddingStore(db)
	matrix := [][]float64{
		{0.1, -0.2, 0.97, math.Pi},
		{0.5, 0.5, -0.5, 1e-17},
	}
	if err := store.SaveMatrix(snap, matrix); err != nil {
		t.Fatalf("SaveMatrix: %v", err)
	}

	loaded, err := store.LoadMatrix("v-emb")
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d vectors, want 2", len(loaded))
	}
	for i := range matrix {
		for j := range matrix[i] {
			// float64 blobs round-trip bit-exact
			if loaded[i][j] != matrix[i][j] {
				t.Errorf("vector[%d][%d] = %v, want %v", i, j, loaded[i][j], matrix[i][j])
			}
		}
	}
}

func TestEmbeddingStore_SaveMatrix_RejectsMisalignment(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	snap := testSnapshot(t, "v-bad", []models.CorpusItem{
		{ImdbID: "tt0054215", Title: "Psycho", Rating: 8.5},
		{ImdbID: "tt0078748", Title: "Alien", Rating: 8.5},
	})

	err = NewEmbeddingStore(db).SaveMatrix(snap, [][]float64{{0.1}})
	if err == nil {
		t.Fatal("expected error for vector/item count mismatch")
	}
}

func TestEmbeddingStore_LoadMatrix_MissingVersion(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	vecs, err := NewEmbeddingStore(db).LoadMatrix("nope")
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	if vecs != nil {
		t.Errorf("expected nil for unknown version, got %d vectors", len(vecs))
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vec := []float64{0, -0, 1, -1, math.MaxFloat64, math.SmallestNonzeroFloat64}
	got := blobToVector(vectorToBlob(vec))
	if len(got) != len(vec) {
		t.Fatalf("round-trip length %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if math.Float64bits(got[i]) != math.Float64bits(vec[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], vec[i])
		}
	}
}
