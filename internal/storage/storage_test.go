// ABOUTME: Tests for the store facade over the in-memory SQLite backend
// ABOUTME: Verifies snapshot and vector persistence through the public API
package storage

import (
	"testing"
	"time"

	"github.com/moodreel/moodreel/internal/models"
)

func TestStore_SnapshotAndVectors(t *testing.T) {
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer store.Close()

	snap, err := models.NewCorpusSnapshot("v1", time.Now().UTC().Truncate(time.Second), []models.CorpusItem{
		{ImdbID: "tt1073105", Title: "The Descent", Rating: 7.2, Overview: "Cavers trapped underground."},
		{ImdbID: "tt0480249", Title: "I Am Legend", Rating: 7.2, Overview: "Last man in an empty city."},
	})
	if err != nil {
		t.Fatalf("NewCorpusSnapshot: %v", err)
	}

	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded == nil || loaded.Version != "v1" {
		t.Fatalf("loaded snapshot = %+v", loaded)
	}

	// No vectors cached yet
	vectors, err := store.LoadVectors(loaded)
	if err != nil {
		t.Fatalf("LoadVectors: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil vectors before save, got %d", len(vectors))
	}

	matrix := [][]float64{{1, 0}, {0, 1}}
	if err := store.SaveVectors(loaded, matrix); err != nil {
		t.Fatalf("SaveVectors: %v", err)
	}

	vectors, err = store.LoadVectors(loaded)
	if err != nil {
		t.Fatalf("LoadVectors after save: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("loaded %d vectors, want 2", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Errorf("vector content mismatch: %v", vectors)
	}
}

func TestStore_LoadSnapshot_NoneBuilt(t *testing.T) {
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer store.Close()

	snap, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot on fresh store, got %+v", snap)
	}
}
