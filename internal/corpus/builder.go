// ABOUTME: Corpus builder fetching horror movies from OMDb into versioned snapshots
// ABOUTME: Single-writer builds behind a mutex; published snapshots are read lock-free
package corpus

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/moodreel/moodreel/internal/models"
	"github.com/moodreel/moodreel/internal/omdb"
)

// MetadataSource is the external movie-metadata capability. Satisfied by
// the OMDb client in production and by fakes in tests.
type MetadataSource interface {
	SearchTitles(ctx context.Context, query string, page int, mediaType string) ([]omdb.SearchHit, error)
	GetByID(ctx context.Context, imdbID string, fullPlot bool) (*models.CorpusItem, error)
}

// SnapshotStore is the durable backend for corpus snapshots
type SnapshotStore interface {
	SaveSnapshot(*models.CorpusSnapshot) error
	LoadSnapshot() (*models.CorpusSnapshot, error)
}

// BuilderConfig tunes a corpus build
type BuilderConfig struct {
	// MaxDetails caps detail fetches per build to stay inside OMDb's
	// daily request limit
	MaxDetails int
	// DetailDelay spaces detail requests (rate-limit courtesy)
	DetailDelay time.Duration
	// MediaTypes searched during discovery; defaults to movies only
	MediaTypes []string
}

// Builder maintains the corpus snapshot lifecycle: build once, read many,
// rebuild explicitly. The published snapshot is immutable; rebuilds swap
// the pointer wholesale so readers never observe a half-built corpus.
type Builder struct {
	source MetadataSource
	store  SnapshotStore
	cfg    BuilderConfig

	buildMu sync.Mutex
	current atomic.Pointer[models.CorpusSnapshot]
}

// NewBuilder creates a corpus builder
func NewBuilder(source MetadataSource, store SnapshotStore, cfg BuilderConfig) *Builder {
	if cfg.MaxDetails <= 0 {
		cfg.MaxDetails = 800
	}
	if len(cfg.MediaTypes) == 0 {
		cfg.MediaTypes = []string{models.MediaTypeMovie}
	}
	return &Builder{
		source: source,
		store:  store,
		cfg:    cfg,
	}
}

// Snapshot returns the currently published snapshot, or nil before the
// first EnsureReady/Build
func (b *Builder) Snapshot() *models.CorpusSnapshot {
	return b.current.Load()
}

// EnsureReady returns the published snapshot, loading it from durable
// storage or triggering a build when none exists yet
func (b *Builder) EnsureReady(ctx context.Context, pages int) (*models.CorpusSnapshot, error) {
	if snap := b.current.Load(); snap != nil {
		return snap, nil
	}

	b.buildMu.Lock()
	defer b.buildMu.Unlock()

	// Another request may have finished while we waited for the lock
	if snap := b.current.Load(); snap != nil {
		return snap, nil
	}

	snap, err := b.store.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	if snap != nil {
		b.current.Store(snap)
		return snap, nil
	}

	return b.buildLocked(ctx, pages)
}

// Rebuild fetches fresh metadata and replaces the published snapshot.
// The existing corpus is extended with newly discovered items rather
// than discarded.
func (b *Builder) Rebuild(ctx context.Context, pages int) (*models.CorpusSnapshot, error) {
	b.buildMu.Lock()
	defer b.buildMu.Unlock()
	return b.buildLocked(ctx, pages)
}

// buildLocked runs a full build. Caller holds buildMu. Partial state is
// discarded on error or cancellation; only a complete snapshot is
// persisted and published.
func (b *Builder) buildLocked(ctx context.Context, pages int) (*models.CorpusSnapshot, error) {
	if pages <= 0 {
		pages = 1
	}

	var existing []models.CorpusItem
	existingIDs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	if prev := b.current.Load(); prev != nil {
		existing = prev.Items
	} else if prev, err := b.store.LoadSnapshot(); err == nil && prev != nil {
		existing = prev.Items
	}
	for i := range existing {
		existingIDs[existing[i].ImdbID] = true
		seenTitles[existing[i].NormalizedTitle()] = true
	}

	// Phase 1: collect candidate ids via broad title searches. A failed
	// page is logged and skipped, never fatal to the build.
	var rawIDs []string
	seenIDs := make(map[string]bool)
	for _, term := range DiscoveryTerms {
		for _, mediaType := range b.cfg.MediaTypes {
			for page := 1; page <= pages; page++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				hits, err := b.source.SearchTitles(ctx, term, page, mediaType)
				if err != nil {
					log.Printf("corpus build: search %q page %d failed: %v", term, page, err)
					continue
				}
				for _, hit := range hits {
					if hit.ImdbID != "" && !seenIDs[hit.ImdbID] && !existingIDs[hit.ImdbID] {
						seenIDs[hit.ImdbID] = true
						rawIDs = append(rawIDs, hit.ImdbID)
					}
				}
			}
		}
	}
	log.Printf("corpus build: %d new candidate ids (%d already cached)", len(rawIDs), len(existingIDs))

	// Phase 2: fetch details, keep only the target genre, dedupe by title
	items := append([]models.CorpusItem(nil), existing...)
	fetched := 0
	consecutiveErrors := 0
	for _, imdbID := range rawIDs {
		if fetched >= b.cfg.MaxDetails {
			log.Printf("corpus build: reached detail cap (%d), stopping", b.cfg.MaxDetails)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item, err := b.source.GetByID(ctx, imdbID, true)
		if err != nil {
			consecutiveErrors++
			if consecutiveErrors >= 5 {
				log.Printf("corpus build: %d consecutive detail errors, likely rate-limited, stopping: %v",
					consecutiveErrors, err)
				break
			}
			log.Printf("corpus build: detail fetch %s failed: %v", imdbID, err)
			continue
		}
		consecutiveErrors = 0
		fetched++

		if item == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(item.Genre), targetGenre) {
			continue
		}
		if err := item.Validate(); err != nil {
			log.Printf("corpus build: skipping invalid item %s: %v", imdbID, err)
			continue
		}
		titleKey := item.NormalizedTitle()
		if seenTitles[titleKey] {
			continue
		}
		seenTitles[titleKey] = true
		items = append(items, *item)

		if b.cfg.DetailDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.cfg.DetailDelay):
			}
		}
	}

	snap, err := models.NewCorpusSnapshot(uuid.New().String(), time.Now().UTC(), items)
	if err != nil {
		return nil, err
	}

	if err := b.store.SaveSnapshot(snap); err != nil {
		return nil, err
	}
	b.current.Store(snap)
	log.Printf("corpus build complete: %d items, version %s", snap.Size(), snap.Version)
	return snap, nil
}
