// ABOUTME: Corpus snapshot persistence for SQLite
// ABOUTME: Publishes snapshots atomically so readers never see a partial corpus
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/moodreel/moodreel/internal/models"
)

// CorpusStore handles snapshot persistence
type CorpusStore struct {
	db *DB
}

// NewCorpusStore creates a new CorpusStore
func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{db: db}
}

// SaveSnapshot writes the snapshot and marks it current in one
// transaction. Older snapshots and their vectors are pruned in the same
// transaction, so a crash leaves either the old corpus or the new one,
// never a mix.
func (s *CorpusStore) SaveSnapshot(snap *models.CorpusSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO snapshots (version, built_at, item_count, current)
		VALUES (?, ?, ?, 0)
	`, snap.Version, snap.BuiltAt, len(snap.Items)); err != nil {
		return fmt.Errorf("inserting snapshot %s: %w", snap.Version, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (
			version, pos, imdb_id, title, overview, year, release_date,
			rating, votes, metascore, language, genre, media_type,
			poster_url, director, actors, runtime, awards
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for pos, item := range snap.Items {
		if _, err := stmt.Exec(
			snap.Version, pos, item.ImdbID, item.Title, item.Overview,
			item.Year, item.ReleaseDate, item.Rating, item.Votes,
			item.Metascore, item.Language, item.Genre, item.MediaType,
			item.PosterURL, item.Director, item.Actors, item.Runtime,
			item.Awards,
		); err != nil {
			return fmt.Errorf("inserting item %s: %w", item.ImdbID, err)
		}
	}

	// Flip the current pointer and drop superseded snapshots
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE version != ?`, snap.Version); err != nil {
		return fmt.Errorf("pruning old snapshots: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM embeddings WHERE version != ?`, snap.Version); err != nil {
		return fmt.Errorf("pruning old embeddings: %w", err)
	}
	if _, err := tx.Exec(`UPDATE snapshots SET current = 1 WHERE version = ?`, snap.Version); err != nil {
		return fmt.Errorf("marking snapshot current: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot returns the current snapshot, or nil when none exists
func (s *CorpusStore) LoadSnapshot() (*models.CorpusSnapshot, error) {
	snap := &models.CorpusSnapshot{}
	var itemCount int
	err := s.db.QueryRow(`
		SELECT version, built_at, item_count
		FROM snapshots WHERE current = 1
	`).Scan(&snap.Version, &snap.BuiltAt, &itemCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot metadata: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT imdb_id, title, overview, year, release_date, rating,
		       votes, metascore, language, genre, media_type, poster_url,
		       director, actors, runtime, awards
		FROM items WHERE version = ? ORDER BY pos ASC
	`, snap.Version)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot items: %w", err)
	}
	defer rows.Close()

	snap.Items = make([]models.CorpusItem, 0, itemCount)
	for rows.Next() {
		var item models.CorpusItem
		if err := rows.Scan(
			&item.ImdbID, &item.Title, &item.Overview, &item.Year,
			&item.ReleaseDate, &item.Rating, &item.Votes, &item.Metascore,
			&item.Language, &item.Genre, &item.MediaType, &item.PosterURL,
			&item.Director, &item.Actors, &item.Runtime, &item.Awards,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		snap.Items = append(snap.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	if len(snap.Items) != itemCount {
		return nil, fmt.Errorf("snapshot %s has %d items, metadata says %d",
			snap.Version, len(snap.Items), itemCount)
	}

	return snap, nil
}
