// ABOUTME: CorpusItem model for horror movie metadata from OMDb
// ABOUTME: Immutable once fetched; overview text drives embedding and keyword matching
package models

import (
	"fmt"
	"strings"
)

// Media types recognized by the corpus and filter stage
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

// CorpusItem is one candidate movie or series in the recommendation corpus.
// Scoring uses Title, Overview, Year, Rating, Votes and Metascore; the
// remaining fields are display metadata passed through to callers.
type CorpusItem struct {
	ImdbID      string  `json:"imdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Year        int     `json:"year"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Rating      float64 `json:"rating"`
	Votes       int     `json:"votes"`
	Metascore   int     `json:"metascore,omitempty"`
	Language    string  `json:"language,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	MediaType   string  `json:"media_type"`
	PosterURL   string  `json:"poster_url,omitempty"`
	Director    string  `json:"director,omitempty"`
	Actors      string  `json:"actors,omitempty"`
	Runtime     string  `json:"runtime,omitempty"`
	Awards      string  `json:"awards,omitempty"`
}

// Validate checks that the item can be inserted into a snapshot
func (ci *CorpusItem) Validate() error {
	if strings.TrimSpace(ci.ImdbID) == "" {
		return fmt.Errorf("corpus item is missing imdb_id")
	}
	if strings.TrimSpace(ci.Title) == "" {
		return fmt.Errorf("corpus item %s is missing title", ci.ImdbID)
	}
	if ci.Rating < 0 || ci.Rating > 10 {
		return fmt.Errorf("corpus item %s has rating %.2f outside 0-10", ci.ImdbID, ci.Rating)
	}
	return nil
}

// EmbeddingText returns the text field used for embedding and keyword overlap
func (ci *CorpusItem) EmbeddingText() string {
	return strings.ToLower(strings.TrimSpace(ci.Overview))
}

// NormalizedTitle is the dedup key used during corpus builds
func (ci *CorpusItem) NormalizedTitle() string {
	return strings.ToLower(strings.TrimSpace(ci.Title))
}
