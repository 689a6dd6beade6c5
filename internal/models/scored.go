// ABOUTME: Request-scoped scoring types produced by the recommendation pipeline
// ABOUTME: ScoredCandidate is never persisted; Recommendation is the caller-facing result
package models

// ScoredCandidate carries one corpus item through a single scoring pass.
// RawSimilarity is the cosine score against the query embedding; Blended is
// the multi-signal combination; Perturbed is the score after request-scoped
// noise and is what ranking and selection operate on.
type ScoredCandidate struct {
	Item          *CorpusItem
	RawSimilarity float64
	Blended       float64
	Perturbed     float64
	// Vector is the candidate's corpus embedding when available, used by
	// MMR for pairwise redundancy. Nil on encoder-free paths.
	Vector []float64
}

// Recommendation is one entry in the ordered result list returned to callers
type Recommendation struct {
	ImdbID      string  `json:"imdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"poster_url,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Year        int     `json:"year,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	MediaType   string  `json:"media_type,omitempty"`
	Score       float64 `json:"score"`
}

// RecommendationFrom converts a scored candidate into a caller-facing result
func RecommendationFrom(c ScoredCandidate) Recommendation {
	return Recommendation{
		ImdbID:      c.Item.ImdbID,
		Title:       c.Item.Title,
		Overview:    c.Item.Overview,
		PosterURL:   c.Item.PosterURL,
		ReleaseDate: c.Item.ReleaseDate,
		Year:        c.Item.Year,
		Rating:      c.Item.Rating,
		MediaType:   c.Item.MediaType,
		Score:       c.Perturbed,
	}
}
