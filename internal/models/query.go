// ABOUTME: Query, Filters, Strategy and BlendWeights for recommendation requests
// ABOUTME: All request-scoped; a Query owns nothing beyond one Recommend call
package models

import (
	"fmt"
	"strings"
)

// Strategy selects the scoring path for a recommendation request
type Strategy string

const (
	// StrategySemantic ranks by embedding similarity alone
	StrategySemantic Strategy = "semantic"
	// StrategyUnified blends semantic, keyword, popularity and recency
	// signals and diversifies the final set with MMR
	StrategyUnified Strategy = "unified"
	// StrategyPopular ranks by keyword overlap and popularity, no encoder
	StrategyPopular Strategy = "popular"
)

// ParseStrategy maps a user-supplied name to a Strategy, defaulting to
// unified for empty or unknown input
func ParseStrategy(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "semantic", "embed", "embedding":
		return StrategySemantic
	case "popular", "keyword", "popularity":
		return StrategyPopular
	default:
		return StrategyUnified
	}
}

// Filters are the hard constraints applied before scoring and selection.
// Zero values mean "not active" for the numeric bounds.
type Filters struct {
	MinYear     int     `json:"min_year,omitempty"`
	MaxYear     int     `json:"max_year,omitempty"`
	MinRating   float64 `json:"min_rating,omitempty"`
	EnglishOnly bool    `json:"english_only,omitempty"`
	MediaType   string  `json:"media_type,omitempty"` // movie, series, or "" for both
}

// Validate rejects contradictory or malformed filter combinations
func (f *Filters) Validate() error {
	if f.MinYear != 0 && f.MaxYear != 0 && f.MinYear > f.MaxYear {
		return fmt.Errorf("min_year %d exceeds max_year %d", f.MinYear, f.MaxYear)
	}
	if f.MinRating < 0 || f.MinRating > 10 {
		return fmt.Errorf("min_rating %.2f outside 0-10", f.MinRating)
	}
	switch f.MediaType {
	case "", MediaTypeMovie, MediaTypeSeries:
	default:
		return fmt.Errorf("unknown media_type %q", f.MediaType)
	}
	return nil
}

// Query is one recommendation request
type Query struct {
	Text     string   `json:"text"`
	Strategy Strategy `json:"strategy"`
	Filters  Filters  `json:"filters"`
	Limit    int      `json:"limit"`
}

// Validate checks the request is answerable
func (q *Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("query text is empty")
	}
	if q.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	return q.Filters.Validate()
}

// BlendWeights control the unified score combination. The sum is not
// required to equal 1 but the defaults do, which keeps blended scores
// interpretable as a [0,1] quantity.
type BlendWeights struct {
	Semantic   float64 `json:"semantic"`
	Keyword    float64 `json:"keyword"`
	Popularity float64 `json:"popularity"`
	Recency    float64 `json:"recency"`
}

// DefaultBlendWeights returns the tuned production weights
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		Semantic:   0.45,
		Keyword:    0.20,
		Popularity: 0.20,
		Recency:    0.05,
	}
}
