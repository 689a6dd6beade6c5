// ABOUTME: Signal blender combining semantic, keyword, popularity, and recency scores
// ABOUTME: Every sub-score is min-max normalized over the current candidate pool
package core

import (
	"math"

	"github.com/moodreel/moodreel/internal/models"
)

// minMaxNormalize maps values onto [0,1] with the pool maximum at 1.0 and
// the pool minimum at 0.0. A constant or empty pool normalizes to all zeros
// so a degenerate signal contributes nothing rather than a full weight.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}

// keywordScore is the fraction of the query's tokens found in the item's
// title and overview. An item without overview text can still match on title.
func keywordScore(query map[string]struct{}, item *models.CorpusItem) float64 {
	if item.Overview == "" && item.Title == "" {
		return 0
	}
	return OverlapFraction(query, TokenSet(item.Title+" "+item.Overview))
}

// popularityScore weighs audience rating by vote volume with a small critic
// term, so a 7.0 with a million votes outranks an 8.5 with twelve.
func popularityScore(item *models.CorpusItem) float64 {
	return item.Rating*(1+math.Log(1+float64(item.Votes))) + 0.02*float64(item.Metascore)
}

// BlendSignals computes the weighted multi-signal score for each candidate,
// writing the result into Blended. Candidates must already carry their raw
// semantic similarity; an empty-overview item keeps its semantic and keyword
// contributions at the floor. Normalization is relative to this pool only,
// so blended scores are not comparable across requests.
func BlendSignals(candidates []models.ScoredCandidate, queryText string, weights models.BlendWeights) {
	if len(candidates) == 0 {
		return
	}

	semantic := make([]float64, len(candidates))
	keyword := make([]float64, len(candidates))
	popularity := make([]float64, len(candidates))
	recency := make([]float64, len(candidates))

	query := TokenSet(queryText)
	minYear := math.MaxInt32
	for _, c := range candidates {
		if c.Item.Year > 0 && c.Item.Year < minYear {
			minYear = c.Item.Year
		}
	}

	for i, c := range candidates {
		semantic[i] = c.RawSimilarity
		keyword[i] = keywordScore(query, c.Item)
		popularity[i] = popularityScore(c.Item)
		year := c.Item.Year
		if year <= 0 {
			// unknown release year sinks to the pool minimum
			year = minYear
		}
		recency[i] = float64(year)
	}

	semantic = minMaxNormalize(semantic)
	keyword = minMaxNormalize(keyword)
	popularity = minMaxNormalize(popularity)
	recency = minMaxNormalize(recency)

	// Items without overview text have nothing to embed or match against,
	// so both text signals stay at the floor instead of whatever the
	// zero-vector similarity or a title-only overlap normalized to.
	for i, c := range candidates {
		if c.Item.Overview == "" {
			semantic[i] = 0
			keyword[i] = 0
		}
	}

	for i := range candidates {
		candidates[i].Blended = weights.Semantic*semantic[i] +
			weights.Keyword*keyword[i] +
			weights.Popularity*popularity[i] +
			weights.Recency*recency[i]
		candidates[i].Perturbed = candidates[i].Blended
	}
}
