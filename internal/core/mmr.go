// ABOUTME: Maximal Marginal Relevance selection balancing relevance and diversity
// ABOUTME: Lambda is jittered per request so the trade-off varies call to call
package core

import (
	"math/rand/v2"

	"github.com/moodreel/moodreel/internal/models"
)

// JitterLambda offsets the base lambda by a uniform draw in [-jitter, jitter]
// and clamps the result to [0,1].
func JitterLambda(base, jitter float64, rng *rand.Rand) float64 {
	lambda := base
	if jitter > 0 {
		lambda += (rng.Float64()*2 - 1) * jitter
	}
	if lambda < 0 {
		return 0
	}
	if lambda > 1 {
		return 1
	}
	return lambda
}

// itemSimilarity measures how redundant two candidates are with each other:
// cosine over their corpus embeddings when both are present, token Jaccard
// over title+overview otherwise.
func itemSimilarity(a, b *models.ScoredCandidate) float64 {
	if len(a.Vector) > 0 && len(b.Vector) > 0 {
		return CosineSimilarity(a.Vector, b.Vector)
	}
	return Jaccard(
		TokenSet(a.Item.Title+" "+a.Item.Overview),
		TokenSet(b.Item.Title+" "+b.Item.Overview),
	)
}

// SelectMMR greedily picks min(K, len(pool)) candidates, each maximizing
// lambda × relevance − (1−lambda) × maxSimilarityToSelected. Relevance is
// the candidate's perturbed score. The returned slice never contains a
// duplicate item and preserves the greedy pick order.
func SelectMMR(pool []models.ScoredCandidate, k int, lambda float64) []models.ScoredCandidate {
	if len(pool) == 0 || k <= 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	remaining := make([]models.ScoredCandidate, len(pool))
	copy(remaining, pool)
	selected := make([]models.ScoredCandidate, 0, k)

	for len(selected) < k && len(remaining) > 0 {
		bestIdx := 0
		bestScore := mmrScore(&remaining[0], selected, lambda)
		for i := 1; i < len(remaining); i++ {
			if score := mmrScore(&remaining[i], selected, lambda); score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected
}

func mmrScore(c *models.ScoredCandidate, selected []models.ScoredCandidate, lambda float64) float64 {
	maxSim := 0.0
	for i := range selected {
		if sim := itemSimilarity(c, &selected[i]); sim > maxSim {
			maxSim = sim
		}
	}
	return lambda*c.Perturbed - (1-lambda)*maxSim
}
