// ABOUTME: Cosine similarity search over the corpus embedding matrix
// ABOUTME: Optional temperature noise reshuffles closely-scored candidates per request
package core

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/moodreel/moodreel/internal/models"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticSearch scores every pool item against queryVec and returns the top
// K candidates by perturbed similarity. vectors must be aligned with pool by
// index. When temperature > 0, per-candidate Gaussian noise scaled by
// temperature × (max−min similarity in the pool) is resampled from rng, so
// repeated identical calls can order near-ties differently. Each result
// keeps both the raw and the perturbed similarity for downstream blending.
func SemanticSearch(queryVec []float64, pool []models.CorpusItem, vectors [][]float64, topK int, temperature float64, rng *rand.Rand) []models.ScoredCandidate {
	if len(pool) == 0 || topK <= 0 {
		return nil
	}

	scored := make([]models.ScoredCandidate, 0, len(pool))
	minSim, maxSim := 1.0, -1.0
	for i := range pool {
		var vec []float64
		if i < len(vectors) {
			vec = vectors[i]
		}
		sim := CosineSimilarity(queryVec, vec)
		if sim < minSim {
			minSim = sim
		}
		if sim > maxSim {
			maxSim = sim
		}
		scored = append(scored, models.ScoredCandidate{
			Item:          &pool[i],
			RawSimilarity: sim,
			Perturbed:     sim,
			Vector:        vec,
		})
	}

	if temperature > 0 {
		spread := maxSim - minSim
		for i := range scored {
			scored[i].Perturbed = Perturb(scored[i].RawSimilarity, spread, temperature, rng)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Perturbed > scored[j].Perturbed
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}
