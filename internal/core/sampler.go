// ABOUTME: Weighted sampling without replacement over a ranked candidate pool
// ABOUTME: Weights decay linearly from 1.0 at the head to a configured floor
package core

import (
	"math/rand/v2"

	"github.com/moodreel/moodreel/internal/models"
)

// SampleWithoutReplacement draws up to k distinct candidates from ranked,
// weighting the best-ranked at 1.0 and decaying linearly to floor at the
// tail. Candidates whose weight is zero or negative are never drawn, so a
// negative floor truncates the tail rather than erroring. Each call draws
// independently from rng; no state is shared between calls.
func SampleWithoutReplacement(ranked []models.ScoredCandidate, k int, floor float64, rng *rand.Rand) []models.ScoredCandidate {
	if len(ranked) == 0 || k <= 0 {
		return nil
	}

	weights := make([]float64, len(ranked))
	if len(ranked) == 1 {
		weights[0] = 1.0
	} else {
		step := (1.0 - floor) / float64(len(ranked)-1)
		for i := range ranked {
			weights[i] = 1.0 - step*float64(i)
		}
	}

	out := make([]models.ScoredCandidate, 0, k)
	taken := make([]bool, len(ranked))
	for len(out) < k {
		total := 0.0
		for i, w := range weights {
			if !taken[i] && w > 0 {
				total += w
			}
		}
		if total <= 0 {
			break
		}
		target := rng.Float64() * total
		picked := -1
		for i, w := range weights {
			if taken[i] || w <= 0 {
				continue
			}
			target -= w
			if target <= 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			// float accumulation left target marginally positive; take the
			// last eligible candidate
			for i := len(ranked) - 1; i >= 0; i-- {
				if !taken[i] && weights[i] > 0 {
					picked = i
					break
				}
			}
			if picked < 0 {
				break
			}
		}
		taken[picked] = true
		out = append(out, ranked[picked])
	}
	return out
}
