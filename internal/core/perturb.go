// ABOUTME: Bounded stochastic perturbation applied to similarity and blended scores
// ABOUTME: Same helper serves both scoring paths; noise scale is intensity times spread
package core

import "math/rand/v2"

// Perturb adds zero-mean Gaussian noise with standard deviation
// intensity × spread to score. With zero intensity or zero spread the
// score passes through unchanged, so a constant pool stays deterministic.
func Perturb(score, spread, intensity float64, rng *rand.Rand) float64 {
	if intensity <= 0 || spread <= 0 {
		return score
	}
	return score + rng.NormFloat64()*intensity*spread
}
