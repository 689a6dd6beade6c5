// ABOUTME: Ranking-quality metrics for offline recommendation evaluation
// ABOUTME: NDCG@K and hit-rate@K against graded relevance judgments

package ranking

import "math"

// DCG computes discounted cumulative gain over a relevance sequence
func DCG(relevances []float64) float64 {
	var sum float64
	for i, rel := range relevances {
		sum += (math.Pow(2, rel) - 1) / math.Log2(float64(i)+2)
	}
	return sum
}

// NDCG computes NDCG@K for an ordered result list against graded relevance
// judgments (itemID -> grade). Items absent from the judgments count as
// grade 0. Returns 0 when no judged item exists, 1 for a perfect ordering.
func NDCG(results []string, relevant map[string]float64, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}
	if k > len(results) {
		k = len(results)
	}

	gains := make([]float64, 0, k)
	for _, id := range results[:k] {
		gains = append(gains, relevant[id])
	}

	// Ideal ordering: all judged grades, best first, truncated to k
	ideal := make([]float64, 0, len(relevant))
	for _, grade := range relevant {
		ideal = append(ideal, grade)
	}
	sortDescending(ideal)
	if len(ideal) > k {
		ideal = ideal[:k]
	}

	idealDCG := DCG(ideal)
	if idealDCG == 0 {
		return 0
	}
	return DCG(gains) / idealDCG
}

// HitRate computes the fraction of the top K results that carry a positive
// relevance grade.
func HitRate(results []string, relevant map[string]float64, k int) float64 {
	if k <= 0 || len(results) == 0 {
		return 0
	}
	if k > len(results) {
		k = len(results)
	}
	hits := 0
	for _, id := range results[:k] {
		if relevant[id] > 0 {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

func sortDescending(values []float64) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] > values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
