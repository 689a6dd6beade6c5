// ABOUTME: Recommender wires corpus, embeddings, and encoder into one entry point
// ABOUTME: Dispatches on strategy and degrades gracefully when the encoder is down
package core

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/models"
)

// SnapshotSource supplies the published corpus snapshot, building one on
// first use.
type SnapshotSource interface {
	EnsureReady(ctx context.Context, pages int) (*models.CorpusSnapshot, error)
}

// VectorSource supplies the embedding matrix aligned with a snapshot's items
type VectorSource interface {
	VectorsFor(ctx context.Context, snap *models.CorpusSnapshot) ([][]float64, error)
}

// Recommender is the single entry point for recommendation requests
type Recommender struct {
	corpus  SnapshotSource
	vectors VectorSource
	encoder llm.Encoder
	cfg     *config.Config
	newRNG  func() *rand.Rand
}

// Option configures a Recommender
type Option func(*Recommender)

// WithRandSource overrides the per-request rng constructor. Tests use this
// to inject seeded generators.
func WithRandSource(newRNG func() *rand.Rand) Option {
	return func(r *Recommender) {
		r.newRNG = newRNG
	}
}

// NewRecommender creates a Recommender over the given corpus, vector cache,
// and encoder. Each request draws from its own rng so concurrent requests
// never contend on shared random state.
func NewRecommender(corpus SnapshotSource, vectors VectorSource, encoder llm.Encoder, cfg *config.Config, opts ...Option) *Recommender {
	r := &Recommender{
		corpus:  corpus,
		vectors: vectors,
		encoder: encoder,
		cfg:     cfg,
		newRNG: func() *rand.Rand {
			now := uint64(time.Now().UnixNano())
			return rand.New(rand.NewPCG(now, now^0x9e3779b97f4a7c15))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns an ordered list of up to query.Limit recommendations.
// The filter stage runs before any scoring, so min-max normalization only
// ever sees the post-filter pool. An empty filtered pool yields an empty
// result, not an error. Repeated identical requests may return different
// orderings and item sets; all results are drawn from the top of the
// filtered, relevance-ranked pool.
func (r *Recommender) Recommend(ctx context.Context, query models.Query) ([]models.Recommendation, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	snap, err := r.corpus.EnsureReady(ctx, r.cfg.BuildPages)
	if err != nil {
		return nil, fmt.Errorf("corpus not ready: %w", err)
	}

	pool := ApplyFilters(snap.Items, query.Filters)
	if len(pool) == 0 {
		return []models.Recommendation{}, nil
	}

	rng := r.newRNG()

	var selected []models.ScoredCandidate
	switch query.Strategy {
	case models.StrategySemantic:
		selected, err = r.semanticPath(ctx, snap, pool, query, rng)
	case models.StrategyPopular:
		selected = r.popularPath(pool, query, rng)
	default:
		// unified is the default for unset or unknown strategies, matching
		// ParseStrategy
		selected, err = r.unifiedPath(ctx, snap, pool, query, rng)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		// Encoder trouble only disables the semantic signal; rank on
		// keyword and popularity instead of failing the request.
		log.Printf("Warning: %s strategy degraded to popularity ranking: %v", query.Strategy, err)
		selected = r.popularPath(pool, query, rng)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Perturbed > selected[j].Perturbed
	})

	out := make([]models.Recommendation, 0, len(selected))
	for _, c := range selected {
		out = append(out, models.RecommendationFrom(c))
	}
	return out, nil
}

// poolVectors aligns the snapshot's embedding matrix with the filtered pool
func (r *Recommender) poolVectors(ctx context.Context, snap *models.CorpusSnapshot, pool []models.CorpusItem) ([][]float64, error) {
	matrix, err := r.vectors.VectorsFor(ctx, snap)
	if err != nil {
		return nil, err
	}
	index := snap.ItemIndex()
	aligned := make([][]float64, len(pool))
	for i := range pool {
		if pos, ok := index[pool[i].ImdbID]; ok && pos < len(matrix) {
			aligned[i] = matrix[pos]
		}
	}
	return aligned, nil
}

// semanticPath ranks purely on perturbed cosine similarity. With a positive
// temperature the final K are sampled from the top pool rather than taken
// verbatim, which keeps repeated queries from freezing into one answer.
func (r *Recommender) semanticPath(ctx context.Context, snap *models.CorpusSnapshot, pool []models.CorpusItem, query models.Query, rng *rand.Rand) ([]models.ScoredCandidate, error) {
	vectors, err := r.poolVectors(ctx, snap, pool)
	if err != nil {
		return nil, err
	}
	queryVec, err := r.encoder.EmbedText(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	top := SemanticSearch(queryVec, pool, vectors, topPoolSize(query.Limit), r.cfg.Temperature, rng)
	if r.cfg.Temperature > 0 {
		return SampleWithoutReplacement(top, query.Limit, r.cfg.SampleFloor, rng), nil
	}
	if query.Limit < len(top) {
		top = top[:query.Limit]
	}
	return top, nil
}

// unifiedPath blends all four signals, perturbs the blend, and diversifies
// the top pool with MMR under a jittered lambda.
func (r *Recommender) unifiedPath(ctx context.Context, snap *models.CorpusSnapshot, pool []models.CorpusItem, query models.Query, rng *rand.Rand) ([]models.ScoredCandidate, error) {
	vectors, err := r.poolVectors(ctx, snap, pool)
	if err != nil {
		return nil, err
	}
	queryVec, err := r.encoder.EmbedText(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	// Raw similarities over the whole filtered pool; noise waits for the
	// blended stage so it is applied exactly once.
	scored := SemanticSearch(queryVec, pool, vectors, len(pool), 0, rng)
	BlendSignals(scored, query.Text, r.cfg.Weights)
	perturbBlended(scored, r.cfg.Temperature, rng)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Perturbed > scored[j].Perturbed
	})
	if size := topPoolSize(query.Limit); size < len(scored) {
		scored = scored[:size]
	}

	lambda := JitterLambda(r.cfg.MMRLambda, r.cfg.LambdaJitter, rng)
	return SelectMMR(scored, query.Limit, lambda), nil
}

// popularPath needs no encoder: keyword overlap and popularity carry the
// ranking, and the final K are sampled from the top pool.
func (r *Recommender) popularPath(pool []models.CorpusItem, query models.Query, rng *rand.Rand) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, len(pool))
	for i := range pool {
		scored[i] = models.ScoredCandidate{Item: &pool[i]}
	}
	BlendSignals(scored, query.Text, r.cfg.Weights)
	perturbBlended(scored, r.cfg.Temperature, rng)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Perturbed > scored[j].Perturbed
	})
	if size := topPoolSize(query.Limit); size < len(scored) {
		scored = scored[:size]
	}
	return SampleWithoutReplacement(scored, query.Limit, r.cfg.SampleFloor, rng)
}

// perturbBlended adds pool-scaled noise to every blended score
func perturbBlended(scored []models.ScoredCandidate, intensity float64, rng *rand.Rand) {
	if len(scored) == 0 || intensity <= 0 {
		return
	}
	min, max := scored[0].Blended, scored[0].Blended
	for _, c := range scored[1:] {
		if c.Blended < min {
			min = c.Blended
		}
		if c.Blended > max {
			max = c.Blended
		}
	}
	spread := max - min
	for i := range scored {
		scored[i].Perturbed = Perturb(scored[i].Blended, spread, intensity, rng)
	}
}

// topPoolSize is the candidate pool fed into the final selection stage
func topPoolSize(limit int) int {
	size := limit * 5
	if size < 10 {
		size = 10
	}
	return size
}
