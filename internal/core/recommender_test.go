// ABOUTME: Integration tests for the recommender over a fixture corpus
// ABOUTME: Uses a deterministic fake encoder; no network or real embeddings
package core

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/models"
)

// themeEncoder maps text onto three theme axes: haunted, slasher, creature
type themeEncoder struct{}

func (themeEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vec := make([]float64, 3)
	lower := strings.ToLower(text)
	for word, axis := range map[string]int{
		"haunted": 0, "ghost": 0, "house": 0,
		"slasher": 1, "killer": 1, "stalks": 1,
		"creature": 2, "monster": 2, "beast": 2,
	} {
		if strings.Contains(lower, word) {
			vec[axis] += 1
		}
	}
	return llm.NormalizeVector(vec), nil
}

func (e themeEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i], _ = e.EmbedText(ctx, text)
	}
	return out, nil
}

type downEncoder struct{}

func (downEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	return nil, llm.ErrEncoderUnavailable
}

func (downEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return nil, llm.ErrEncoderUnavailable
}

type fixedCorpus struct {
	snap *models.CorpusSnapshot
	err  error
}

func (f *fixedCorpus) EnsureReady(ctx context.Context, pages int) (*models.CorpusSnapshot, error) {
	return f.snap, f.err
}

type fixedVectors struct {
	matrix [][]float64
	err    error
}

func (f *fixedVectors) VectorsFor(ctx context.Context, snap *models.CorpusSnapshot) ([][]float64, error) {
	return f.matrix, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		BuildPages:   1,
		Weights:      models.DefaultBlendWeights(),
		Temperature:  0.08,
		MMRLambda:    0.7,
		LambdaJitter: 0.08,
		SampleFloor:  0.3,
	}
}

// fixtureCorpus builds a snapshot whose embeddings come from themeEncoder,
// mixing haunted-house movies with slashers, creatures, series, and
// low-rated entries.
func fixtureCorpus(t *testing.T) (*fixedCorpus, *fixedVectors) {
	t.Helper()
	items := []models.CorpusItem{
		{ImdbID: "tt01", Title: "Hill Manor", Overview: "a haunted house where a ghost walks the halls", Year: 2018, Rating: 7.8, Votes: 90000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt02", Title: "The Ghost Below", Overview: "a ghost haunts an old house by the sea", Year: 2021, Rating: 7.2, Votes: 40000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt03", Title: "Spirit Wing", Overview: "a haunted wing of a ghost filled house", Year: 1999, Rating: 7.5, Votes: 120000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt04", Title: "Camp Blood", Overview: "a masked killer stalks camp counselors", Year: 1984, Rating: 7.1, Votes: 150000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt05", Title: "Knife Point", Overview: "a slasher killer stalks a small town", Year: 1996, Rating: 7.3, Votes: 80000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt06", Title: "Deep Spawn", Overview: "a creature monster rises from the trench", Year: 2009, Rating: 7.0, Votes: 30000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt07", Title: "Low Tide", Overview: "a beast creature hunts a coastal village", Year: 2012, Rating: 5.4, Votes: 9000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt08", Title: "Haunt Lane", Overview: "a haunted house ghost story told twice", Year: 2015, Rating: 6.1, Votes: 15000, Language: "English", MediaType: models.MediaTypeMovie},
		{ImdbID: "tt09", Title: "Manor Nights", Overview: "a haunted house ghost anthology", Year: 2020, Rating: 8.1, Votes: 200000, Language: "English", MediaType: models.MediaTypeSeries},
		{ImdbID: "tt10", Title: "Silent Field", Overview: "a killer stalks a farm at night", Year: 2001, Rating: 7.4, Votes: 60000, Language: "Korean", MediaType: models.MediaTypeMovie},
	}
	snap, err := models.NewCorpusSnapshot("fixture-v1", time.Now().UTC(), items)
	if err != nil {
		t.Fatalf("NewCorpusSnapshot: %v", err)
	}
	matrix := make([][]float64, len(items))
	enc := themeEncoder{}
	for i, item := range items {
		matrix[i], _ = enc.EmbedText(context.Background(), item.Overview)
	}
	return &fixedCorpus{snap: snap}, &fixedVectors{matrix: matrix}
}

func seededRecommender(t *testing.T, seed uint64, enc llm.Encoder) *Recommender {
	t.Helper()
	corpus, vectors := fixtureCorpus(t)
	return NewRecommender(corpus, vectors, enc, testConfig(),
		WithRandSource(func() *rand.Rand { return testRNG(seed) }))
}

func hauntedQuery(strategy models.Strategy) models.Query {
	return models.Query{
		Text:     "a haunted house with a sad ghost",
		Strategy: strategy,
		Filters:  models.Filters{MinRating: 7.0, MediaType: models.MediaTypeMovie},
		Limit:    5,
	}
}

func TestRecommend_HauntedHouseUnified(t *testing.T) {
	r := seededRecommender(t, 11, themeEncoder{})
	got, err := r.Recommend(context.Background(), hauntedQuery(models.StrategyUnified))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("returned %d results, want 1-5", len(got))
	}

	// Every result honors the hard constraints
	seen := map[string]bool{}
	for i, rec := range got {
		if rec.Rating < 7.0 {
			t.Errorf("result %s rating %.1f below the 7.0 floor", rec.ImdbID, rec.Rating)
		}
		if rec.MediaType != models.MediaTypeMovie {
			t.Errorf("result %s is a %s, want movie", rec.ImdbID, rec.MediaType)
		}
		if seen[rec.ImdbID] {
			t.Errorf("duplicate result %s", rec.ImdbID)
		}
		seen[rec.ImdbID] = true
		if i > 0 && rec.Score > got[i-1].Score {
			t.Errorf("results not sorted by score at position %d", i)
		}
	}

	// The haunted-house theme should surface at least one on-theme title
	onTheme := false
	for _, rec := range got {
		switch rec.ImdbID {
		case "tt01", "tt02", "tt03":
			onTheme = true
		}
	}
	if !onTheme {
		t.Errorf("no haunted-house movie in results: %+v", got)
	}
}

func TestRecommend_SemanticStrategy(t *testing.T) {
	r := seededRecommender(t, 5, themeEncoder{})
	got, err := r.Recommend(context.Background(), hauntedQuery(models.StrategySemantic))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("returned %d results, want 1-5", len(got))
	}
	for _, rec := range got {
		if rec.Rating < 7.0 || rec.MediaType != models.MediaTypeMovie {
			t.Errorf("result %s violates filters", rec.ImdbID)
		}
	}
}

func TestRecommend_PopularStrategyNeedsNoEncoder(t *testing.T) {
	r := seededRecommender(t, 5, downEncoder{})
	got, err := r.Recommend(context.Background(), hauntedQuery(models.StrategyPopular))
	if err != nil {
		t.Fatalf("popular strategy should not touch the encoder: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("popular strategy returned nothing")
	}
}

func TestRecommend_EncoderFailureDegrades(t *testing.T) {
	for _, strategy := range []models.Strategy{models.StrategySemantic, models.StrategyUnified} {
		t.Run(string(strategy), func(t *testing.T) {
			r := seededRecommender(t, 5, downEncoder{})
			got, err := r.Recommend(context.Background(), hauntedQuery(strategy))
			if err != nil {
				t.Fatalf("encoder outage surfaced as request failure: %v", err)
			}
			if len(got) == 0 {
				t.Fatal("degraded path returned nothing")
			}
			for _, rec := range got {
				if rec.Rating < 7.0 || rec.MediaType != models.MediaTypeMovie {
					t.Errorf("degraded result %s violates filters", rec.ImdbID)
				}
			}
		})
	}
}

func TestRecommend_EmptyFilteredPool(t *testing.T) {
	r := seededRecommender(t, 5, themeEncoder{})
	query := hauntedQuery(models.StrategyUnified)
	query.Filters.MinYear = 2030
	got, err := r.Recommend(context.Background(), query)
	if err != nil {
		t.Fatalf("empty pool must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("returned %d results from an impossible filter", len(got))
	}
}

func TestRecommend_InvalidQuery(t *testing.T) {
	r := seededRecommender(t, 5, themeEncoder{})
	_, err := r.Recommend(context.Background(), models.Query{Text: "", Limit: 5})
	if err == nil {
		t.Error("empty query text accepted")
	}
	_, err = r.Recommend(context.Background(), models.Query{Text: "ghosts", Limit: 0})
	if err == nil {
		t.Error("non-positive limit accepted")
	}
}

func TestRecommend_CorpusFailureSurfaces(t *testing.T) {
	corpus := &fixedCorpus{err: errors.New("omdb unreachable")}
	r := NewRecommender(corpus, &fixedVectors{}, themeEncoder{}, testConfig())
	_, err := r.Recommend(context.Background(), hauntedQuery(models.StrategyUnified))
	if err == nil {
		t.Error("corpus build failure swallowed")
	}
}

func TestRecommend_RepeatedQueriesVary(t *testing.T) {
	query := hauntedQuery(models.StrategyUnified)
	base, err := seededRecommender(t, 1, themeEncoder{}).Recommend(context.Background(), query)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	varied := false
	for seed := uint64(2); seed <= 20 && !varied; seed++ {
		other, err := seededRecommender(t, seed, themeEncoder{}).Recommend(context.Background(), query)
		if err != nil {
			t.Fatalf("Recommend seed %d: %v", seed, err)
		}
		if len(other) != len(base) {
			varied = true
			continue
		}
		for i := range other {
			if other[i].ImdbID != base[i].ImdbID {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("19 differently-seeded requests never changed the result")
	}

	// Variability never escapes the filtered pool
	for seed := uint64(1); seed <= 20; seed++ {
		got, err := seededRecommender(t, seed, themeEncoder{}).Recommend(context.Background(), query)
		if err != nil {
			t.Fatalf("Recommend seed %d: %v", seed, err)
		}
		for _, rec := range got {
			if rec.Rating < 7.0 || rec.MediaType != models.MediaTypeMovie {
				t.Errorf("seed %d: %s escaped the filter constraints", seed, rec.ImdbID)
			}
		}
	}
}
