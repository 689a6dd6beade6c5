// ABOUTME: Offline benchmark runner scoring the recommender against scenarios
// ABOUTME: Uses a deterministic theme encoder so no network access is needed

package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/core"
	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/models"
)

// ScenarioResult holds the metrics for one scenario
type ScenarioResult struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	NDCG    float64  `json:"ndcg"`
	HitRate float64  `json:"hit_rate"`
	Results []string `json:"results"`
}

// SuiteResult aggregates a full benchmark run
type SuiteResult struct {
	RunAt       time.Time        `json:"run_at"`
	Scenarios   []ScenarioResult `json:"scenarios"`
	MeanNDCG    float64          `json:"mean_ndcg"`
	MeanHitRate float64          `json:"mean_hit_rate"`
}

// themeEncoder places text on fixed theme axes; deterministic and offline
type themeEncoder struct{}

var themeAxes = map[string]int{
	"haunted": 0, "ghost": 0, "house": 0, "halls": 0,
	"slasher": 1, "killer": 1, "stalks": 1, "masked": 1,
	"creature": 2, "monster": 2, "beast": 2,
	"sea": 3, "river": 3, "rig": 3, "resort": 3,
}

func (themeEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vec := make([]float64, 4)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?-")
		if axis, ok := themeAxes[tok]; ok {
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

type fixtureCorpus struct {
	snap *models.CorpusSnapshot
}

func (f *fixtureCorpus) EnsureReady(ctx context.Context, pages int) (*models.CorpusSnapshot, error) {
	return f.snap, nil
}

type fixtureVectors struct {
	matrix [][]float64
}

func (f *fixtureVectors) VectorsFor(ctx context.Context, snap *models.CorpusSnapshot) ([][]float64, error) {
	return f.matrix, nil
}

// Runner executes the benchmark suite against the fixture corpus
type Runner struct {
	recommender *core.Recommender
	verbose     bool
}

// NewRunner builds a runner over the fixture corpus with the theme encoder.
// Temperature is zeroed so runs are repeatable; the point here is ranking
// quality, not variability.
func NewRunner(verbose bool) (*Runner, error) {
	items := FixtureItems()
	snap, err := models.NewCorpusSnapshot("benchmark-fixture", time.Now().UTC(), items)
	if err != nil {
		return nil, fmt.Errorf("building fixture snapshot: %w", err)
	}

	enc := themeEncoder{}
	matrix := make([][]float64, len(items))
	for i, item := range items {
		matrix[i], _ = enc.EmbedText(context.Background(), item.Overview)
	}

	cfg := &config.Config{
		BuildPages:  1,
		Weights:     models.DefaultBlendWeights(),
		Temperature: 0,
		MMRLambda:   0.7,
		SampleFloor: 1.0,
	}

	return &Runner{
		recommender: core.NewRecommender(&fixtureCorpus{snap: snap}, &fixtureVectors{matrix: matrix}, enc, cfg),
		verbose:     verbose,
	}, nil
}

// RunAll executes every scenario and aggregates the metrics
func (r *Runner) RunAll(ctx context.Context) (*SuiteResult, error) {
	suite := &SuiteResult{RunAt: time.Now().UTC()}

	for _, scenario := range Scenarios() {
		result, err := r.Run(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.ID, err)
		}
		suite.Scenarios = append(suite.Scenarios, result)
		suite.MeanNDCG += result.NDCG
		suite.MeanHitRate += result.HitRate
	}
	if n := float64(len(suite.Scenarios)); n > 0 {
		suite.MeanNDCG /= n
		suite.MeanHitRate /= n
	}
	return suite, nil
}

// Run executes a single scenario
func (r *Runner) Run(ctx context.Context, scenario Scenario) (ScenarioResult, error) {
	if r.verbose {
		fmt.Printf("RUNNING: %s\n", scenario.Name)
	}

	recs, err := r.recommender.Recommend(ctx, models.Query{
		Text:     scenario.Mood,
		Strategy: scenario.Strategy,
		Filters:  scenario.Filters,
		Limit:    scenario.K,
	})
	if err != nil {
		return ScenarioResult{}, err
	}

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ImdbID
	}

	result := ScenarioResult{
		ID:      scenario.ID,
		Name:    scenario.Name,
		NDCG:    NDCG(ids, scenario.Relevant, scenario.K),
		HitRate: HitRate(ids, scenario.Relevant, scenario.K),
		Results: ids,
	}

	if r.verbose {
		fmt.Printf("  NDCG@%d: %.3f  hit-rate: %.3f  results: %v\n",
			scenario.K, result.NDCG, result.HitRate, ids)
	}
	return result, nil
}

// WriteJSON exports a suite result to path
func (s *SuiteResult) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
