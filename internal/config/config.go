// ABOUTME: Centralized configuration for the moodreel recommendation core
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/moodreel/moodreel/internal/models"
)

// Config holds all configuration for the recommendation system
type Config struct {
	// OMDb metadata source
	OMDbAPIKey     string
	OMDbBaseURL    string
	OMDbTimeout    time.Duration
	OMDbMaxRetries int
	OMDbRetryDelay time.Duration

	// Corpus build
	BuildPages  int
	MaxDetails  int
	DetailDelay time.Duration

	// OpenAI encoder
	OpenAIKey       string
	EmbeddingModel  string
	VectorDimension int
	EmbedBatchSize  int
	EncodeTimeout   time.Duration
	EncodeRetries   int
	EncodeDelay     time.Duration

	// Storage
	DataDir     string // empty means XDG data home
	CharmSync   bool   // mirror the embedding cache to Charm KV
	CharmHost   string
	CharmDBName string

	// Ranking
	Weights      models.BlendWeights
	Temperature  float64 // similarity noise scale, 0 disables
	MMRLambda    float64 // base relevance/diversity trade-off
	LambdaJitter float64 // per-request lambda offset bound
	SampleFloor  float64 // minimum weight in the linear sampling decay
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OMDbAPIKey:     os.Getenv("OMDB_API_KEY"),
		OMDbBaseURL:    getEnv("OMDB_BASE_URL", "https://www.omdbapi.com/"),
		OMDbTimeout:    getEnvDuration("OMDB_TIMEOUT", 12*time.Second),
		OMDbMaxRetries: getEnvInt("OMDB_MAX_RETRIES", 3),
		OMDbRetryDelay: getEnvDuration("OMDB_RETRY_DELAY", time.Second),

		BuildPages:  getEnvInt("MOODREEL_BUILD_PAGES", 2),
		MaxDetails:  getEnvInt("MOODREEL_MAX_DETAILS", 800),
		DetailDelay: getEnvDuration("MOODREEL_DETAIL_DELAY", 120*time.Millisecond),

		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("MOODREEL_EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		EmbedBatchSize:  getEnvInt("MOODREEL_EMBED_BATCH", 64),
		EncodeTimeout:   getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		EncodeRetries:   getEnvInt("OPENAI_MAX_RETRIES", 3),
		EncodeDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		DataDir:     os.Getenv("MOODREEL_DATA_DIR"),
		CharmSync:   getEnvBool("CHARM_SYNC", false),
		CharmHost:   getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName: getEnv("CHARM_DB", "moodreel"),

		Weights: models.BlendWeights{
			Semantic:   getEnvFloat("MOODREEL_WEIGHT_SEMANTIC", 0.45),
			Keyword:    getEnvFloat("MOODREEL_WEIGHT_KEYWORD", 0.20),
			Popularity: getEnvFloat("MOODREEL_WEIGHT_POPULARITY", 0.20),
			Recency:    getEnvFloat("MOODREEL_WEIGHT_RECENCY", 0.05),
		},
		Temperature:  getEnvFloat("MOODREEL_TEMPERATURE", 0.08),
		MMRLambda:    getEnvFloat("MOODREEL_MMR_LAMBDA", 0.7),
		LambdaJitter: getEnvFloat("MOODREEL_LAMBDA_JITTER", 0.08),
		SampleFloor:  getEnvFloat("MOODREEL_SAMPLE_FLOOR", 0.3),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MMRLambda < 0 || c.MMRLambda > 1 {
		return fmt.Errorf("MOODREEL_MMR_LAMBDA must be 0-1, got %f", c.MMRLambda)
	}
	if c.LambdaJitter < 0 || c.LambdaJitter > 0.5 {
		return fmt.Errorf("MOODREEL_LAMBDA_JITTER must be 0-0.5, got %f", c.LambdaJitter)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("MOODREEL_TEMPERATURE must be non-negative, got %f", c.Temperature)
	}
	if c.SampleFloor < 0 || c.SampleFloor > 1 {
		return fmt.Errorf("MOODREEL_SAMPLE_FLOOR must be 0-1, got %f", c.SampleFloor)
	}
	for name, w := range map[string]float64{
		"MOODREEL_WEIGHT_SEMANTIC":   c.Weights.Semantic,
		"MOODREEL_WEIGHT_KEYWORD":    c.Weights.Keyword,
		"MOODREEL_WEIGHT_POPULARITY": c.Weights.Popularity,
		"MOODREEL_WEIGHT_RECENCY":    c.Weights.Recency,
	} {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("MOODREEL_EMBED_BATCH must be positive, got %d", c.EmbedBatchSize)
	}
	if c.OMDbMaxRetries < 0 || c.OMDbMaxRetries > 10 {
		return fmt.Errorf("OMDB_MAX_RETRIES must be 0-10, got %d", c.OMDbMaxRetries)
	}
	if c.EncodeRetries < 0 || c.EncodeRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.EncodeRetries)
	}
	if c.BuildPages <= 0 {
		return fmt.Errorf("MOODREEL_BUILD_PAGES must be positive, got %d", c.BuildPages)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
