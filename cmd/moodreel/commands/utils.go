// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates validation, truncation, and service wiring
package commands

import (
	"fmt"

	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/core"
	"github.com/moodreel/moodreel/internal/corpus"
	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/omdb"
	"github.com/moodreel/moodreel/internal/storage"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// services bundles everything a command needs; Close releases storage
type services struct {
	cfg         *config.Config
	store       *storage.Store
	builder     *corpus.Builder
	recommender *core.Recommender
}

func (s *services) Close() error {
	return s.store.Close()
}

// openServices loads configuration and wires the full recommendation stack
func openServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	var enc llm.Encoder
	encoder, err := llm.NewOpenAIEncoderWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.EncodeTimeout,
		MaxRetries:     cfg.EncodeRetries,
		RetryDelay:     cfg.EncodeDelay,
	})
	if err != nil {
		enc = llm.Unavailable()
	} else {
		enc = encoder
	}

	source := omdb.NewClient(&omdb.ClientConfig{
		APIKey:     cfg.OMDbAPIKey,
		BaseURL:    cfg.OMDbBaseURL,
		Timeout:    cfg.OMDbTimeout,
		MaxRetries: cfg.OMDbMaxRetries,
		RetryDelay: cfg.OMDbRetryDelay,
	})
	builder := corpus.NewBuilder(source, store, corpus.BuilderConfig{
		MaxDetails:  cfg.MaxDetails,
		DetailDelay: cfg.DetailDelay,
	})
	cache := corpus.NewEmbeddingCache(store, enc, cfg.EmbedBatchSize, cfg.VectorDimension)

	return &services{
		cfg:         cfg,
		store:       store,
		builder:     builder,
		recommender: core.NewRecommender(builder, cache, enc, cfg),
	}, nil
}
