// ABOUTME: Main entry point for the moodreel MCP server with stdio transport
// ABOUTME: Wires storage, corpus builder, embedding cache, and recommender
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/core"
	"github.com/moodreel/moodreel/internal/corpus"
	"github.com/moodreel/moodreel/internal/llm"
	"github.com/moodreel/moodreel/internal/mcp"
	"github.com/moodreel/moodreel/internal/omdb"
	"github.com/moodreel/moodreel/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.OMDbAPIKey == "" {
		log.Println("Warning: OMDB_API_KEY not set - corpus rebuilds will fail")
	}

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	encoder, err := llm.NewOpenAIEncoderWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.EncodeTimeout,
		MaxRetries:     cfg.EncodeRetries,
		RetryDelay:     cfg.EncodeDelay,
	})
	if err != nil {
		log.Printf("Warning: OPENAI_API_KEY not set - semantic ranking degrades to popularity: %v", err)
	}
	var enc llm.Encoder = encoder
	if encoder == nil {
		enc = llm.Unavailable()
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
	recommender := core.NewRecommender(builder, cache, enc, cfg)

	server := mcpserver.NewMCPServer(
		"Moodreel Horror Recommender",
		"0.1.0",
	)
	mcp.RegisterTools(server, recommender, builder, cfg)

	log.Println("moodreel MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
