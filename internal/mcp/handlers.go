// ABOUTME: MCP tool handler implementations for the moodreel server
// ABOUTME: Translates tool arguments into recommendation and corpus operations
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/core"
	"github.com/moodreel/moodreel/internal/corpus"
	"github.com/moodreel/moodreel/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	recommender *core.Recommender
	builder     *corpus.Builder
	cfg         *config.Config
}

// RecommendMovies handles the recommend_movies tool
func (h *Handlers) RecommendMovies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood, err := request.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError("mood argument is required and must be a string"), nil
	}

	query := models.Query{
		Text:     mood,
		Strategy: models.ParseStrategy(request.GetString("strategy", "")),
		Limit:    request.GetInt("limit", 5),
		Filters: models.Filters{
			MinYear:     request.GetInt("min_year", 0),
			MaxYear:     request.GetInt("max_year", 0),
			MinRating:   request.GetFloat("min_rating", 0),
			EnglishOnly: request.GetBool("english_only", false),
			MediaType:   request.GetString("media_type", ""),
		},
	}

	results, err := h.recommender.Recommend(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"mood":     mood,
		"strategy": string(query.Strategy),
		"count":    len(results),
		"results":  results,
	}
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RebuildCorpus handles the rebuild_corpus tool
func (h *Handlers) RebuildCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages := request.GetInt("pages", h.cfg.BuildPages)
	if pages <= 0 {
		return mcp.NewToolResultError("pages must be a positive number"), nil
	}

	snap, err := h.builder.Rebuild(ctx, pages)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus rebuild failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"version":  snap.Version,
		"items":    snap.Size(),
		"built_at": snap.BuiltAt,
	}
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// CorpusStats handles the corpus_stats tool
func (h *Handlers) CorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := h.builder.Snapshot()
	if snap == nil {
		return mcp.NewToolResultText(`{"status": "empty", "items": 0}`), nil
	}

	movies, series := 0, 0
	var minYear, maxYear int
	for _, item := range snap.Items {
		switch item.MediaType {
		case models.MediaTypeSeries:
			series++
		default:
			movies++
		}
		if item.Year > 0 {
			if minYear == 0 || item.Year < minYear {
				minYear = item.Year
			}
			if item.Year > maxYear {
				maxYear = item.Year
			}
		}
	}

	response := map[string]interface{}{
		"status":   "ready",
		"version":  snap.Version,
		"built_at": snap.BuiltAt,
		"items":    snap.Size(),
		"movies":   movies,
		"series":   series,
		"min_year": minYear,
		"max_year": maxYear,
	}
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
