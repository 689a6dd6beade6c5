// ABOUTME: MCP tool definitions and registration for the moodreel server
// ABOUTME: Defines JSON schemas for the recommendation and corpus tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/core"
	"github.com/moodreel/moodreel/internal/corpus"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, recommender *core.Recommender, builder *corpus.Builder, cfg *config.Config) *Handlers {
	handlers := &Handlers{
		recommender: recommender,
		builder:     builder,
		cfg:         cfg,
	}

	// 1. recommend_movies - Mood-based horror recommendations
	server.AddTool(mcp.Tool{
		Name:        "recommend_movies",
		Description: "Recommend horror movies matching a free-text mood. Results are intentionally varied between identical requests.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mood": map[string]interface{}{
					"type":        "string",
					"description": "Free-text mood or theme, e.g. 'a slow-burn haunted house with a sad ghost'",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Scoring strategy: semantic, unified (default), or popular",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Number of recommendations to return (default: 5)",
					"default":     5,
				},
				"min_year": map[string]interface{}{
					"type":        "number",
					"description": "Earliest release year to include",
				},
				"max_year": map[string]interface{}{
					"type":        "number",
					"description": "Latest release year to include",
				},
				"min_rating": map[string]interface{}{
					"type":        "number",
					"description": "Minimum audience rating on a 0-10 scale",
				},
				"english_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Keep only English-language titles",
				},
				"media_type": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to 'movie' or 'series'; omit for both",
				},
			},
			Required: []string{"mood"},
		},
	}, handlers.RecommendMovies)

	// 2. rebuild_corpus - Refresh the candidate corpus from the metadata source
	server.AddTool(mcp.Tool{
		Name:        "rebuild_corpus",
		Description: "Rebuild the horror corpus from the metadata source. Slow; holds the build lock until done.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pages": map[string]interface{}{
					"type":        "number",
					"description": "Search result pages to fetch per discovery term",
				},
			},
		},
	}, handlers.RebuildCorpus)

	// 3. corpus_stats - Inspect the published corpus snapshot
	server.AddTool(mcp.Tool{
		Name:        "corpus_stats",
		Description: "Report the size, composition, and version of the current corpus snapshot.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CorpusStats)

	return handlers
}
