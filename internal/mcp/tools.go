// ABOUTME: MCP tool definitions and registration for the talk recommender server
// ABOUTME: Defines JSON schemas for the recommendation, listing, statistics and admin tools
package mcp

import (
	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
	"github.com/harper/talk-recommender/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, source storage.Source, meta []models.TalkMetadata, opts Options) *Handlers {
	handlers := NewHandlers(engine, source, meta, opts)

	// 1. recommend_talks - content-based recommendations for one talk
	server.AddTool(mcp.Tool{
		Name:        "recommend_talks",
		Description: "Recommend talks whose transcripts are most similar to the given talk. Accepts a talk URL, slug (my_talk) or name (My Talk).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"talk": map[string]interface{}{
					"type":        "string",
					"description": "Talk URL, slug or name to find similar talks for",
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Number of recommendations to return (default: 5)",
					"default":     handlers.opts.DefaultCount,
				},
			},
			Required: []string{"talk"},
		},
	}, handlers.RecommendTalks)

	// 2. list_talks - list known talk keys
	server.AddTool(mcp.Tool{
		Name:        "list_talks",
		Description: "List the talks in the index, optionally filtered by a case-insensitive substring.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filter": map[string]interface{}{
					"type":        "string",
					"description": "Optional substring to match against talk names",
				},
			},
		},
	}, handlers.ListTalks)

	// 3. explore_talks - descriptive rankings over metadata
	server.AddTool(mcp.Tool{
		Name:        "explore_talks",
		Description: "Rank talks by comments, views, duration, languages or num_speaker, or rank the most frequent speakers.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"metric": map[string]interface{}{
					"type":        "string",
					"description": "One of comments, views, duration, languages, num_speaker, speakers",
					"enum":        []string{"comments", "views", "duration", "languages", "num_speaker", "speakers"},
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Number of rows to return (default: 10)",
					"default":     handlers.opts.ExploreCount,
				},
			},
			Required: []string{"metric"},
		},
	}, handlers.ExploreTalks)

	// 4. index_info - dimensions of the served index
	server.AddTool(mcp.Tool{
		Name:        "index_info",
		Description: "Describe the index currently serving recommendations.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexInfo)

	// 5. reload_corpus - rebuild from the configured source
	server.AddTool(mcp.Tool{
		Name:        "reload_corpus",
		Description: "Reload the corpus from its source and swap in a rebuilt index. The previous index keeps serving if the rebuild fails.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReloadCorpus)

	return handlers
}
