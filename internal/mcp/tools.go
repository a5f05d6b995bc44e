// ABOUTME: MCP tool definitions and registration for the careroute server
// ABOUTME: Defines JSON schemas for routing, generation, analysis, and stats tools
package mcp

import (
	"github.com/careroute/careroute/internal/core"
	"github.com/careroute/careroute/internal/dsl"
	"github.com/careroute/careroute/internal/opensearch"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, processor *core.Processor, generator *dsl.Generator, executor *opensearch.Executor) *Handlers {
	handlers := &Handlers{
		processor: processor,
		generator: generator,
		executor:  executor,
	}

	// 1. route_query - Classify a query and route it to a healthcare data source
	server.AddTool(mcp.Tool{
		Name:        "route_query",
		Description: "Classify a natural-language query and route it to the best healthcare data source. Returns a routing decision with confidence, evidence, and clarification guidance when the query is too generic.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language healthcare query to route",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RouteQuery)

	// 2. generate_query - Route a query and generate executable OpenSearch DSL for it
	server.AddTool(mcp.Tool{
		Name:        "generate_query",
		Description: "Route a query and generate an executable OpenSearch DSL document for its target index. Falls back to a deterministic rule-based query when LLM generation is unavailable.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language healthcare query to convert into DSL",
				},
				"execute": map[string]interface{}{
					"type":        "boolean",
					"description": "Execute the generated query against the configured OpenSearch cluster (default: false)",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.GenerateQuery)

	// 3. analyze_query - Score query complexity and suggest improvements
	server.AddTool(mcp.Tool{
		Name:        "analyze_query",
		Description: "Analyze a query's complexity (timeframe, domain, analysis-type signals) and, when routing required clarification, suggest concrete improvements.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Query to analyze",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AnalyzeQuery)

	// 4. get_statistics - Routing configuration, index composition, and analytics
	server.AddTool(mcp.Tool{
		Name:        "get_statistics",
		Description: "Get routing system statistics: confidence thresholds, consolidated index composition, and aggregate query analytics.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStatistics)

	return handlers
}
