// ABOUTME: MCP tool handler implementations for the careroute server
// ABOUTME: Routing, DSL generation, complexity analysis, and statistics tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/careroute/careroute/internal/core"
	"github.com/careroute/careroute/internal/dsl"
	"github.com/careroute/careroute/internal/models"
	"github.com/careroute/careroute/internal/opensearch"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	processor *core.Processor
	generator *dsl.Generator
	executor  *opensearch.Executor
}

// RouteQuery handles the route_query tool
func (h *Handlers) RouteQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	decision := h.processor.Route(query)

	responseJSON, err := json.Marshal(decision)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GenerateQuery handles the generate_query tool
func (h *Handlers) GenerateQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	execute := request.GetBool("execute", false)

	decision := h.processor.Route(query)
	result := h.generator.Generate(query, decision)

	response := map[string]interface{}{
		"routing":    decision,
		"generation": result,
	}

	// Execution is best-effort; a cluster failure never invalidates the
	// generated document itself.
	if execute {
		response["execution"] = h.executeQuery(ctx, result)
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

func (h *Handlers) executeQuery(ctx context.Context, result models.DSLResult) map[string]interface{} {
	if h.executor == nil || !h.executor.IsAvailable() {
		return map[string]interface{}{"skipped": "no OpenSearch endpoint configured"}
	}
	if result.Method == models.GenerationError {
		return map[string]interface{}{"skipped": "generation failed, nothing to execute"}
	}
	if !result.IsSafe {
		return map[string]interface{}{"skipped": "query flagged by safety review"}
	}

	execResult, err := h.executor.Execute(ctx, result.Document)
	if err != nil {
		log.Printf("Warning: query execution failed: %v", err)
		return map[string]interface{}{"error": err.Error()}
	}

	return map[string]interface{}{
		"total_hits": execResult.TotalHits,
		"documents":  execResult.Documents,
		"took_ms":    execResult.TookMS,
	}
}

// AnalyzeQuery handles the analyze_query tool
func (h *Handlers) AnalyzeQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	decision := h.processor.Route(query)
	recommendations := core.Recommend(query, decision)

	responseJSON, err := json.Marshal(recommendations)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetStatistics handles the get_statistics tool
func (h *Handlers) GetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"routing":   h.processor.Stats(),
		"analytics": h.processor.Metrics().Summary(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
