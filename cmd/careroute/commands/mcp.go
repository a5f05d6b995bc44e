// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes routing, generation, and analysis tools to LLM agents via stdio
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/careroute/careroute/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs careroute as an MCP (Model Context Protocol) server, exposing
route_query, generate_query, analyze_query, and get_statistics tools
over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP host)
  careroute mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "careroute": {
  #       "command": "careroute",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	defer a.Close()

	server := mcpserver.NewMCPServer(
		"CareRoute Healthcare Query Router",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.processor, a.generator, a.executor)

	if !quiet {
		log.Println("careroute MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
