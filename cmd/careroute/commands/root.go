// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for route, generate, analyze, stats, mcp, and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	format  string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "careroute",
		Short: "Healthcare query router and OpenSearch DSL generator",
		Long: `careroute routes natural-language healthcare queries to the right
data source and generates executable OpenSearch DSL for them.

Queries pass a two-stage classification gate (lexical + semantic), are
matched against a consolidated vector index of healthcare use cases, and
come back as routing decisions with confidence scores. High-confidence
decisions can be turned into OpenSearch DSL via LLM generation with a
deterministic rule-based fallback.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-stage logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress warnings and progress output")
	cmd.PersistentFlags().StringVar(&format, "format", "text", "Output format: text or json")

	cmd.AddCommand(NewRouteCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
