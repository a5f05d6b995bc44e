// ABOUTME: CLI command to analyze query complexity
// ABOUTME: Scores structural signals and suggests improvements after routing
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careroute/careroute/internal/core"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <query>",
		Short: "Analyze query complexity and suggest improvements",
		Long: `Analyze the structural complexity of a query (timeframe, domain,
and analysis-type signals) and, when routing required clarification,
suggest concrete ways to sharpen it.

Examples:
  careroute analyze "fraud detection"
  careroute analyze --format json "Q3 2024 claims analysis report"`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := args[0]
	decision := a.processor.Route(query)
	recommendations := core.Recommend(query, decision)

	if format == "json" {
		return printJSON(cmd, recommendations)
	}

	out := cmd.OutOrStdout()
	analysis := recommendations.Analysis
	fmt.Fprintf(out, "Complexity: %s (score %d/4)\n", analysis.Level, analysis.Score)
	fmt.Fprintf(out, "  words:         %d\n", analysis.WordCount)
	fmt.Fprintf(out, "  timeframe:     %t\n", analysis.HasTimeframe)
	fmt.Fprintf(out, "  domain:        %t\n", analysis.HasDomain)
	fmt.Fprintf(out, "  analysis type: %t\n", analysis.HasAnalysisType)
	fmt.Fprintf(out, "Routing:    %s (conf %.3f)\n", recommendations.Status, recommendations.Confidence)

	if len(recommendations.Suggestions) > 0 {
		fmt.Fprintln(out, "Suggestions:")
		for _, s := range recommendations.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
	return nil
}
