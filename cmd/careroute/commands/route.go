// ABOUTME: CLI command to route a single query through the pipeline
// ABOUTME: Prints the routing decision as text or JSON
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careroute/careroute/internal/models"
)

// NewRouteCmd creates the route command
func NewRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route <query>",
		Short: "Route a query to a healthcare data source",
		Long: `Route a natural-language query through the classification gate and
the consolidated vector index.

Examples:
  careroute route "Show me denied claims from last month"
  careroute route --format json "provider performance metrics"`,
		Args: cobra.ExactArgs(1),
		RunE: runRoute,
	}

	return cmd
}

func runRoute(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	decision := a.processor.Route(args[0])

	if format == "json" {
		return printJSON(cmd, decision)
	}

	printDecision(cmd, decision)
	return nil
}

func printDecision(cmd *cobra.Command, decision models.RoutingDecision) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Decision:   %s\n", decision.DecisionID)
	fmt.Fprintf(out, "Status:     %s\n", decision.Status)
	fmt.Fprintf(out, "Confidence: %.3f\n", decision.Confidence)

	if decision.TargetSource != "" {
		fmt.Fprintf(out, "Target:     %s\n", decision.TargetSource)
	}
	if decision.Classification != nil {
		fmt.Fprintf(out, "Classifier: %s (healthcare=%t, conf=%.3f)\n",
			decision.Classification.SourceName,
			decision.Classification.IsHealthcare,
			decision.Classification.Confidence)
	}
	if decision.Message != "" {
		fmt.Fprintf(out, "Message:    %s\n", decision.Message)
	}

	if len(decision.Evidence) > 0 {
		fmt.Fprintln(out, "Evidence:")
		for _, ev := range decision.Evidence {
			fmt.Fprintf(out, "  %.3f  %-30s %s\n", ev.SimilarityScore, ev.SourceIndex, truncate(ev.Text, 60))
		}
	}

	if decision.Clarification != nil {
		fmt.Fprintf(out, "Clarification: %s\n", decision.Clarification.Message)
		for _, sample := range decision.Clarification.SampleQueries {
			fmt.Fprintf(out, "  e.g. %s\n", sample)
		}
	}

	fmt.Fprintf(out, "Took:       %.1fms\n", decision.ProcessingTimeMS)
}
