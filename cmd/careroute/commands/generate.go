// ABOUTME: CLI command to generate OpenSearch DSL for a query
// ABOUTME: Routes first, then generates, optionally executing against a cluster
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careroute/careroute/internal/models"
)

var (
	generateExecute bool
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <query>",
		Short: "Generate OpenSearch DSL for a query",
		Long: `Route a query and generate an executable OpenSearch DSL document
for its target index. Uses LLM generation when OPENAI_API_KEY is set;
otherwise produces a deterministic rule-based query.

Examples:
  careroute generate "Show me denied claims from last month"
  careroute generate --execute "recent provider claims"
  careroute generate --format json "member demographics report"`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().BoolVar(&generateExecute, "execute", false, "Execute the generated query against the configured OpenSearch cluster")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := args[0]
	decision := a.processor.Route(query)
	result := a.generator.Generate(query, decision)

	if format == "json" {
		return printJSON(cmd, map[string]interface{}{
			"routing":    decision,
			"generation": result,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Status:      %s\n", decision.Status)
	fmt.Fprintf(out, "Target:      %s\n", result.TargetSource)
	fmt.Fprintf(out, "Method:      %s\n", result.Method)
	fmt.Fprintf(out, "Safe:        %t\n", result.IsSafe)
	if result.SafetyIssues != "" {
		fmt.Fprintf(out, "Issues:      %s\n", result.SafetyIssues)
	}
	fmt.Fprintf(out, "Explanation: %s\n", result.Explanation)

	if result.Method != models.GenerationError {
		dslJSON, err := json.MarshalIndent(result.Document.OpenSearchDSL, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode DSL: %w", err)
		}
		fmt.Fprintf(out, "DSL:\n%s\n", dslJSON)
	}

	if generateExecute {
		return executeGenerated(cmd, a, result)
	}
	return nil
}

func executeGenerated(cmd *cobra.Command, a *app, result models.DSLResult) error {
	out := cmd.OutOrStdout()

	if result.Method == models.GenerationError {
		fmt.Fprintln(out, "Execution skipped: generation failed")
		return nil
	}
	if !result.IsSafe {
		fmt.Fprintln(out, "Execution skipped: query flagged by safety review")
		return nil
	}
	if !a.executor.IsAvailable() {
		fmt.Fprintln(out, "Execution skipped: no OpenSearch endpoint configured")
		return nil
	}

	execResult, err := a.executor.Execute(cmd.Context(), result.Document)
	if err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}

	fmt.Fprintf(out, "Hits:        %d (took %dms)\n", execResult.TotalHits, execResult.TookMS)
	for i, doc := range execResult.Documents {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  [%d] %s\n", i+1, truncate(string(docJSON), 120))
	}
	return nil
}
