// ABOUTME: CLI command to show routing statistics and recent audit entries
// ABOUTME: Reports configuration, index composition, and persisted decision counts
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/careroute/careroute/internal/storage/sqlite"
)

var (
	statsRecent int
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show routing statistics",
		Long: `Show routing system statistics: confidence thresholds, consolidated
index composition, and recent decisions from the audit log.

Examples:
  careroute stats
  careroute stats --recent 20
  careroute stats --format json`,
		RunE: runStats,
	}

	cmd.Flags().IntVar(&statsRecent, "recent", 10, "Number of recent audit entries to show")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats := a.processor.Stats()

	db, dbErr := sqlite.Open(dbPath())
	var recent []sqlite.DecisionRecord
	var byStatus map[string]int
	if dbErr == nil {
		defer func() { _ = db.Close() }()
		store := sqlite.NewDecisionStore(db)
		recent, _ = store.Recent(statsRecent)
		if counts, err := store.CountByStatus(); err == nil {
			byStatus = make(map[string]int, len(counts))
			for status, count := range counts {
				byStatus[string(status)] = count
			}
		}
	}

	if format == "json" {
		return printJSON(cmd, map[string]interface{}{
			"routing":             stats,
			"decisions_by_status": byStatus,
			"recent_decisions":    recent,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Confidence threshold: %.2f\n", stats.ConfidenceThreshold)
	fmt.Fprintf(out, "Available domains:    %d\n", stats.AvailableDomains)
	fmt.Fprintf(out, "Index entries:        %d\n", stats.IndexSize)
	for source, count := range stats.SourceCounts {
		fmt.Fprintf(out, "  %-32s %d\n", source, count)
	}

	if len(byStatus) > 0 {
		fmt.Fprintln(out, "Decisions by status:")
		for status, count := range byStatus {
			fmt.Fprintf(out, "  %-28s %d\n", status, count)
		}
	}

	if len(recent) > 0 {
		fmt.Fprintln(out, "Recent decisions:")
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSTATUS\tCONF\tQUERY")
		for _, rec := range recent {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.Status, rec.Confidence, truncate(rec.Query, 50))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
