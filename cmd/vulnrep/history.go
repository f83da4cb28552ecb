package main

import (
	"fmt"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past report generations",
	Long: `Display a formatted table of past report generation runs.

Runs are listed newest-first. Each row shows the run ID (truncated),
generation time, finding count, target count, and the output file.

Use --title to restrict the listing to one report title and --limit
to cap the number of rows shown (default: 10).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		title, _ := cmd.Flags().GetString("title")
		limit, _ := cmd.Flags().GetInt("limit")

		// Step 2: Open the history store
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		// Step 3: List runs (sorted newest-first by the store)
		var reports []*models.ReportMeta
		if title != "" {
			reports, err = store.ListReports(title)
		} else {
			reports, err = store.ListAllReports()
		}
		if err != nil {
			return fmt.Errorf("listing report history: %w", err)
		}

		if len(reports) == 0 {
			fmt.Println("No report history found")
			return nil
		}

		// Step 4: Apply limit
		if limit > 0 && len(reports) > limit {
			reports = reports[:limit]
		}

		// Step 5: Print the table
		fmt.Printf("%-10s %-17s %9s %8s  %s\n", "ID", "GENERATED", "FINDINGS", "TARGETS", "OUTPUT")
		fmt.Println(strings.Repeat("-", 75))
		for _, meta := range reports {
			fmt.Printf("%-10s %-17s %9d %8d  %s\n",
				shortID(meta.ID),
				meta.GeneratedAt.Format("2006-01-02 15:04"),
				meta.TotalFindings,
				meta.TargetCount,
				meta.OutputPath,
			)
		}

		return nil
	},
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().String("title", "", "Only show runs with this report title")
	historyCmd.Flags().Int("limit", 10, "Maximum number of rows to show")
	rootCmd.AddCommand(historyCmd)
}
