package main

import (
	"fmt"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/processor"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print summary statistics from a nuclei JSONL file",
	Long: `Parse and process a nuclei JSONL file and print the aggregate view
to the console — totals, scan time range, severity breakdown, targets,
and the most critical findings — without generating any document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		inputFile, _ := cmd.Flags().GetString("input")
		minSeverity, _ := cmd.Flags().GetString("min-severity")

		minSev, err := parseMinSeverity(minSeverity)
		if err != nil {
			return err
		}

		// Step 2: Parse and process
		fmt.Printf("Reading %s...\n", inputFile)
		result, err := parseAndCheck(inputFile)
		if err != nil {
			return err
		}

		rep := processor.BuildReport(result.Findings, processor.Options{
			MinSeverity: minSev,
			TopLimit:    cfg.Report.TopLimit,
		})

		// Step 3: Print the summary
		fmt.Println()
		fmt.Println("Scan Summary")
		fmt.Println(strings.Repeat("=", 45))
		fmt.Printf("  Total findings:  %d\n", rep.TotalFindings)
		fmt.Printf("  Unique targets:  %d\n", len(rep.Targets))
		if rep.TimeRange.Earliest != "" {
			fmt.Printf("  Scan start:      %s\n", clip(rep.TimeRange.Earliest, 19))
			fmt.Printf("  Scan end:        %s\n", clip(rep.TimeRange.Latest, 19))
		}

		fmt.Println()
		fmt.Println("Severity Breakdown")
		fmt.Println(strings.Repeat("-", 45))
		for _, sev := range models.SeverityOrder {
			count := rep.SeverityCounts[string(sev)]
			pct := "0%"
			if rep.TotalFindings > 0 {
				pct = fmt.Sprintf("%.1f%%", float64(count)/float64(rep.TotalFindings)*100)
			}
			bar := strings.Repeat("#", minInt(count, 30))
			fmt.Printf("  %-10s %3d (%5s) %s\n", strings.ToUpper(string(sev)), count, pct, bar)
		}

		fmt.Println()
		fmt.Println("Targets")
		fmt.Println(strings.Repeat("-", 45))
		for _, target := range rep.Targets {
			fmt.Printf("  %s\n", target)
		}

		if len(rep.TopCritical) > 0 {
			fmt.Println()
			fmt.Printf("Top %d Most Critical\n", len(rep.TopCritical))
			fmt.Println(strings.Repeat("-", 45))
			for i, f := range rep.TopCritical {
				cvss := ""
				if score := f.EffectiveScore(); score > 0 {
					cvss = fmt.Sprintf(" CVSS %.1f", score)
				}
				fmt.Printf("  %d. [%s] %s%s\n", i+1, strings.ToUpper(string(f.Info.Severity)), f.Info.Name, cvss)
				fmt.Printf("     %s\n", f.Host)
			}
		}

		return nil
	},
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func init() {
	summaryCmd.Flags().StringP("input", "i", "", "Path to nuclei JSONL output file")
	summaryCmd.Flags().String("min-severity", "", "Minimum severity to include")
	summaryCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(summaryCmd)
}
