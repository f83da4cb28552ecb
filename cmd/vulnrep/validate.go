package main

import (
	"fmt"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a nuclei JSONL file without generating a report",
	Long: `Parse a nuclei JSONL file and report how many lines validated,
how many were skipped, and the severity breakdown of the valid findings.

Exits nonzero when the file cannot be read or contains no valid findings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		inputFile, _ := cmd.Flags().GetString("input")

		// Step 2: Parse input
		fmt.Printf("Validating %s...\n", inputFile)
		result, err := parseAndCheck(inputFile)
		if err != nil {
			return err
		}

		fmt.Printf("\nValid: %d findings parsed successfully\n", result.SuccessCount())
		if result.SkippedLines > 0 {
			fmt.Printf("Skipped: %d lines\n", result.SkippedLines)
		} else {
			fmt.Println("No errors found.")
		}

		// Step 3: Severity breakdown
		counts := make(map[string]int)
		for _, f := range result.Findings {
			counts[string(f.Info.Severity)]++
		}

		fmt.Println("\nSeverity breakdown:")
		for _, sev := range models.SeverityOrder {
			fmt.Printf("  %-10s %d\n", strings.ToUpper(string(sev)), counts[string(sev)])
		}

		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("input", "i", "", "Path to nuclei JSONL output file")
	validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
