package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/processor"
	"github.com/mkarimov/vulnrep/internal/report"
	"github.com/mkarimov/vulnrep/internal/storage"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PDF report from nuclei JSONL output",
	Long: `Parse a nuclei JSONL file, process the findings, and render a styled
PDF report.

Processing deduplicates repeated observations (same template against the
same host), optionally filters out findings below a minimum severity,
groups findings per severity sorted by CVSS score, and extracts targets,
the scan time range, and the most critical findings overall.

Each run is recorded in the history database; see 'vulnrep history'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		inputFile, _ := cmd.Flags().GetString("input")
		outputFile, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")
		minSeverity, _ := cmd.Flags().GetString("min-severity")
		logoPath, _ := cmd.Flags().GetString("logo")
		noDedup, _ := cmd.Flags().GetBool("no-dedup")
		markdownPath, _ := cmd.Flags().GetString("markdown")

		if title == "" {
			title = cfg.Report.Title
		}

		minSev, err := parseMinSeverity(minSeverity)
		if err != nil {
			return err
		}

		if logoPath != "" {
			if _, err := os.Stat(logoPath); err != nil {
				return fmt.Errorf("logo image not readable: %w", err)
			}
		}

		// Step 2: Parse input (fatal on open failure or zero findings)
		fmt.Printf("Reading %s...\n", inputFile)
		result, err := parseAndCheck(inputFile)
		if err != nil {
			return err
		}
		fmt.Printf("  Parsed %d findings\n", result.SuccessCount())

		// Step 3: Process findings into a report
		fmt.Println("Processing findings...")
		rep := processor.BuildReport(result.Findings, processor.Options{
			Title:       title,
			MinSeverity: minSev,
			SkipDedup:   noDedup || !cfg.Report.Dedup,
			TopLimit:    cfg.Report.TopLimit,
		})
		fmt.Printf("  %d findings across %d targets\n", rep.TotalFindings, len(rep.Targets))
		if minSev != nil {
			fmt.Printf("  Filtered to %s+ severity\n", minSeverity)
		}

		// Step 4: Resolve output path, creating parent directories
		if outputFile == "" {
			if err := storage.EnsureDir(cfg.OutputDir); err != nil {
				return err
			}
			outputFile = storage.DefaultOutputPath(cfg.OutputDir, rep.Title, rep.GeneratedAt)
		} else if err := storage.EnsureDir(filepath.Dir(outputFile)); err != nil {
			return err
		}

		// Step 5: Render the PDF
		fmt.Println("Generating PDF...")
		outPath, err := report.WritePDF(rep, outputFile, report.PDFOptions{
			LogoPath:  logoPath,
			BarWidth:  cfg.Charts.BarWidth,
			BarHeight: cfg.Charts.BarHeight,
			DonutSize: cfg.Charts.DonutSize,
		})
		if err != nil {
			return fmt.Errorf("PDF generation failed: %w", err)
		}

		info, err := os.Stat(outPath)
		if err != nil {
			return fmt.Errorf("report written but not stat-able: %w", err)
		}

		// Step 6: Optional markdown companion output
		if markdownPath != "" {
			if err := report.WriteMarkdown(rep, markdownPath); err != nil {
				// Warn but do not fail — the PDF is already written
				fmt.Printf("[!] Warning: failed to write markdown report: %v\n", err)
			} else {
				fmt.Printf("Markdown report written to %s\n", markdownPath)
			}
		}

		// Step 7: Record this run in the history store
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			fmt.Printf("[!] Warning: could not open history database: %v\n", err)
		} else {
			defer store.Close()
			meta := models.NewReportMeta(rep, inputFile, outPath, info.Size())
			if err := store.SaveReport(meta); err != nil {
				fmt.Printf("[!] Warning: could not record report history: %v\n", err)
			}
		}

		// Step 8: Print final summary
		fmt.Printf("\nReport generated: %s\n", outPath)
		fmt.Printf("  File size: %.1f KB\n", float64(info.Size())/1024)
		for _, sev := range models.SeverityOrder {
			if count := rep.SeverityCounts[string(sev)]; count > 0 {
				fmt.Printf("  %-10s %d\n", strings.ToUpper(string(sev)), count)
			}
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("input", "i", "", "Path to nuclei JSONL output file")
	generateCmd.Flags().StringP("output", "o", "", "Output PDF file path (default: {output_dir}/{title}_{timestamp}.pdf)")
	generateCmd.Flags().String("title", "", "Report title displayed on the cover page")
	generateCmd.Flags().String("min-severity", "", "Minimum severity to include (excludes lower)")
	generateCmd.Flags().String("logo", "", "Company logo image for the cover page (PNG/JPG)")
	generateCmd.Flags().Bool("no-dedup", false, "Keep repeated observations of the same finding")
	generateCmd.Flags().String("markdown", "", "Also write a markdown report to this path")
	generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}
