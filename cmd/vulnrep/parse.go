package main

import (
	"fmt"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/parser"
)

// maxShownDiagnostics caps how many per-line diagnostics are echoed to
// the console; the rest are summarised as a count.
const maxShownDiagnostics = 5

// parseAndCheck parses the input file and applies the shared CLI
// policy: file-level failures are fatal, skipped lines are warnings,
// and zero surviving findings is an error (a report without findings
// is useless even though the pipeline would happily produce one).
func parseAndCheck(inputFile string) (*parser.ParseResult, error) {
	result, err := parser.ParseFile(inputFile)
	if err != nil {
		return nil, err
	}

	if result.SkippedLines > 0 {
		fmt.Printf("[!] Warning: skipped %d malformed lines\n", result.SkippedLines)
		for i, diag := range result.Errors {
			if i >= maxShownDiagnostics {
				fmt.Printf("    ... and %d more\n", len(result.Errors)-maxShownDiagnostics)
				break
			}
			fmt.Printf("    %s\n", diag)
		}
	}

	if result.SuccessCount() == 0 {
		return nil, fmt.Errorf("no valid findings found in %s", inputFile)
	}

	return result, nil
}

// parseMinSeverity converts the --min-severity flag value to a
// Severity pointer; empty means no filtering. Flag values are
// case-insensitive; the parser itself stays strict.
func parseMinSeverity(value string) (*models.Severity, error) {
	if value == "" {
		return nil, nil
	}
	sev, err := models.ParseSeverity(strings.ToLower(value))
	if err != nil {
		return nil, fmt.Errorf("invalid --min-severity: %w", err)
	}
	return &sev, nil
}
