package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkarimov/vulnrep/internal/logging"
	"github.com/mkarimov/vulnrep/internal/models"
)

// maxLineSize caps the scanner buffer. Nuclei lines carrying
// extracted-results can exceed bufio's 64 KiB default.
const maxLineSize = 1024 * 1024

// ParseResult contains the findings and statistics from parsing one
// JSONL source. Blank lines are skipped silently and count toward
// neither TotalLines nor SkippedLines, so the invariant
// SkippedLines + len(Findings) == TotalLines always holds.
type ParseResult struct {
	Findings     []models.Finding
	TotalLines   int
	SkippedLines int
	Errors       []string
}

// SuccessCount returns the number of lines that parsed and validated.
func (r *ParseResult) SuccessCount() int {
	return len(r.Findings)
}

// Summary renders a human-readable digest of the parse run.
func (r *ParseResult) Summary() string {
	lines := []string{
		fmt.Sprintf("Parsed %d/%d lines successfully", r.SuccessCount(), r.TotalLines),
	}
	if r.SkippedLines > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d malformed/empty lines", r.SkippedLines))
	}
	if len(r.Errors) > 0 {
		lines = append(lines, "Errors:")
		for _, err := range r.Errors {
			lines = append(lines, "  - "+err)
		}
	}
	return strings.Join(lines, "\n")
}

// ParseFile parses a nuclei JSONL file from disk. A file-level open
// failure is returned as a hard error before any line processing;
// per-line failures are recorded in the result's Errors list instead.
func ParseFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening JSONL file: %w", err)
	}
	defer f.Close()

	return ParseStream(f, path)
}

// ParseStream parses nuclei JSONL data from any reader. source labels
// the input in diagnostics (e.g. the filename). No single malformed
// line aborts the parse: each failure is skipped, recorded as a
// diagnostic in line order, and processing continues.
func ParseStream(r io.Reader, source string) (*ParseResult, error) {
	result := &ParseResult{Findings: []models.Finding{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result.TotalLines++

		// Step 1: Generic JSON probe. A failure here means the line is
		// not well-formed JSON at all.
		var probe any
		if err := json.Unmarshal([]byte(line), &probe); err != nil {
			msg := fmt.Sprintf("%s line %d: invalid JSON — %v", source, lineNum, err)
			logging.L().Warn(msg)
			result.Errors = append(result.Errors, msg)
			result.SkippedLines++
			continue
		}

		// Step 2: Typed decode plus field validation. Well-formed JSON
		// with the wrong shape (missing required fields, wrong types,
		// unknown severity) lands here, not in step 1.
		finding, err := decodeFinding([]byte(line))
		if err != nil {
			msg := fmt.Sprintf("%s line %d: validation failed — %v", source, lineNum, err)
			logging.L().Warn(msg)
			result.Errors = append(result.Errors, msg)
			result.SkippedLines++
			continue
		}

		result.Findings = append(result.Findings, finding)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	return result, nil
}
