package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
)

// WriteMarkdown renders the report as a markdown document and writes
// it to the specified output path. Useful for ticketing systems and
// diffs where a PDF is inconvenient.
func WriteMarkdown(rep *models.Report, outputPath string) error {
	var b strings.Builder

	// Header
	b.WriteString(fmt.Sprintf("# %s\n\n", rep.Title))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	if rep.TimeRange.Earliest != "" {
		b.WriteString(fmt.Sprintf("**Scan window:** %s to %s\n",
			trimTimestamp(rep.TimeRange.Earliest), trimTimestamp(rep.TimeRange.Latest)))
	}
	b.WriteString(fmt.Sprintf(
		"**Total findings:** %d | **Critical:** %d | **High:** %d | **Medium:** %d | **Low:** %d | **Info:** %d\n\n",
		rep.TotalFindings,
		rep.SeverityCounts[string(models.SeverityCritical)],
		rep.SeverityCounts[string(models.SeverityHigh)],
		rep.SeverityCounts[string(models.SeverityMedium)],
		rep.SeverityCounts[string(models.SeverityLow)],
		rep.SeverityCounts[string(models.SeverityInfo)],
	))

	// Targets
	b.WriteString("## Targets\n\n")
	if len(rep.Targets) > 0 {
		for _, target := range rep.Targets {
			b.WriteString(fmt.Sprintf("- %s\n", target))
		}
	} else {
		b.WriteString("None.\n")
	}
	b.WriteString("\n")

	// One section per severity in priority order
	for _, sev := range models.SeverityOrder {
		b.WriteString(fmt.Sprintf("## %s Findings\n\n", titleCase(string(sev))))

		findings := rep.FindingsBySeverity[string(sev)]
		if len(findings) == 0 {
			b.WriteString(fmt.Sprintf("No %s findings.\n\n", string(sev)))
			continue
		}

		b.WriteString("| Name | Host | Matched At | CVSS | Template ID |\n")
		b.WriteString("|------|------|------------|------|-------------|\n")
		for _, f := range findings {
			matchedAt := f.MatchedAt
			if matchedAt == "" {
				matchedAt = "-"
			}
			cvss := "-"
			if score := f.EffectiveScore(); score > 0 {
				cvss = fmt.Sprintf("%.1f", score)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				f.Info.Name, f.Host, matchedAt, cvss, f.TemplateID))
		}
		b.WriteString("\n")
	}

	// Top findings section
	if len(rep.TopCritical) > 0 {
		b.WriteString(fmt.Sprintf("## Top %d Findings\n\n", len(rep.TopCritical)))
		for i, f := range rep.TopCritical {
			cvss := ""
			if score := f.EffectiveScore(); score > 0 {
				cvss = fmt.Sprintf(" (CVSS %.1f)", score)
			}
			b.WriteString(fmt.Sprintf("%d. **[%s]** %s%s — %s\n",
				i+1, strings.ToUpper(string(f.Info.Severity)), f.Info.Name, cvss, f.Host))
		}
		b.WriteString("\n")
	}

	// Write to file
	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputPath, err)
	}

	return nil
}

// titleCase upper-cases the first letter of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
