// Package processor turns parsed findings into a report: it
// deduplicates, filters by a severity threshold, groups and sorts,
// and derives the summary fields the renderers consume.
package processor

import (
	"sort"
	"time"

	"github.com/mkarimov/vulnrep/internal/models"
)

// DefaultTitle is used when the caller supplies no report title.
const DefaultTitle = "Vulnerability Assessment Report"

// DefaultTopLimit bounds the global most-severe findings list.
const DefaultTopLimit = 5

// Options controls how BuildReport processes a finding set. The zero
// value means: default title, no severity filter, dedup on, top 5.
type Options struct {
	Title       string
	MinSeverity *models.Severity
	SkipDedup   bool
	TopLimit    int
}

// Deduplicate removes repeated observations of the same finding
// (same template against the same host), keeping the first occurrence
// of each dedup key. First-seen order is preserved, which makes the
// operation idempotent.
func Deduplicate(findings []models.Finding) []models.Finding {
	seen := make(map[string]bool, len(findings))
	out := make([]models.Finding, 0, len(findings))
	for _, f := range findings {
		key := f.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// FilterByMinSeverity keeps only findings at least as severe as min.
// Filtering at info keeps everything; filtering at critical keeps
// only critical findings.
func FilterByMinSeverity(findings []models.Finding, min models.Severity) []models.Finding {
	threshold := models.SeverityRank(min)
	out := make([]models.Finding, 0, len(findings))
	for _, f := range findings {
		if models.SeverityRank(f.Info.Severity) <= threshold {
			out = append(out, f)
		}
	}
	return out
}

// GroupBySeverity partitions findings into the five severity buckets,
// each sorted by effective score descending. All five buckets are
// always present, even when empty. Ties keep their input order.
func GroupBySeverity(findings []models.Finding) map[string][]models.Finding {
	groups := make(map[string][]models.Finding, len(models.SeverityOrder))
	for _, sev := range models.SeverityOrder {
		groups[string(sev)] = []models.Finding{}
	}

	for _, f := range findings {
		key := string(f.Info.Severity)
		groups[key] = append(groups[key], f)
	}

	for sev := range groups {
		bucket := groups[sev]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].EffectiveScore() > bucket[j].EffectiveScore()
		})
	}

	return groups
}

// ExtractTargets returns the unique target hosts in first-seen order.
func ExtractTargets(findings []models.Finding) []string {
	seen := make(map[string]bool, len(findings))
	targets := []string{}
	for _, f := range findings {
		if !seen[f.Host] {
			seen[f.Host] = true
			targets = append(targets, f.Host)
		}
	}
	return targets
}

// ExtractTimeRange returns the earliest and latest raw timestamps
// under lexicographic comparison. Nuclei stamps one run's findings
// with a single ISO-8601 format, so string order matches time order.
func ExtractTimeRange(findings []models.Finding) models.TimeRange {
	if len(findings) == 0 {
		return models.TimeRange{}
	}
	tr := models.TimeRange{Earliest: findings[0].Timestamp, Latest: findings[0].Timestamp}
	for _, f := range findings[1:] {
		if f.Timestamp < tr.Earliest {
			tr.Earliest = f.Timestamp
		}
		if f.Timestamp > tr.Latest {
			tr.Latest = f.Timestamp
		}
	}
	return tr
}

// ExtractTopCritical returns up to limit findings sorted by severity
// rank ascending, then effective score descending. This sort spans
// all severities together; it is deliberately separate from the
// per-bucket score sort in GroupBySeverity.
func ExtractTopCritical(findings []models.Finding, limit int) []models.Finding {
	sorted := make([]models.Finding, len(findings))
	copy(sorted, findings)

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := models.SeverityRank(sorted[i].Info.Severity), models.SeverityRank(sorted[j].Info.Severity)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].EffectiveScore() > sorted[j].EffectiveScore()
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// BuildReport runs the full aggregation pipeline. The step order is
// fixed — dedup, then severity filter, then grouping and summary
// derivation — because it affects the final counts.
func BuildReport(findings []models.Finding, opts Options) *models.Report {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = DefaultTopLimit
	}

	if !opts.SkipDedup {
		findings = Deduplicate(findings)
	}
	if opts.MinSeverity != nil {
		findings = FilterByMinSeverity(findings, *opts.MinSeverity)
	}

	grouped := GroupBySeverity(findings)
	counts := make(map[string]int, len(grouped))
	for sev, items := range grouped {
		counts[sev] = len(items)
	}

	return &models.Report{
		Title:              opts.Title,
		GeneratedAt:        time.Now(),
		TotalFindings:      len(findings),
		Targets:            ExtractTargets(findings),
		SeverityCounts:     counts,
		FindingsBySeverity: grouped,
		TopCritical:        ExtractTopCritical(findings, opts.TopLimit),
		TimeRange:          ExtractTimeRange(findings),
	}
}
