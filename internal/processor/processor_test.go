package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/parser"
)

const sampleData = "../parser/testdata/sample_scan.jsonl"

type findingParams struct {
	templateID string
	host       string
	severity   models.Severity
	cvssScore  float64 // 0 means no classification
	timestamp  string
}

func makeFinding(p findingParams) models.Finding {
	if p.templateID == "" {
		p.templateID = "test-001"
	}
	if p.host == "" {
		p.host = "https://example.com"
	}
	if p.severity == "" {
		p.severity = models.SeverityHigh
	}
	if p.timestamp == "" {
		p.timestamp = "2025-02-10T12:00:00-05:00"
	}

	f := models.Finding{
		TemplateID: p.templateID,
		Info: models.FindingInfo{
			Name:     "Test " + p.templateID,
			Severity: p.severity,
		},
		Type:          "http",
		Host:          p.host,
		MatchedAt:     p.host + "/test",
		Timestamp:     p.timestamp,
		MatcherStatus: true,
	}
	if p.cvssScore != 0 {
		score := p.cvssScore
		f.Info.Classification = &models.Classification{CVSSScore: &score}
	}
	return f
}

func TestDeduplicateNoDupes(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "b", host: "https://2.com"}),
	}
	assert.Len(t, Deduplicate(findings), 2)
}

func TestDeduplicateRemovesDupes(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
	}
	assert.Len(t, Deduplicate(findings), 1)
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://1.com", timestamp: "2025-02-10T12:00:01Z"}),
		makeFinding(findingParams{templateID: "a", host: "https://1.com", timestamp: "2025-02-10T12:00:02Z"}),
	}
	deduped := Deduplicate(findings)
	require.Len(t, deduped, 1)
	assert.Equal(t, "2025-02-10T12:00:01Z", deduped[0].Timestamp)
}

func TestDeduplicateSameTemplateDifferentHostKept(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://2.com"}),
	}
	assert.Len(t, Deduplicate(findings), 2)
}

func TestDeduplicateIdempotent(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://1.com"}),
		makeFinding(findingParams{templateID: "b", host: "https://1.com"}),
	}
	once := Deduplicate(findings)
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}

func TestFilterMediumAndAbove(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "c", severity: models.SeverityCritical}),
		makeFinding(findingParams{templateID: "h", severity: models.SeverityHigh}),
		makeFinding(findingParams{templateID: "m", severity: models.SeverityMedium}),
		makeFinding(findingParams{templateID: "l", severity: models.SeverityLow}),
		makeFinding(findingParams{templateID: "i", severity: models.SeverityInfo}),
	}
	filtered := FilterByMinSeverity(findings, models.SeverityMedium)
	require.Len(t, filtered, 3)
	for _, f := range filtered {
		assert.LessOrEqual(t, models.SeverityRank(f.Info.Severity), models.SeverityRank(models.SeverityMedium))
	}
}

func TestFilterCriticalOnly(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "c", severity: models.SeverityCritical}),
		makeFinding(findingParams{templateID: "h", severity: models.SeverityHigh}),
	}
	filtered := FilterByMinSeverity(findings, models.SeverityCritical)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.SeverityCritical, filtered[0].Info.Severity)
}

func TestFilterInfoKeepsAll(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "c", severity: models.SeverityCritical}),
		makeFinding(findingParams{templateID: "i", severity: models.SeverityInfo}),
	}
	assert.Equal(t, findings, FilterByMinSeverity(findings, models.SeverityInfo))
}

func TestGroupBySeverityBuckets(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{severity: models.SeverityCritical, cvssScore: 10.0}),
		makeFinding(findingParams{severity: models.SeverityHigh, cvssScore: 8.0}),
		makeFinding(findingParams{severity: models.SeverityMedium, cvssScore: 5.0}),
		makeFinding(findingParams{severity: models.SeverityLow, cvssScore: 3.0}),
		makeFinding(findingParams{severity: models.SeverityInfo}),
	}
	groups := GroupBySeverity(findings)
	for _, sev := range models.SeverityOrder {
		assert.Len(t, groups[string(sev)], 1)
	}
}

func TestGroupBySeveritySortedByScoreDescending(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", severity: models.SeverityHigh, cvssScore: 7.0}),
		makeFinding(findingParams{templateID: "b", severity: models.SeverityHigh, cvssScore: 9.8}),
		makeFinding(findingParams{templateID: "c", severity: models.SeverityHigh, cvssScore: 8.5}),
	}
	groups := GroupBySeverity(findings)
	var scores []float64
	for _, f := range groups["high"] {
		scores = append(scores, f.EffectiveScore())
	}
	assert.Equal(t, []float64{9.8, 8.5, 7.0}, scores)
}

func TestGroupBySeverityStableOnTies(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "first", severity: models.SeverityLow}),
		makeFinding(findingParams{templateID: "second", severity: models.SeverityLow}),
		makeFinding(findingParams{templateID: "third", severity: models.SeverityLow}),
	}
	groups := GroupBySeverity(findings)
	var ids []string
	for _, f := range groups["low"] {
		ids = append(ids, f.TemplateID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestGroupBySeverityEmptyGroupsPresent(t *testing.T) {
	groups := GroupBySeverity(nil)
	require.Len(t, groups, 5)
	for _, sev := range models.SeverityOrder {
		bucket, ok := groups[string(sev)]
		require.True(t, ok)
		assert.Empty(t, bucket)
	}
}

func TestExtractTargetsUniqueOrdered(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{host: "https://b.com"}),
		makeFinding(findingParams{host: "https://a.com"}),
		makeFinding(findingParams{host: "https://b.com"}),
		makeFinding(findingParams{host: "https://c.com"}),
	}
	assert.Equal(t, []string{"https://b.com", "https://a.com", "https://c.com"}, ExtractTargets(findings))
}

func TestExtractTimeRange(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{timestamp: "2025-02-10T12:30:00-05:00"}),
		makeFinding(findingParams{timestamp: "2025-02-10T12:00:00-05:00"}),
		makeFinding(findingParams{timestamp: "2025-02-10T12:45:00-05:00"}),
	}
	tr := ExtractTimeRange(findings)
	assert.Equal(t, "2025-02-10T12:00:00-05:00", tr.Earliest)
	assert.Equal(t, "2025-02-10T12:45:00-05:00", tr.Latest)
}

func TestExtractTimeRangeEmpty(t *testing.T) {
	tr := ExtractTimeRange(nil)
	assert.Equal(t, models.TimeRange{}, tr)
}

func TestExtractTopCriticalOrdering(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "m1", severity: models.SeverityMedium, cvssScore: 6.0}),
		makeFinding(findingParams{templateID: "h1", severity: models.SeverityHigh, cvssScore: 9.8}),
		makeFinding(findingParams{templateID: "c2", severity: models.SeverityCritical, cvssScore: 9.8}),
		makeFinding(findingParams{templateID: "l1", severity: models.SeverityLow, cvssScore: 3.0}),
		makeFinding(findingParams{templateID: "c1", severity: models.SeverityCritical, cvssScore: 10.0}),
		makeFinding(findingParams{templateID: "h2", severity: models.SeverityHigh, cvssScore: 8.0}),
	}
	top := ExtractTopCritical(findings, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "c1", top[0].TemplateID)
	assert.Equal(t, "c2", top[1].TemplateID)
	assert.Equal(t, "h1", top[2].TemplateID)
	assert.Equal(t, "h2", top[3].TemplateID)
	assert.Equal(t, models.SeverityMedium, top[4].Info.Severity)
}

func TestExtractTopCriticalFewerThanLimit(t *testing.T) {
	findings := []models.Finding{makeFinding(findingParams{severity: models.SeverityHigh})}
	assert.Len(t, ExtractTopCritical(findings, 5), 1)
}

func TestExtractTopCriticalDoesNotMutateInput(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "low", severity: models.SeverityLow}),
		makeFinding(findingParams{templateID: "crit", severity: models.SeverityCritical}),
	}
	ExtractTopCritical(findings, 5)
	assert.Equal(t, "low", findings[0].TemplateID)
}

func TestBuildReportWithSampleData(t *testing.T) {
	result, err := parser.ParseFile(sampleData)
	require.NoError(t, err)

	rep := BuildReport(result.Findings, Options{})

	assert.Equal(t, 26, rep.TotalFindings)
	assert.Equal(t, 5, rep.SeverityCounts["critical"])
	assert.Equal(t, 8, rep.SeverityCounts["high"])
	assert.NotEmpty(t, rep.Targets)
	require.Len(t, rep.TopCritical, 5)
	assert.Equal(t, models.SeverityCritical, rep.TopCritical[0].Info.Severity)
	assert.NotEmpty(t, rep.TimeRange.Earliest)
	assert.LessOrEqual(t, rep.TimeRange.Earliest, rep.TimeRange.Latest)
}

func TestBuildReportDedupApplied(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://x.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://x.com"}),
	}
	rep := BuildReport(findings, Options{})
	assert.Equal(t, 1, rep.TotalFindings)
}

func TestBuildReportSkipDedup(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "a", host: "https://x.com"}),
		makeFinding(findingParams{templateID: "a", host: "https://x.com"}),
	}
	rep := BuildReport(findings, Options{SkipDedup: true})
	assert.Equal(t, 2, rep.TotalFindings)
}

func TestBuildReportMinSeverityFilter(t *testing.T) {
	findings := []models.Finding{
		makeFinding(findingParams{templateID: "crit-1", severity: models.SeverityCritical}),
		makeFinding(findingParams{templateID: "low-1", severity: models.SeverityLow}),
		makeFinding(findingParams{templateID: "info-1", severity: models.SeverityInfo}),
	}
	min := models.SeverityMedium
	rep := BuildReport(findings, Options{MinSeverity: &min})

	assert.Equal(t, 1, rep.TotalFindings)
	assert.Equal(t, 0, rep.SeverityCounts["low"])
	assert.Equal(t, 0, rep.SeverityCounts["info"])
	assert.Equal(t, 1, rep.SeverityCounts["critical"])
}

func TestBuildReportCustomTitle(t *testing.T) {
	rep := BuildReport(nil, Options{Title: "Custom Report"})
	assert.Equal(t, "Custom Report", rep.Title)

	rep = BuildReport(nil, Options{})
	assert.Equal(t, DefaultTitle, rep.Title)
}

func TestBuildReportEmptyFindings(t *testing.T) {
	rep := BuildReport(nil, Options{})

	assert.Equal(t, 0, rep.TotalFindings)
	assert.Empty(t, rep.Targets)
	assert.Empty(t, rep.TopCritical)
	assert.Equal(t, models.TimeRange{}, rep.TimeRange)

	// All five buckets are enumerated even when empty
	require.Len(t, rep.SeverityCounts, 5)
	require.Len(t, rep.FindingsBySeverity, 5)
	for _, sev := range models.SeverityOrder {
		assert.Equal(t, 0, rep.SeverityCounts[string(sev)])
	}
}
