package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarimov/vulnrep/internal/models"
	"github.com/mkarimov/vulnrep/internal/processor"
)

func testReport(t *testing.T) *models.Report {
	t.Helper()

	score := func(v float64) *float64 { return &v }
	findings := []models.Finding{
		{
			TemplateID: "apache-log4j-rce",
			Info: models.FindingInfo{
				Name:     "Apache Log4j JNDI RCE",
				Severity: models.SeverityCritical,
				Classification: &models.Classification{
					CVEID:     []string{"cve-2021-44228"},
					CVSSScore: score(10.0),
				},
				Description: "Remote code execution via JNDI lookups.",
				Remediation: "Upgrade log4j to 2.17.1 or later.",
				Reference:   []string{"https://nvd.nist.gov/vuln/detail/CVE-2021-44228"},
			},
			Type:          "http",
			Host:          "https://app.example.com",
			MatchedAt:     "https://app.example.com/login",
			Timestamp:     "2025-02-10T12:00:30-05:00",
			MatcherStatus: true,
		},
		{
			TemplateID: "cors-misconfiguration",
			Info: models.FindingInfo{
				Name:     "Permissive CORS Policy",
				Severity: models.SeverityHigh,
			},
			Type:          "http",
			Host:          "https://api.example.com",
			MatchedAt:     "https://api.example.com/",
			Timestamp:     "2025-02-10T12:05:30-05:00",
			MatcherStatus: true,
		},
		{
			TemplateID: "tech-detect-nginx",
			Info: models.FindingInfo{
				Name:     "Nginx Detected",
				Severity: models.SeverityInfo,
			},
			Type:          "http",
			Host:          "https://api.example.com",
			MatchedAt:     "https://api.example.com/",
			Timestamp:     "2025-02-10T12:10:30-05:00",
			MatcherStatus: true,
		},
	}

	return processor.BuildReport(findings, processor.Options{Title: "Acme Assessment"})
}

func TestWritePDF(t *testing.T) {
	rep := testReport(t)
	outPath := filepath.Join(t.TempDir(), "report.pdf")

	written, err := WritePDF(rep, outPath, PDFOptions{})
	require.NoError(t, err)
	assert.Equal(t, outPath, written)

	data, err := os.ReadFile(written)
	require.NoError(t, err)
	require.Greater(t, len(data), 1024)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestWritePDFEmptyReport(t *testing.T) {
	rep := processor.BuildReport(nil, processor.Options{})
	rep.GeneratedAt = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	outPath := filepath.Join(t.TempDir(), "empty.pdf")

	written, err := WritePDF(rep, outPath, PDFOptions{})
	require.NoError(t, err)

	info, err := os.Stat(written)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePDFBadPath(t *testing.T) {
	rep := testReport(t)
	_, err := WritePDF(rep, filepath.Join(t.TempDir(), "missing", "report.pdf"), PDFOptions{})
	assert.Error(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	rep := testReport(t)
	outPath := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, WriteMarkdown(rep, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# Acme Assessment")
	assert.Contains(t, md, "## Critical Findings")
	assert.Contains(t, md, "Apache Log4j JNDI RCE")
	assert.Contains(t, md, "No medium findings.")
	assert.Contains(t, md, "## Targets")
	assert.Contains(t, md, "https://app.example.com")
	assert.Contains(t, md, "## Top 3 Findings")
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("DC2626")
	assert.Equal(t, []int{220, 38, 38}, []int{r, g, b})

	r, g, b = hexRGB("not-hex")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}
