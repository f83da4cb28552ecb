package models

// Classification holds CVE/CWE and CVSS metadata for a finding.
type Classification struct {
	CVEID       []string `json:"cve-id,omitempty"`
	CWEID       []string `json:"cwe-id,omitempty"`
	CVSSMetrics string   `json:"cvss-metrics,omitempty"`
	CVSSScore   *float64 `json:"cvss-score,omitempty"`
}

// FindingInfo holds the template info block from nuclei JSONL output.
type FindingInfo struct {
	Name           string          `json:"name"`
	Author         []string        `json:"author,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Description    string          `json:"description,omitempty"`
	Reference      []string        `json:"reference,omitempty"`
	Severity       Severity        `json:"severity"`
	Classification *Classification `json:"classification,omitempty"`
	Remediation    string          `json:"remediation,omitempty"`
}

// Finding represents one validated vulnerability observation from
// nuclei's JSONL output. Field names use hyphens to stay compatible
// with nuclei and downstream tooling that reads the same format.
// Findings are immutable once validated by the parser.
type Finding struct {
	TemplateID       string      `json:"template-id"`
	TemplateURL      string      `json:"template-url,omitempty"`
	Info             FindingInfo `json:"info"`
	Type             string      `json:"type"`
	Host             string      `json:"host"`
	MatchedAt        string      `json:"matched-at"`
	ExtractedResults []string    `json:"extracted-results,omitempty"`
	IP               string      `json:"ip,omitempty"`
	Timestamp        string      `json:"timestamp"`
	CurlCommand      string      `json:"curl-command,omitempty"`
	MatcherStatus    bool        `json:"matcher-status"`
}

// DedupKey returns the identity proxy used for deduplication:
// the same template against the same host is one finding.
func (f *Finding) DedupKey() string {
	return f.TemplateID + "::" + f.Host
}

// EffectiveScore returns the classification CVSS score when present,
// else 0.0. Used only for sort tie-breaking, never for filtering.
func (f *Finding) EffectiveScore() float64 {
	if f.Info.Classification != nil && f.Info.Classification.CVSSScore != nil {
		return *f.Info.Classification.CVSSScore
	}
	return 0.0
}
