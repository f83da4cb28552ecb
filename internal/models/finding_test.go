package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupKey(t *testing.T) {
	f := Finding{TemplateID: "exposed-panel", Host: "https://a.example.com"}
	assert.Equal(t, "exposed-panel::https://a.example.com", f.DedupKey())

	same := Finding{TemplateID: "exposed-panel", Host: "https://a.example.com", Timestamp: "2025-02-10T13:00:00Z"}
	assert.Equal(t, f.DedupKey(), same.DedupKey())

	otherHost := Finding{TemplateID: "exposed-panel", Host: "https://b.example.com"}
	assert.NotEqual(t, f.DedupKey(), otherHost.DedupKey())
}

func TestEffectiveScore(t *testing.T) {
	score := 9.8
	withScore := Finding{Info: FindingInfo{Classification: &Classification{CVSSScore: &score}}}
	assert.Equal(t, 9.8, withScore.EffectiveScore())

	noClassification := Finding{}
	assert.Equal(t, 0.0, noClassification.EffectiveScore())

	noScore := Finding{Info: FindingInfo{Classification: &Classification{CVSSMetrics: "CVSS:3.1/AV:N"}}}
	assert.Equal(t, 0.0, noScore.EffectiveScore())
}

func TestFindingJSONAliases(t *testing.T) {
	line := `{
		"template-id": "tls-version",
		"info": {"name": "TLS Version", "severity": "info", "classification": {"cvss-score": 5.3, "cve-id": ["cve-2021-0001"]}},
		"type": "ssl",
		"host": "example.com:443",
		"matched-at": "example.com:443",
		"timestamp": "2025-02-10T12:00:00-05:00",
		"matcher-status": true,
		"curl-command": "curl example.com"
	}`

	var f Finding
	require.NoError(t, json.Unmarshal([]byte(line), &f))
	assert.Equal(t, "tls-version", f.TemplateID)
	assert.Equal(t, "example.com:443", f.MatchedAt)
	assert.True(t, f.MatcherStatus)
	assert.Equal(t, "curl example.com", f.CurlCommand)
	require.NotNil(t, f.Info.Classification)
	assert.Equal(t, 5.3, f.EffectiveScore())
	assert.Equal(t, []string{"cve-2021-0001"}, f.Info.Classification.CVEID)
}
