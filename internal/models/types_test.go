package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityRank(SeverityCritical))
	assert.Equal(t, 1, SeverityRank(SeverityHigh))
	assert.Equal(t, 2, SeverityRank(SeverityMedium))
	assert.Equal(t, 3, SeverityRank(SeverityLow))
	assert.Equal(t, 4, SeverityRank(SeverityInfo))
	assert.Equal(t, 5, SeverityRank(Severity("bogus")))
}

func TestSeverityOrderMostSevereFirst(t *testing.T) {
	require.Len(t, SeverityOrder, 5)
	for i := 1; i < len(SeverityOrder); i++ {
		assert.Less(t, SeverityRank(SeverityOrder[i-1]), SeverityRank(SeverityOrder[i]))
	}
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range SeverityOrder {
		parsed, err := ParseSeverity(string(sev))
		require.NoError(t, err)
		assert.Equal(t, sev, parsed)
	}

	_, err := ParseSeverity("catastrophic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catastrophic")

	// Case matters: nuclei emits lowercase only
	_, err = ParseSeverity("CRITICAL")
	assert.Error(t, err)
}
