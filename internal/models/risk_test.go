// internal/models/risk_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
)

func TestRiskLevelFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0.95, RiskLevelHigh},
		{0.7, RiskLevelHigh},
		{0.699, RiskLevelMedium},
		{0.4, RiskLevelMedium},
		{0.399, RiskLevelLow},
		{0, RiskLevelLow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskLevelFromScore(tc.score), "score %v", tc.score)
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, valid := range []string{"LOW", "MEDIUM", "HIGH"} {
		level, err := ParseRiskLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, RiskLevel(valid), level)
	}

	for _, invalid := range []string{"", "high", "CRITICAL", "Medium"} {
		_, err := ParseRiskLevel(invalid)
		require.Error(t, err, "value %q", invalid)
		assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))
	}
}
