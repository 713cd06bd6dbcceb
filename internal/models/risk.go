// internal/models/risk.go
package models

import (
	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
)

// RiskLevel is the coarse churn-risk bucket derived from the continuous score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// Score thresholds carried over from the analytic view's tiering.
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
)

// RiskLevelFromScore buckets a churn risk score into a tier.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ParseRiskLevel validates a risk level arriving over the wire. Unrecognized
// values are a contract violation, never coerced to a default tier.
func ParseRiskLevel(raw string) (RiskLevel, error) {
	switch RiskLevel(raw) {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return RiskLevel(raw), nil
	default:
		return "", errors.NewConfigurationError("unrecognized risk_level: " + raw)
	}
}
