package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the risk band of a score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "LOW"}
	RiskLevelMedium = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh   = RiskLevel{value: "HIGH"}
)

// Band thresholds on the 0-100 risk score.
const (
	MediumRiskThreshold = 40.0
	HighRiskThreshold   = 70.0
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a defuzzified score.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score < MediumRiskThreshold:
		return RiskLevelLow
	case score < HighRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Label returns the display label used by the rule catalogue ("Low", "Medium", "High").
func (r RiskLevel) Label() string {
	switch r.value {
	case "LOW":
		return "Low"
	case "MEDIUM":
		return "Medium"
	case "HIGH":
		return "High"
	default:
		return ""
	}
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
