package models

// RiskLevel buckets a student's assessment outcome.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskAssessment is the result of evaluating a student's observed factor
// values against the configured thresholds.
type RiskAssessment struct {
	StudentID        string    `json:"studentId"`
	RiskScore        int       `json:"riskScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	FactorsTriggered []string  `json:"factorsTriggered"`
}
