package models

// Audit action constants for configuration mutations.
const (
	AuditActionCreateThreshold = "CREATE_THRESHOLD"
	AuditActionUpdateThreshold = "UPDATE_THRESHOLD"
	AuditActionResetThresholds = "RESET_THRESHOLDS"
)

// AuditActorSystem is recorded when no authenticated actor is available.
const AuditActorSystem = "system"

// ThresholdChange captures the before/after snapshots of an updated
// threshold so consumers can diff the mutation from the audit trail alone.
type ThresholdChange struct {
	Factor   string         `json:"factor"`
	OldValue *RiskThreshold `json:"oldValue"`
	NewValue *RiskThreshold `json:"newValue"`
}
