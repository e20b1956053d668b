package models

import "time"

// ThresholdOperator is the comparison applied between an observed factor
// value and the configured bound.
type ThresholdOperator string

const (
	OperatorLessThan    ThresholdOperator = "LT"
	OperatorGreaterThan ThresholdOperator = "GT"
	OperatorEqual       ThresholdOperator = "EQ"
)

// Valid returns true when the operator is a supported value.
func (o ThresholdOperator) Valid() bool {
	switch o {
	case OperatorLessThan, OperatorGreaterThan, OperatorEqual:
		return true
	default:
		return false
	}
}

// RiskThreshold is a configurable rule comparing a risk factor against a
// numeric bound. The factor is unique across all thresholds and immutable
// after creation.
type RiskThreshold struct {
	ID          string            `db:"id" json:"id"`
	Factor      string            `db:"factor" json:"factor"`
	Operator    ThresholdOperator `db:"operator" json:"operator"`
	Value       float64           `db:"value" json:"value"`
	Description *string           `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// ThresholdUpdate carries the mutable fields of a threshold. Nil fields are
// left untouched; the factor can never be changed.
type ThresholdUpdate struct {
	Operator    *ThresholdOperator
	Value       *float64
	Description *string
}

// Empty reports whether the update changes nothing.
func (u ThresholdUpdate) Empty() bool {
	return u.Operator == nil && u.Value == nil && u.Description == nil
}

// ResetResult summarizes a bulk threshold reset.
type ResetResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
