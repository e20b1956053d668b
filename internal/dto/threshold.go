package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/umeedai/umeed-api/internal/models"
)

// CreateThresholdRequest is the payload for registering a new risk threshold.
type CreateThresholdRequest struct {
	Factor      string   `json:"factor" validate:"required,min=3"`
	Operator    string   `json:"operator" validate:"required,oneof=LT GT EQ"`
	Value       *float64 `json:"value" validate:"required"`
	Description *string  `json:"description"`
}

// ThresholdParams identifies a threshold by its factor in the URL path.
type ThresholdParams struct {
	Factor string `uri:"factor" validate:"required"`
}

// UpdateThresholdRequest carries a partial threshold update. Every field is
// optional, but the payload as a whole must change at least one of them;
// that rule lives in ValidateUpdateThreshold, not on the fields.
type UpdateThresholdRequest struct {
	Operator    *string  `json:"operator" validate:"omitempty,oneof=LT GT EQ"`
	Value       *float64 `json:"value"`
	Description *string  `json:"description"`
}

// ValidateUpdateThreshold is a struct-level rule rejecting empty updates.
// Register it on the validator used by the validation middleware.
func ValidateUpdateThreshold(sl validator.StructLevel) {
	req := sl.Current().Interface().(UpdateThresholdRequest)
	if req.Operator == nil && req.Value == nil && req.Description == nil {
		sl.ReportError(req, "", "", "atleastonefield", "")
	}
}

// ToUpdate converts the request into the persistence update shape.
func (r UpdateThresholdRequest) ToUpdate() models.ThresholdUpdate {
	update := models.ThresholdUpdate{
		Value:       r.Value,
		Description: r.Description,
	}
	if r.Operator != nil {
		op := models.ThresholdOperator(*r.Operator)
		update.Operator = &op
	}
	return update
}

// ExportQuery selects the rendering format for threshold exports.
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
