package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/umeedai/umeed-api/internal/dto"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

// Target identifies which slice of the request a schema validates.
type Target string

const (
	TargetBody   Target = "body"
	TargetQuery  Target = "query"
	TargetParams Target = "params"
)

// Schema pairs a request target with a factory producing a fresh value to
// bind and validate. The validated value replaces the raw input: handlers
// read it back from the context instead of re-parsing the request.
type Schema struct {
	Target Target
	New    func() interface{}
}

// NewValidator builds the validator shared by all validation middleware,
// with json field names in error paths and cross-field rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	v.RegisterStructValidation(dto.ValidateUpdateThreshold, dto.UpdateThresholdRequest{})
	return v
}

// Validate checks a single request target against a schema. On failure the
// request halts with a 400 carrying one {field, message} pair per violated
// rule; service code never runs.
func Validate(v *validator.Validate, schema Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldErrors, err := runSchema(c, v, schema, false)
		if err != nil {
			// Not a validation outcome: surface through the generic
			// error path instead of a field-error list.
			response.Error(c, err)
			c.Abort()
			return
		}
		if len(fieldErrors) > 0 {
			response.ValidationFailed(c, fieldErrors)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ValidateMultiple checks several targets (typically params + body) and
// merges every violation into a single response. Each target is checked
// even when an earlier one already failed.
func ValidateMultiple(v *validator.Validate, schemas ...Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var allErrors []response.FieldError
		for _, schema := range schemas {
			fieldErrors, err := runSchema(c, v, schema, true)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			allErrors = append(allErrors, fieldErrors...)
		}
		if len(allErrors) > 0 {
			response.ValidationFailed(c, allErrors)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Validated returns the schema-validated value stored for a target.
func Validated(c *gin.Context, target Target) interface{} {
	value, _ := c.Get(contextKeyFor(target))
	return value
}

func runSchema(c *gin.Context, v *validator.Validate, schema Schema, prefixTarget bool) ([]response.FieldError, error) {
	value := schema.New()

	var bindErr error
	switch schema.Target {
	case TargetBody:
		bindErr = c.ShouldBindJSON(value)
	case TargetQuery:
		bindErr = c.ShouldBindQuery(value)
	case TargetParams:
		bindErr = c.ShouldBindUri(value)
	default:
		return nil, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("unsupported validation target %q", schema.Target))
	}
	if bindErr != nil {
		return nil, appErrors.Wrap(bindErr, appErrors.ErrValidation.Code, http.StatusBadRequest, fmt.Sprintf("malformed request %s", schema.Target))
	}

	if err := v.Struct(value); err != nil {
		var violations validator.ValidationErrors
		if !errors.As(err, &violations) {
			return nil, err
		}
		fieldErrors := make([]response.FieldError, 0, len(violations))
		for _, violation := range violations {
			fieldErrors = append(fieldErrors, response.FieldError{
				Field:   fieldPath(violation, schema.Target, prefixTarget),
				Message: messageFor(violation),
			})
		}
		return fieldErrors, nil
	}

	c.Set(contextKeyFor(schema.Target), value)
	return nil, nil
}

func contextKeyFor(target Target) string {
	return "validated:" + string(target)
}

// fieldPath strips the root struct name from the violation namespace and
// dot-joins the rest, optionally prefixed by the request target.
func fieldPath(violation validator.FieldError, target Target, prefixTarget bool) string {
	path := violation.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if path == "" {
		return string(target)
	}
	if prefixTarget {
		return string(target) + "." + path
	}
	return path
}

func messageFor(violation validator.FieldError) string {
	field := violation.Field()
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if violation.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, violation.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, violation.Param())
	case "max":
		if violation.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, violation.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, violation.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, violation.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, violation.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, violation.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, violation.Param())
	case "atleastonefield":
		return "At least one field (operator, value, or description) must be provided for an update."
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
