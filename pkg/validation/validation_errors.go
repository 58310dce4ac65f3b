package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Issue is a single failed rule, keyed by json field name.
type Issue struct {
	Field  string
	Reason string
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []Issue {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []Issue{{Field: "body", Reason: err.Error()}}
	}

	issues := make([]Issue, 0, len(validationErrors))
	for _, e := range validationErrors {
		issues = append(issues, Issue{Field: e.Field(), Reason: Reason(e)})
	}
	return issues
}

// Reason formats a single validation error to a user-friendly message
func Reason(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"

	case "max":
		return fmt.Sprintf("must be at most %s characters", param)

	case "min":
		return fmt.Sprintf("must be at least %s characters", param)

	case "email":
		return "must be a valid email address"

	case "service_category":
		return "must be one of the offered services"

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
