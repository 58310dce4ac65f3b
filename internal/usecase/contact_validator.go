package usecase

import (
	"sort"
	"strings"

	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// fieldOrder is the order errors are reported in, matching the form layout.
var fieldOrder = map[string]int{
	"body":      0,
	"firstName": 1,
	"lastName":  2,
	"email":     3,
	"phone":     4,
	"service":   5,
	"message":   6,
}

type contactValidator struct {
	validate *validator.Validate
}

// NewContactValidator accepts only the given service category values.
func NewContactValidator(services []string) domain.ContactValidator {
	return &contactValidator{validate: validation.New(services)}
}

// Validate checks every field and reports all failures at once.
func (v *contactValidator) Validate(payload any) (*domain.ContactSubmission, error) {
	verr := &domain.ValidationError{}

	obj, ok := payload.(map[string]any)
	if !ok {
		verr.Add("body", "must be a JSON object")
		return nil, verr
	}

	str := func(field string) string {
		raw, present := obj[field]
		if !present || raw == nil {
			return ""
		}
		s, ok := raw.(string)
		if !ok {
			verr.Add(field, "must be a string")
			return ""
		}
		return strings.TrimSpace(s)
	}

	sub := &domain.ContactSubmission{
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Email:     str("email"),
		Service:   str("service"),
		Message:   str("message"),
	}
	if phone := str("phone"); phone != "" {
		sub.Phone = &phone
	}

	if err := v.validate.Struct(sub); err != nil {
		for _, issue := range validation.FormatValidationErrors(err) {
			verr.Add(issue.Field, issue.Reason)
		}
	}

	if len(verr.Fields) > 0 {
		sort.SliceStable(verr.Fields, func(i, j int) bool {
			return fieldOrder[verr.Fields[i].Field] < fieldOrder[verr.Fields[j].Field]
		})
		return nil, verr
	}
	return sub, nil
}
