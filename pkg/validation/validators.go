package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports json field names and knows the
// custom tags used by the contact form.
func New(services []string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v, services)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate, services []string) {
	_ = v.RegisterValidation("service_category", ServiceCategory(services))
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ServiceCategory builds a validator accepting only the given values.
func ServiceCategory(services []string) validator.Func {
	allowed := make(map[string]struct{}, len(services))
	for _, s := range services {
		allowed[s] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}
