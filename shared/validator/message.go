package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"empty":       "{field} must be empty",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
}

// min and max read differently depending on what they bound.
var lengthMessages = map[string]map[reflect.Kind]string{
	"min": {
		reflect.String: "{field} must be at least {param} characters",
		reflect.Slice:  "{field} must contain at least {param} item(s)",
		reflect.Map:    "{field} must contain at least {param} item(s)",
	},
	"max": {
		reflect.String: "{field} must be at most {param} characters",
		reflect.Slice:  "{field} must contain at most {param} item(s)",
		reflect.Map:    "{field} must contain at most {param} item(s)",
	},
}

var numericMessages = map[string]string{
	"min": "{field} must be greater than or equal to {param}",
	"max": "{field} must be less than or equal to {param}",
}

// message turns the first validation failure into a client-facing sentence
// naming the JSON path of the offending field.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		if valErr.Tag() == "valid" {
			if v, ok := valErr.Value().(selfValidator); ok {
				if err := v.Validate(); err != nil {
					return err.Error()
				}
			}
		}

		if template := template(valErr); template != "" {
			return strings.NewReplacer("{field}", fieldPath(valErr), "{param}", valErr.Param()).Replace(template)
		}
	}

	return valErrors.Error()
}

func template(valErr val.FieldError) string {
	if byKind, ok := lengthMessages[valErr.Tag()]; ok {
		if msg, ok := byKind[valErr.Kind()]; ok {
			return msg
		}

		return numericMessages[valErr.Tag()]
	}

	return messages[valErr.Tag()]
}

// fieldPath drops the root struct name, e.g. "CreateBookingRequest.customers[0].age" becomes "customers[0].age".
func fieldPath(valErr val.FieldError) string {
	if _, path, ok := strings.Cut(valErr.Namespace(), "."); ok && path != "" {
		return path
	}

	return valErr.Field()
}
