package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator. Field
// names in messages use the JSON name of the field.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate checks i and returns an InvalidArgument error for the first violated rule
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidArgument(msgInvalidBody)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalidArgument(fmt.Sprintf("%s is required", fe.Field()))
	default:
		return invalidArgument(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
