package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BodyValidator adapts go-playground/validator to echo.Validator.
type BodyValidator struct {
	validate *validator.Validate
}

func NewBodyValidator() *BodyValidator {
	return &BodyValidator{
		validate: validator.New(),
	}
}

func (v *BodyValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldErrors flattens validator failures into the per-field error map
// of the API's {errors: {field: message}} envelope.
func fieldErrors(err error) map[string]string {
	result := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result["body"] = "invalid request body"
		return result
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, ok := result[field]; ok {
			continue
		}
		result[field] = fieldMessage(field, fe)
	}

	return result
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}
