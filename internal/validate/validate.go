package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StructFields validates the `validate` tags on a request payload and
// returns a field -> reason map suitable for the error response body.
func StructFields(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return map[string]string{"payload": "not a validatable struct"}
	}

	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = fmt.Sprintf(
				"failed on the '%s' rule",
				fieldErr.Tag(),
			)
		}
	}

	return fieldErrors
}
