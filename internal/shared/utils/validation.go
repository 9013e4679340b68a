package utils

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// IsValidationError reports whether err came out of an ozzo Validate call.
func IsValidationError(err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return true
	}
	var objErr validation.ErrorObject
	return errors.As(err, &objErr)
}
