package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens failures into a
// single human-readable error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed on '%s' rule", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}
