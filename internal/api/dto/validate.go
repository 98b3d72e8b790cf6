package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

var validate = validator.New()

// Validate runs struct-tag validation and converts failures into a 400-kind
// DomainError naming the offending fields.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(invalid))
	fields := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		field := fieldErr.Field()
		fields = append(fields, field)
		details[field] = fmt.Sprintf("failed on %q", fieldErr.Tag())
	}
	message := fmt.Sprintf("invalid field(s): %s", strings.Join(fields, ", "))
	return apperrors.NewValidationError(message, details)
}
