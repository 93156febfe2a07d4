package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels shown next to form inputs
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Subject": "Subject",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: This field is required", label)
	case "email":
		return fmt.Sprintf("%s: Please enter a valid email address", label)
	case "max":
		return fmt.Sprintf("%s: Must be at most %s characters", label, e.Param())
	case "no_header_break":
		return fmt.Sprintf("%s: Must be a single line", label)
	default:
		return fmt.Sprintf("%s: Invalid value (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
