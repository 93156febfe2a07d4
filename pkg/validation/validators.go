package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("no_header_break", NoHeaderBreak)
}

// NoHeaderBreak rejects CR/LF in fields that end up in mail headers
func NoHeaderBreak(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "\r\n")
}

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}
