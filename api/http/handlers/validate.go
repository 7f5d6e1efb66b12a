package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; the validator is safe for concurrent
// use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationMessage flattens validator errors into one client-facing line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid payload"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed on "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
