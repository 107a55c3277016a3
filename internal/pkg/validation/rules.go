package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom rule tags usable in binding tags
const (
	TagNotBlank = "notblank"
)

// Rules maps each custom tag to its implementation
var Rules = map[string]validator.Func{
	TagNotBlank: notBlank,
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	for tag, fn := range Rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q rule: %w", tag, err)
		}
	}
	return nil
}

// notBlank rejects strings that are empty once surrounding whitespace is removed
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
