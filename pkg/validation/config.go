package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator collects every problem in a configuration instead of
// stopping at the first. Field names are prefixed with the struct name.
type ConfigValidator struct {
	name   string
	errors []error
}

// NewConfigValidator creates a validator reporting fields as name.Field
func NewConfigValidator(name string) *ConfigValidator {
	return &ConfigValidator{name: name}
}

func (cv *ConfigValidator) addf(field, format string, args ...any) {
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: "+format, append([]any{cv.name, field}, args...)...))
}

// Required records an error when value is empty
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.addf(field, "required field is empty")
	}
	return cv
}

// Unique records one error per repeated value
func (cv *ConfigValidator) Unique(field string, values []string) *ConfigValidator {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			cv.addf(field, "duplicate value %q", v)
			continue
		}
		seen[v] = struct{}{}
	}
	return cv
}

// Struct runs the struct-tag rules on v and records each violation. The
// errors carry the validator's own namespace ("Config.Datasets[0].Name").
func (cv *ConfigValidator) Struct(v any) *ConfigValidator {
	cv.errors = append(cv.errors, StructErrors(v)...)
	return cv
}

// Custom records the error returned by fn against field
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// When applies validations only if condition holds
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Validate returns every recorded error joined into one, or nil
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errors...)
}

// DefaultOr returns value unless it is the zero value
func DefaultOr[T comparable](value, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}

// DefaultOrInt returns value if positive, otherwise defaultValue
func DefaultOrInt(value, defaultValue int) int {
	if value <= 0 {
		return defaultValue
	}
	return value
}
