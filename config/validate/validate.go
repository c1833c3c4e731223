// Package validate collects configuration errors per field and logs every checked value.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const masked = "***"

// FieldError is one rejected configuration value, addressed by its slash separated path.
type FieldError struct {
	Path   string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Reason
}

type ValidationErrors struct {
	errors []error
}

func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.errors = append(v.errors, err)
	}
}

// Reject logs and records an invalid value at path.
func (v *ValidationErrors) Reject(path string, value any, format string, args ...any) {
	err := &FieldError{Path: path, Value: value, Reason: fmt.Sprintf(format, args...)}
	log.Logger.Error().
		Str("config", path).
		Interface("value", value).
		Str("reason", err.Reason).
		Msg("invalid config value")
	v.Add(err)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *ValidationErrors) Errors() []error {
	return v.errors
}

func (v *ValidationErrors) Unwrap() []error {
	return v.errors
}

func (v *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:")
	for _, err := range v.errors {
		sb.WriteString("\n - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Accept logs a value that passed its checks.
func Accept(path string, value any) {
	log.Logger.Info().
		Str("config", path).
		Interface("value", value).
		Msg("config set")
}

func RequireString(v *ValidationErrors, path string, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Reject(path, value, "is required")
		return false
	}
	Accept(path, value)
	return true
}

// RequireSecret is RequireString that never writes the value to the log.
func RequireSecret(v *ValidationErrors, path string, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Reject(path, masked, "is required")
		return false
	}
	Accept(path, masked)
	return true
}

func RequireMin[T int | int64 | float64](v *ValidationErrors, path string, value T, min T) bool {
	if value < min {
		v.Reject(path, value, "must be at least %v", min)
		return false
	}
	Accept(path, value)
	return true
}

func RequireRange[T int | int64 | float64](v *ValidationErrors, path string, value T, min, max T) bool {
	if value < min || value > max {
		v.Reject(path, value, "must be between %v and %v", min, max)
		return false
	}
	Accept(path, value)
	return true
}

func CheckDuration(v *ValidationErrors, path string, d time.Duration) bool {
	if d <= 0 {
		v.Reject(path, d.String(), "must be > 0")
		return false
	}
	Accept(path, d.String())
	return true
}
