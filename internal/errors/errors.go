package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorLesson   = 3   // Indicates that at least one lesson failed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Error kinds reported by the arithmetic helpers. They are meant to be
// matched with errors.Is.
var (
	// ErrInvalidArgument reports an input outside the function's domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOverflow reports a result that does not fit the numeric width.
	ErrOverflow = errors.New("integer overflow")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ArithmeticError describes a rejected arithmetic operation. Kind is one of
// ErrInvalidArgument or ErrOverflow and is exposed through Unwrap.
type ArithmeticError struct {
	// Op names the operation, e.g. "fahrenheit_to_celsius".
	Op string
	// Input is the argument that was rejected.
	Input int64
	// Kind classifies the failure.
	Kind error
}

// Error returns a message of the form "op(input): kind".
func (e ArithmeticError) Error() string {
	return fmt.Sprintf("%s(%d): %v", e.Op, e.Input, e.Kind)
}

// Unwrap returns the error kind so errors.Is(err, ErrOverflow) matches.
func (e ArithmeticError) Unwrap() error { return e.Kind }

// NewInvalidArgument returns an ArithmeticError of kind ErrInvalidArgument.
func NewInvalidArgument(op string, input int64) error {
	return ArithmeticError{Op: op, Input: input, Kind: ErrInvalidArgument}
}

// NewOverflow returns an ArithmeticError of kind ErrOverflow.
func NewOverflow(op string, input int64) error {
	return ArithmeticError{Op: op, Input: input, Kind: ErrOverflow}
}

// LessonError wraps the failure of a single lesson while preserving the
// original cause.
type LessonError struct {
	// Lesson is the name of the lesson that failed.
	Lesson string
	// Cause is the underlying error.
	Cause error
}

// Error returns the lesson name followed by the cause.
func (e LessonError) Error() string {
	return fmt.Sprintf("lesson %q: %v", e.Lesson, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e LessonError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code that best describes it.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		var lessonErr LessonError
		if errors.As(err, &lessonErr) {
			return ExitErrorLesson
		}
		return ExitErrorGeneric
	}
}
