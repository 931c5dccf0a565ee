package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidFinder indicates a finder declaration that violates a precondition.
	ErrInvalidFinder = errors.New("findergen: invalid finder")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("findergen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("findergen: code generation failed")
	// ErrNameCollision indicates two finders deriving the same constant name.
	ErrNameCollision = errors.New("findergen: constant name collision")
)

// FinderError represents a precondition violation of a finder declaration.
// It is always returned before any source text of the finder is emitted.
type FinderError struct {
	Method  string // Finder method name
	Param   string // Parameter name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FinderError) Error() string {
	var b strings.Builder
	b.WriteString("findergen: invalid finder")
	if e.Method != "" {
		b.WriteString(" ")
		b.WriteString(e.Method)
	}
	if e.Param != "" {
		b.WriteString(" parameter ")
		b.WriteString(e.Param)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FinderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for FinderError.
func (e *FinderError) Is(target error) bool {
	return target == ErrInvalidFinder
}

// NewFinderError creates a new FinderError.
func NewFinderError(method, param, message string) *FinderError {
	return &FinderError{
		Method:  method,
		Param:   param,
		Message: message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("findergen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("findergen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Unit    string // Generated unit, e.g. "PersonRepository_"
	Method  string // Finder method (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("findergen: generation error")
	if e.Unit != "" {
		b.WriteString(" in ")
		b.WriteString(e.Unit)
	}
	if e.Method != "" {
		b.WriteString(" (method: ")
		b.WriteString(e.Method)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(unit, method, message string, cause error) *GenerationError {
	return &GenerationError{
		Unit:    unit,
		Method:  method,
		Message: message,
		Cause:   cause,
	}
}

// CollisionError is returned when a finder derives a constant name that was
// already taken by an earlier finder of the same unit.
type CollisionError struct {
	Constant string
	Method   string
	Previous string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("findergen: constant %s of %s collides with %s", e.Constant, e.Method, e.Previous)
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// IsFinderError reports whether the error is a FinderError.
func IsFinderError(err error) bool {
	var finderErr *FinderError
	return errors.As(err, &finderErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsCollisionError reports whether the error is a CollisionError.
func IsCollisionError(err error) bool {
	var collErr *CollisionError
	return errors.As(err, &collErr)
}
