package flatkey

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrConfiguration indicates an unsatisfiable column definition.
	// Raised at construction time, never at read/write time.
	ErrConfiguration = errors.New("invalid column configuration")

	// ErrSchemaResolution indicates the registry could not resolve a model name.
	ErrSchemaResolution = errors.New("schema resolution failed")

	// ErrMissingField indicates a composite key value or stored mapping
	// lacks a field the schema declares.
	ErrMissingField = errors.New("missing key field")

	// ErrTypeCoercion indicates a component value could not be encoded or
	// decoded by its declared field type.
	ErrTypeCoercion = errors.New("type coercion failed")
)

// ConfigError represents a column configuration error.
// It wraps ErrConfiguration with context about the model and offending option.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrConfiguration)
	Model  string // Model name the column references, if any
	Option string // Option that made the configuration unsatisfiable
}

func (e *ConfigError) Error() string {
	if e.Option != "" && e.Model != "" {
		return fmt.Sprintf("%s: option %q (model %s)", e.Err.Error(), e.Option, e.Model)
	}
	if e.Option != "" {
		return fmt.Sprintf("%s: option %q", e.Err.Error(), e.Option)
	}
	if e.Model != "" {
		return fmt.Sprintf("%s (model %s)", e.Err.Error(), e.Model)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResolutionError represents a failed schema lookup.
// Resolution failures are fatal per call and never retried by the codec.
type ResolutionError struct {
	Err   error  // Underlying sentinel error (ErrSchemaResolution)
	Model string // Model name that failed to resolve
	Cause error  // Original error from the registry, if any
}

func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for model %q: %v", e.Err.Error(), e.Model, e.Cause)
	}
	return fmt.Sprintf("%s for model %q", e.Err.Error(), e.Model)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// FieldError represents a required key field absent from a composite key
// value or a stored mapping. It signals data/schema drift.
type FieldError struct {
	Err   error  // Underlying sentinel error (ErrMissingField)
	Model string // Model whose schema declares the field
	Field string // Field ID that was absent
}

func (e *FieldError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s %q (model %s)", e.Err.Error(), e.Field, e.Model)
	}
	return fmt.Sprintf("%s %q", e.Err.Error(), e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CoercionError represents a value that cannot be encoded or decoded by its
// declared field type. It signals a bug or an incompatible schema change and
// must propagate to the caller.
type CoercionError struct {
	Err   error       // Underlying sentinel error (ErrTypeCoercion)
	Field string      // Field ID that failed, empty for whole-value failures
	Type  LogicalType // Declared logical type of the field
	Cause error       // Original error from the field type
}

func (e *CoercionError) Error() string {
	if e.Field != "" && e.Cause != nil {
		return fmt.Sprintf("%s for field %q (%s): %v", e.Err.Error(), e.Field, e.Type, e.Cause)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s for field %q (%s)", e.Err.Error(), e.Field, e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for definition-time failures.
func newConfigError(model, option string) error {
	return &ConfigError{
		Err:    ErrConfiguration,
		Model:  model,
		Option: option,
	}
}

// newResolutionError creates a ResolutionError for failed schema lookups.
func newResolutionError(model string, cause error) error {
	return &ResolutionError{
		Err:   ErrSchemaResolution,
		Model: model,
		Cause: cause,
	}
}

// newFieldError creates a FieldError for absent key fields.
func newFieldError(model, field string) error {
	return &FieldError{
		Err:   ErrMissingField,
		Model: model,
		Field: field,
	}
}

// newCoercionError creates a CoercionError for encode/decode failures.
func newCoercionError(field string, lt LogicalType, cause error) error {
	return &CoercionError{
		Err:   ErrTypeCoercion,
		Field: field,
		Type:  lt,
		Cause: cause,
	}
}
