package template

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no template file exists for the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %s not found", e.ID)
}

// SchemaError represents a failure reading the template directory or
// compiling/running the template schema.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// FieldError is a single schema validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports a template file that does not conform to the
// template schema.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("template validation failed: %s", strings.Join(parts, "; "))
}
