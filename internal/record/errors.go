package record

import "fmt"

// ParseError represents a failure reading or decoding the CSV input.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("csv parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("csv parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
