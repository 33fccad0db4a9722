package enhance

import "fmt"

// EnhanceError represents a failure while enhancing section content
type EnhanceError struct {
	Message string
	Cause   error
}

func (e *EnhanceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhance: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhance: %s", e.Message)
}

func (e *EnhanceError) Unwrap() error {
	return e.Cause
}
