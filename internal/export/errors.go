package export

import (
	"fmt"
	"strings"
)

// OptionsError wraps an options validation failure
type OptionsError struct {
	Cause error
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("export: invalid options: %v", e.Cause)
}

func (e *OptionsError) Unwrap() error {
	return e.Cause
}

// StrategyError records one rendering strategy's failure
type StrategyError struct {
	Strategy string
	Cause    error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

func (e *StrategyError) Unwrap() error {
	return e.Cause
}

// ExportError aggregates every strategy failure for one export attempt. It
// is returned only when the whole chain is exhausted.
type ExportError struct {
	Format   string
	Attempts []*StrategyError
}

func (e *ExportError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		msgs[i] = a.Error()
	}
	return fmt.Sprintf("export: all %s strategies failed: %s", e.Format, strings.Join(msgs, "; "))
}
