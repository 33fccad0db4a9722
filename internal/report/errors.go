package report

import "fmt"

// MalformedRecordError indicates a record missing a field the assembler
// requires. Records like this should have been excluded by the upstream
// ingestion boundary.
type MalformedRecordError struct {
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: missing required field %s", e.Field)
}
