// Package record provides CSV ingestion of application inventory rows and
// the mapping of raw columns into placeholder substitution values.
package record

import (
	"encoding/csv"
	"io"
	"strings"
)

// Record is one row of source tabular data describing one application.
// Keys are column names; any column may be absent. Consumers must apply
// documented defaults rather than assume presence.
type Record map[string]string

// Get returns the trimmed value for a column, or "" if the column is absent.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Has reports whether a column is present with a non-empty value.
func (r Record) Has(key string) bool {
	return r.Get(key) != ""
}

// ParseCSV reads header-keyed records from a CSV stream. Rows with an empty
// application_name are dropped at this boundary so the assembler can assume
// a non-empty primary name field.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &ParseError{Message: "empty csv input"}
		}
		return nil, &ParseError{Message: "failed to read csv header", Cause: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Message: "failed to read csv row", Cause: err}
		}

		rec := make(Record, len(header))
		for i, col := range header {
			if col == "" || i >= len(row) {
				continue
			}
			rec[col] = strings.TrimSpace(row[i])
		}
		if rec.Has("application_name") {
			records = append(records, rec)
		}
	}

	return records, nil
}
