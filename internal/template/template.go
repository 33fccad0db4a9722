// Package template provides loading and validation of JSON report templates.
package template

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed template.schema.json
var templateSchema []byte

// Section is one ordered skeleton section of a template. Content may contain
// {placeholder} tokens resolved against a record's FieldMap at assembly time.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Template is a named document skeleton with ordered sections. Templates are
// immutable configuration loaded by id from the template directory.
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AvgPages     int       `json:"avgPages"`
	Sections     []Section `json:"sections"`
	Placeholders []string  `json:"placeholders"`
}

// Summary is the listing view of a template, without section bodies.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AvgPages    int    `json:"avgPages"`
}

// Store loads templates by id from a directory of JSON files, validating
// each file against the template schema before returning it.
type Store struct {
	dir    string
	schema *gojsonschema.Schema
}

// NewStore creates a template store rooted at dir.
func NewStore(dir string) (*Store, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(templateSchema))
	if err != nil {
		return nil, &SchemaError{Message: "failed to compile template schema", Cause: err}
	}
	return &Store{dir: dir, schema: schema}, nil
}

// Load reads and validates the template with the given id. A missing file is
// retried with underscores replaced by hyphens before reporting not-found.
func (s *Store) Load(id string) (*Template, error) {
	path := filepath.Join(s.dir, id+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join(s.dir, strings.ReplaceAll(id, "_", "-")+".json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &SchemaError{Message: "failed to read template file", Cause: err}
	}

	if err := s.validate(data); err != nil {
		return nil, err
	}

	var tmpl Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, &SchemaError{Message: "failed to parse template JSON", Cause: err}
	}

	return &tmpl, nil
}

// List enumerates the templates available in the store directory, sorted by
// id. Files that fail to parse are skipped rather than failing the listing.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &SchemaError{Message: "failed to read template directory", Cause: err}
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var tmpl Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			ID:          tmpl.ID,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			AvgPages:    tmpl.AvgPages,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (s *Store) validate(data []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaError{Message: "failed to run schema validation", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
