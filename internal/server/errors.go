// Package server provides the HTTP REST API for report generation.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/record"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/session"
	"github.com/jonathan/docwriter/internal/template"
)

// ErrReportNotFound indicates a report id missing from an existing session
type ErrReportNotFound struct {
	ReportID string
}

func (e *ErrReportNotFound) Error() string {
	return fmt.Sprintf("report not found: %s", e.ReportID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		templateNotFound *template.NotFoundError
		sessionNotFound  *session.NotFoundError
		reportNotFound   *ErrReportNotFound
		validation       *ErrValidation
		templateInvalid  *template.ValidationError
		parseErr         *record.ParseError
		malformed        *report.MalformedRecordError
		optionsErr       *export.OptionsError
		enhanceErr       *enhance.EnhanceError
	)
	switch {
	case errors.As(err, &templateNotFound),
		errors.As(err, &sessionNotFound),
		errors.As(err, &reportNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation),
		errors.As(err, &templateInvalid),
		errors.As(err, &parseErr),
		errors.As(err, &malformed),
		errors.As(err, &optionsErr):
		return http.StatusBadRequest
	case errors.As(err, &enhanceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
