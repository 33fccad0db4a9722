package export

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Format identifiers accepted by the exporter.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Options controls a single document export. CustomInstructions is recorded
// as document metadata by the structured strategies (PDF subject, DOCX core
// description).
type Options struct {
	Format             string   `json:"format" validate:"required,oneof=pdf docx"`
	LogoPath           string   `json:"logoPath,omitempty"`
	UseDefaultLogo     bool     `json:"useDefaultLogo,omitempty"`
	Stakeholders       []string `json:"stakeholderAudience,omitempty"`
	CustomInstructions string   `json:"customInstructions,omitempty"`
}

var validate = validator.New()

// Validate checks the options against their declared constraints.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return &OptionsError{Cause: err}
	}
	return nil
}

// FormatStakeholders joins a stakeholder list for display: "A", "A and B",
// or "A, B, and C". Empty input yields the empty string.
func FormatStakeholders(stakeholders []string) string {
	switch len(stakeholders) {
	case 0:
		return ""
	case 1:
		return stakeholders[0]
	case 2:
		return stakeholders[0] + " and " + stakeholders[1]
	default:
		return strings.Join(stakeholders[:len(stakeholders)-1], ", ") + ", and " + stakeholders[len(stakeholders)-1]
	}
}
