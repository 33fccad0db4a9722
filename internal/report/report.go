// Package report implements the template instantiation pipeline: placeholder
// binding, content synthesis, report assembly, canonical HTML serialization,
// and identity placeholder resolution for display.
package report

import "time"

// Section is one titled block of report content. Content is line-oriented
// prose with a constrained markup subset: "N." ordered items, "•"/"-"
// bullets, and **bold** spans.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Metadata records how and when a report was generated.
type Metadata struct {
	TemplateID    string    `json:"templateId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	ApplicationID string    `json:"applicationId"`
}

// Report is the generated, editable, exportable artifact for one
// (template, record) pair. HTMLContent is the canonical serialization of
// Sections and keeps the three identity placeholders unresolved so the
// document can be re-rendered after edits; it must be regenerated whenever
// Sections change.
type Report struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	ApplicationName  string      `json:"applicationName"`
	OrganizationName string      `json:"organizationName"`
	HTMLContent      string      `json:"htmlContent"`
	Sections         []Section   `json:"sections"`
	Metadata         Metadata    `json:"metadata"`
	Chrome           HTMLOptions `json:"chrome"`
}

// Identity carries the concrete values for the three identity placeholders
// kept unresolved in canonical HTML.
func (r *Report) Identity() Identity {
	return Identity{
		ApplicationName:  r.ApplicationName,
		OrganizationName: r.OrganizationName,
		ApplicationID:    r.Metadata.ApplicationID,
	}
}

// UpdateSections replaces the report's sections (and optionally its title)
// and regenerates canonical HTML from the new content. This is the only
// legal mutation path: sections and HTMLContent always change together.
func (r *Report) UpdateSections(sections []Section, title string) {
	if title != "" {
		r.Title = title
	}
	if sections != nil {
		r.Sections = make([]Section, len(sections))
		copy(r.Sections, sections)
	}
	r.HTMLContent = RenderHTML(r.Title, r.Sections, r.Metadata.GeneratedAt, &r.Chrome)
}
