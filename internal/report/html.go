package report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

// HTMLOptions carries the non-identity chrome values for canonical HTML.
// Reports persist their assembly-time options so a re-render after a
// section edit reproduces the same chrome.
type HTMLOptions struct {
	TemplateName string   `json:"templateName"`
	Status       string   `json:"status"`
	Stakeholders []string `json:"stakeholders"`
}

// displayDateFormat matches the long en-US date used throughout the chrome.
const displayDateFormat = "January 2, 2006"

var orderedItemPattern = regexp.MustCompile(`^\d+\.\s*`)

// RenderHTML serializes a report title and sections into one self-contained
// HTML document. The chrome embeds the identity placeholders
// {application_name}, {organization_name} and {application_id} unresolved so
// the stored document stays re-renderable after edits; Resolve substitutes
// them at display time. Calling RenderHTML again after a section edit yields
// a complete replacement document.
func RenderHTML(title string, sections []Section, generatedAt time.Time, opts *HTMLOptions) string {
	if opts == nil {
		opts = &HTMLOptions{}
	}
	status := opts.Status
	if status == "" {
		status = "Active"
	}
	date := generatedAt.Format(displayDateFormat)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n" + documentStyle + "</style>\n</head>\n<body>\n")

	b.WriteString("<div class=\"header\">\n")
	b.WriteString("<div class=\"organization-name\">{organization_name}</div>\n")
	fmt.Fprintf(&b, "<h1 class=\"report-title\">%s</h1>\n", html.EscapeString(title))
	b.WriteString("<div class=\"subtitle\">Developed for {application_name}</div>\n")
	b.WriteString("<div class=\"subtitle\">Report Owner: Enterprise Architecture</div>\n")
	b.WriteString("</div>\n")

	b.WriteString("<div class=\"metadata\">\n<h3>Report Information</h3>\n<table class=\"table\">\n")
	b.WriteString("<tr><td><strong>Application ID:</strong></td><td>{application_id}</td></tr>\n")
	b.WriteString("<tr><td><strong>Application Name:</strong></td><td>{application_name}</td></tr>\n")
	b.WriteString("<tr><td><strong>Organization:</strong></td><td>{organization_name}</td></tr>\n")
	fmt.Fprintf(&b, "<tr><td><strong>Status:</strong></td><td><span class=\"highlight\">%s</span></td></tr>\n", html.EscapeString(status))
	fmt.Fprintf(&b, "<tr><td><strong>Generated Date:</strong></td><td>%s</td></tr>\n", date)
	if opts.TemplateName != "" {
		fmt.Fprintf(&b, "<tr><td><strong>Template:</strong></td><td>%s</td></tr>\n", html.EscapeString(opts.TemplateName))
	}
	b.WriteString("</table>\n</div>\n")

	for _, section := range sections {
		b.WriteString("<div class=\"section\">\n")
		fmt.Fprintf(&b, "<h2 class=\"section-title\">%s</h2>\n", html.EscapeString(section.Title))
		b.WriteString("<div class=\"section-content\">\n")
		b.WriteString(FormatContent(section.Content))
		b.WriteString("</div>\n</div>\n")
	}

	b.WriteString("<div class=\"footer\">\n")
	fmt.Fprintf(&b, "<p>This report was generated on %s by DocWriter</p>\n", date)
	audience := "General"
	if len(opts.Stakeholders) > 0 {
		audience = strings.Join(opts.Stakeholders, ", ")
	}
	fmt.Fprintf(&b, "<p>Stakeholder Audience: %s</p>\n", html.EscapeString(audience))
	b.WriteString("</div>\n</body>\n</html>\n")

	return b.String()
}

// FormatContent converts line-oriented section content into block markup.
// Blank lines are dropped; "N." and bullet-marker lines become list items,
// with consecutive items wrapped in a single list element; "**bold**" spans
// become <strong>; everything else becomes a paragraph. Text is HTML-escaped
// before markup is applied, so user content cannot break document structure.
func FormatContent(content string) string {
	var b strings.Builder
	inList := false
	listTag := ""

	closeList := func() {
		if inList {
			fmt.Fprintf(&b, "</%s>\n", listTag)
			inList = false
		}
	}
	openList := func(tag string) {
		if inList && listTag != tag {
			closeList()
		}
		if !inList {
			fmt.Fprintf(&b, "<%s>\n", tag)
			inList = true
			listTag = tag
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case orderedItemPattern.MatchString(line):
			openList("ol")
			item := orderedItemPattern.ReplaceAllString(line, "")
			fmt.Fprintf(&b, "<li>%s</li>\n", boldSpans(item))
		case strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-"):
			openList("ul")
			item := strings.TrimSpace(strings.TrimLeft(line, "•-"))
			fmt.Fprintf(&b, "<li>%s</li>\n", boldSpans(item))
		default:
			closeList()
			fmt.Fprintf(&b, "<p>%s</p>\n", boldSpans(line))
		}
	}
	closeList()

	return b.String()
}

// boldSpans escapes text and converts paired **text** markers into
// <strong> spans. An unpaired marker is left as literal text.
func boldSpans(line string) string {
	parts := strings.Split(line, "**")
	if len(parts) < 3 {
		return html.EscapeString(line)
	}

	var b strings.Builder
	for i, part := range parts {
		escaped := html.EscapeString(part)
		switch {
		case i%2 == 1 && i < len(parts)-1:
			b.WriteString("<strong>" + escaped + "</strong>")
		case i%2 == 1:
			// trailing unpaired marker stays literal
			b.WriteString("**" + escaped)
		default:
			b.WriteString(escaped)
		}
	}
	return b.String()
}

const documentStyle = `body {
    font-family: 'Arial', sans-serif;
    line-height: 1.6;
    margin: 0;
    padding: 40px;
    background-color: #ffffff;
    color: #333;
}
.header {
    text-align: center;
    margin-bottom: 40px;
    border-bottom: 3px solid #2563eb;
    padding-bottom: 20px;
}
.organization-name {
    color: #2563eb;
    font-size: 2.5rem;
    font-weight: bold;
    margin-bottom: 10px;
}
.report-title {
    font-size: 2rem;
    color: #1e40af;
    margin: 10px 0;
}
.subtitle {
    font-size: 1.2rem;
    color: #64748b;
    margin: 5px 0;
}
.metadata {
    background-color: #f8fafc;
    padding: 20px;
    border-radius: 8px;
    margin: 20px 0;
    border-left: 4px solid #2563eb;
}
.section {
    margin: 30px 0;
    page-break-inside: avoid;
}
.section-title {
    font-size: 1.5rem;
    color: #1e40af;
    margin-bottom: 15px;
    padding-bottom: 8px;
    border-bottom: 2px solid #e2e8f0;
}
.section-content {
    margin-left: 10px;
    line-height: 1.8;
}
.table {
    width: 100%;
    border-collapse: collapse;
    margin: 15px 0;
}
.table th, .table td {
    border: 1px solid #d1d5db;
    padding: 12px;
    text-align: left;
}
.table th {
    background-color: #f3f4f6;
    font-weight: bold;
    color: #374151;
}
.table tr:nth-child(even) {
    background-color: #f9fafb;
}
.highlight {
    background-color: #fef3c7;
    padding: 2px 4px;
    border-radius: 3px;
}
.footer {
    margin-top: 50px;
    text-align: center;
    color: #6b7280;
    font-size: 0.9rem;
    border-top: 1px solid #e5e7eb;
    padding-top: 20px;
}
@page {
    size: A4;
    margin: 20mm 15mm;
}
@media print {
    body {
        margin: 0;
        padding: 0;
        font-size: 12pt;
        line-height: 1.4;
    }
    .section {
        page-break-inside: avoid;
        margin-bottom: 20pt;
    }
    .header {
        page-break-after: avoid;
        margin-bottom: 30pt;
    }
    .section-title {
        page-break-after: avoid;
        margin-top: 20pt;
        margin-bottom: 10pt;
    }
    .table {
        page-break-inside: avoid;
    }
}
* {
    -webkit-print-color-adjust: exact !important;
    print-color-adjust: exact !important;
}
`
