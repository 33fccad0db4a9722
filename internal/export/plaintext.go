package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pdf/fpdf"

	"github.com/jonathan/docwriter/internal/report"
)

// PlainTextPDF is the last resort PDF strategy: it extracts readable text
// from the resolved HTML and lays it out line by line. No styling, no
// images, but it cannot fail on layout grounds.
type PlainTextPDF struct{}

func NewPlainTextPDF() *PlainTextPDF {
	return &PlainTextPDF{}
}

func (s *PlainTextPDF) Name() string { return "plainTextPDF" }

func (s *PlainTextPDF) Render(_ context.Context, rep *report.Report, opts Options) ([]byte, error) {
	html := report.Resolve(rep.HTMLContent, rep.Identity())

	text, err := extractText(html)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Cause: err}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(rep.Title, true)
	if opts.CustomInstructions != "" {
		doc.SetSubject(opts.CustomInstructions, false)
	}
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	org := fallback(rep.OrganizationName, "Organization Name")
	appName := fallback(rep.ApplicationName, "Application Name")
	appID := fallback(rep.Metadata.ApplicationID, "Application ID")

	doc.SetFont("Helvetica", "B", 18)
	doc.Text(20, 20, tr(appName))
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(20, 32, "Application Profile Report")
	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 44, tr("Organization: "+org))
	doc.Text(20, 52, tr("Application ID: "+appID))
	doc.Text(20, 60, tr(fmt.Sprintf("Generated: %s", rep.Metadata.GeneratedAt.Format(displayDateLayout))))
	doc.Line(20, 66, 190, 66)

	doc.SetFont("Helvetica", "", 10)
	_, pageHeight := doc.GetPageSize()
	const margin = 20.0
	const lineHeight = 5.0

	y := 74.0
	for _, line := range doc.SplitText(tr(text), 170) {
		if y > pageHeight-margin {
			doc.AddPage()
			y = margin
		}
		doc.Text(20, y, line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Cause: err}
	}
	return buf.Bytes(), nil
}

// extractText walks headings, paragraphs, and list items in document order,
// falling back to the whole body text when nothing structured is found.
func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			b.WriteString("- ")
		}
		b.WriteString(text)
		b.WriteString("\n")
	})

	text := strings.TrimSpace(b.String())
	if text == "" {
		text = strings.TrimSpace(doc.Find("body").Text())
	}
	if text == "" {
		text = "No content available"
	}
	return text, nil
}
