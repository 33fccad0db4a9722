package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/docwriter/internal/report"
)

const displayDateLayout = "January 2, 2006"

// mm per CSS pixel at 96dpi, used to place the logo box.
const mmPerPixel = 25.4 / 96.0

// StructuredPDF renders the report from its section model with go-pdf,
// without a browser. Layout is simpler than the browser strategy but keeps
// the header, info table, and per-section structure.
type StructuredPDF struct {
	defaultLogoPath string
}

func NewStructuredPDF(defaultLogoPath string) *StructuredPDF {
	return &StructuredPDF{defaultLogoPath: defaultLogoPath}
}

func (s *StructuredPDF) Name() string { return "structuredPDF" }

func (s *StructuredPDF) Render(_ context.Context, rep *report.Report, opts Options) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(rep.Title, true)
	if opts.CustomInstructions != "" {
		doc.SetSubject(opts.CustomInstructions, false)
	}
	doc.AliasNbPages("")

	generated := rep.Metadata.GeneratedAt.Format(displayDateLayout)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetDrawColor(229, 231, 235)
		doc.Line(15, doc.GetY(), 195, doc.GetY())
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(107, 114, 128)
		doc.CellFormat(0, 10,
			tr(fmt.Sprintf("Generated on %s by DocWriter    Page %d of {nb}", generated, doc.PageNo())),
			"", 0, "C", false, 0, "")
	})
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	s.writeLogo(doc, opts, rep.ID)

	org := fallback(rep.OrganizationName, "Organization Name")
	appName := fallback(rep.ApplicationName, "Application Name")
	appID := fallback(rep.Metadata.ApplicationID, "Application ID")

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(37, 99, 235)
	doc.CellFormat(0, 12, tr(org), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(30, 64, 175)
	doc.CellFormat(0, 10, tr(rep.Title), "", 1, "C", false, 0, "")

	doc.SetDrawColor(37, 99, 235)
	doc.SetLineWidth(0.8)
	doc.Line(15, doc.GetY()+2, 195, doc.GetY()+2)
	doc.SetLineWidth(0.2)
	doc.Ln(8)

	if audience := FormatStakeholders(opts.Stakeholders); audience != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(30, 64, 175)
		doc.CellFormat(0, 8, "Stakeholder Audience", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(0, 0, 0)
		doc.MultiCell(0, 6, tr(audience), "", "L", false)
		doc.Ln(4)
	}

	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(30, 64, 175)
	doc.CellFormat(0, 9, "Report Information", "", 1, "L", false, 0, "")
	writeKVTable(doc, tr, [][2]string{
		{"Application ID", appID},
		{"Application Name", appName},
		{"Organization", org},
		{"Status", "Active"},
		{"Generated Date", generated},
	})
	doc.Ln(6)

	identity := rep.Identity()
	for _, sec := range rep.Sections {
		doc.SetFillColor(239, 246, 255)
		doc.SetFont("Helvetica", "B", 14)
		doc.SetTextColor(30, 64, 175)
		doc.CellFormat(0, 10, tr(sec.Title), "", 1, "L", true, 0, "")
		doc.Ln(2)

		content := cleanContent(report.Resolve(sec.Content, identity))
		if rows, ok := tableRows(content); ok {
			writeKVTable(doc, tr, rows)
		} else {
			doc.SetFont("Helvetica", "", 11)
			doc.SetTextColor(0, 0, 0)
			doc.MultiCell(0, 6, tr(content), "", "L", false)
		}
		doc.Ln(6)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Cause: err}
	}
	return buf.Bytes(), nil
}

// writeLogo draws the configured logo centered at the current position. A
// load failure degrades to visible placeholder text rather than failing the
// whole render.
func (s *StructuredPDF) writeLogo(doc *fpdf.Fpdf, opts Options, reportID string) {
	path := logoPath(opts, s.defaultLogoPath)
	if path == "" {
		return
	}

	logo, err := LoadLogo(path)
	if err != nil {
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(107, 114, 128)
		doc.CellFormat(0, 6, "[logo unavailable]", "", 1, "C", false, 0, "")
		doc.Ln(2)
		return
	}

	name := "logo-" + reportID
	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logo.PNG))
	w := float64(logo.Width) * mmPerPixel
	h := float64(logo.Height) * mmPerPixel
	doc.ImageOptions(name, (210-w)/2, doc.GetY(), w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetY(doc.GetY() + h + 4)
}

// writeKVTable draws a bordered two column table with alternating row fill.
func writeKVTable(doc *fpdf.Fpdf, tr func(string) string, rows [][2]string) {
	for i, row := range rows {
		fill := i%2 == 0
		doc.SetFillColor(249, 250, 251)

		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(55, 65, 81)
		doc.CellFormat(60, 8, tr(row[0]), "1", 0, "L", fill, 0, "")

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(0, 8, tr(row[1]), "1", 1, "L", fill, 0, "")
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
