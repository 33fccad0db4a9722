package export

import (
	"bytes"
	"context"
	"os"
	"strings"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/jonathan/docwriter/internal/report"
)

// StructuredDOCX renders the report as a Word document from its section
// model, with a running header and footer and a page number field.
type StructuredDOCX struct {
	defaultLogoPath string
}

func NewStructuredDOCX(defaultLogoPath string) *StructuredDOCX {
	return &StructuredDOCX{defaultLogoPath: defaultLogoPath}
}

func (s *StructuredDOCX) Name() string { return "structuredDOCX" }

func (s *StructuredDOCX) Render(_ context.Context, rep *report.Report, opts Options) ([]byte, error) {
	doc := document.New()
	doc.CoreProperties.SetTitle(rep.Title)
	if opts.CustomInstructions != "" {
		doc.CoreProperties.SetDescription(opts.CustomInstructions)
	}

	org := fallback(rep.OrganizationName, "Organization Name")
	appName := fallback(rep.ApplicationName, "Application Name")
	appID := fallback(rep.Metadata.ApplicationID, "Application ID")
	generated := rep.Metadata.GeneratedAt.Format(displayDateLayout)

	hdr := doc.AddHeader()
	hdrPara := hdr.AddParagraph()
	hdrPara.Properties().SetAlignment(wml.ST_JcCenter)
	hdrRun := hdrPara.AddRun()
	hdrRun.Properties().SetBold(true)
	hdrRun.AddText(org + " - " + rep.Title)

	ftr := doc.AddFooter()
	ftrPara := ftr.AddParagraph()
	ftrPara.Properties().SetAlignment(wml.ST_JcCenter)
	ftrRun := ftrPara.AddRun()
	ftrRun.AddText("Generated on " + generated + " by DocWriter    Page ")
	ftrRun.AddField(document.FieldCurrentPage)
	ftrRun.AddText(" of ")
	ftrRun.AddField(document.FieldNumberOfPages)

	section := doc.BodySection()
	section.SetHeader(hdr, wml.ST_HdrFtrDefault)
	section.SetFooter(ftr, wml.ST_HdrFtrDefault)

	s.writeLogo(doc, opts)

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.Properties().SetAlignment(wml.ST_JcCenter)
	title.AddRun().AddText(org)

	sub := doc.AddParagraph()
	sub.SetStyle("Heading1")
	sub.Properties().SetAlignment(wml.ST_JcCenter)
	sub.AddRun().AddText(rep.Title)

	if audience := FormatStakeholders(opts.Stakeholders); audience != "" {
		h := doc.AddParagraph()
		h.SetStyle("Heading2")
		h.AddRun().AddText("Stakeholder Audience")
		doc.AddParagraph().AddRun().AddText(audience)
	}

	infoHeading := doc.AddParagraph()
	infoHeading.SetStyle("Heading2")
	infoHeading.AddRun().AddText("Report Information")
	writeDOCXTable(doc, [][2]string{
		{"Application ID", appID},
		{"Application Name", appName},
		{"Organization", org},
		{"Status", "Active"},
		{"Generated Date", generated},
	})

	identity := rep.Identity()
	for _, sec := range rep.Sections {
		h := doc.AddParagraph()
		h.SetStyle("Heading2")
		h.AddRun().AddText(sec.Title)

		content := cleanContent(report.Resolve(sec.Content, identity))
		if rows, ok := tableRows(content); ok {
			writeDOCXTable(doc, rows)
			continue
		}
		for _, line := range splitNonBlank(content) {
			doc.AddParagraph().AddRun().AddText(line)
		}
	}

	closing := doc.AddParagraph()
	closing.Properties().SetAlignment(wml.ST_JcCenter)
	closing.AddRun().AddText("This report was generated on " + generated + " by DocWriter")

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Cause: err}
	}
	return buf.Bytes(), nil
}

// writeLogo embeds the configured logo centered above the title. Failures
// degrade to a visible placeholder paragraph.
func (s *StructuredDOCX) writeLogo(doc *document.Document, opts Options) {
	path := logoPath(opts, s.defaultLogoPath)
	if path == "" {
		return
	}

	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)

	logo, err := LoadLogo(path)
	if err != nil {
		para.AddRun().AddText("[logo unavailable]")
		return
	}

	// the image API reads from disk, so the scaled PNG goes through a
	// temporary file
	tmp, err := os.CreateTemp("", "docwriter-logo-*.png")
	if err != nil {
		para.AddRun().AddText("[logo unavailable]")
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(logo.PNG); err != nil {
		tmp.Close()
		para.AddRun().AddText("[logo unavailable]")
		return
	}
	tmp.Close()

	img, err := common.ImageFromFile(tmp.Name())
	if err != nil {
		para.AddRun().AddText("[logo unavailable]")
		return
	}
	iref, err := doc.AddImage(img)
	if err != nil {
		para.AddRun().AddText("[logo unavailable]")
		return
	}
	inline, err := para.AddRun().AddDrawingInline(iref)
	if err != nil {
		para.AddRun().AddText("[logo unavailable]")
		return
	}
	inline.SetSize(
		measurement.Distance(logo.Width)*measurement.Pixel96,
		measurement.Distance(logo.Height)*measurement.Pixel96,
	)
}

// writeDOCXTable adds a full width bordered key/value table.
func writeDOCXTable(doc *document.Document, rows [][2]string) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	borders := table.Properties().Borders()
	borders.SetAll(wml.ST_BorderSingle, color.Auto, 0.5*measurement.Point)

	for _, row := range rows {
		r := table.AddRow()

		keyCell := r.AddCell()
		keyRun := keyCell.AddParagraph().AddRun()
		keyRun.Properties().SetBold(true)
		keyRun.AddText(row[0])

		r.AddCell().AddParagraph().AddRun().AddText(row[1])
	}
}

func splitNonBlank(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		out = []string{"No content available"}
	}
	return out
}
