package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/record"
	"github.com/jonathan/docwriter/internal/template"
)

// Enhancer rewrites one section's content through an external text
// enhancement capability. Implementations are best-effort: on any failure
// they return the original content along with the error, and the assembler
// falls back to synthesized prose.
type Enhancer interface {
	Enhance(ctx context.Context, sectionTitle, content, instructions string, rec record.Record) (string, error)
}

// AssembleOptions carries per-generation context: the stakeholder audience
// shown in the document chrome and custom instructions forwarded to AI
// enhancement.
type AssembleOptions struct {
	Stakeholders       []string
	CustomInstructions string
}

// Assembler runs the section pipeline for one record against one template:
// field mapping, placeholder binding, then synthesis or enhancement for
// sections that remain templated, finishing with canonical HTML rendering.
type Assembler struct {
	enhancer Enhancer // nil when no enhancement capability is configured
	now      func() time.Time
	logger   *zap.Logger
}

// NewAssembler creates an assembler. enhancer may be nil, in which case
// sections needing synthesis always use deterministic synthesized prose.
func NewAssembler(enhancer Enhancer, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		enhancer: enhancer,
		now:      time.Now,
		logger:   logger,
	}
}

// Assemble generates one report for (template, record). Sections appear in
// template order. Enhancement failures are logged and fall back to the
// synthesizer; they never fail the report.
func (a *Assembler) Assemble(ctx context.Context, tmpl *template.Template, rec record.Record, opts AssembleOptions) (*Report, error) {
	if !rec.Has("application_name") {
		return nil, &MalformedRecordError{Field: "application_name"}
	}

	fields := record.MapFields(rec)
	generatedAt := a.now()

	sections := make([]Section, 0, len(tmpl.Sections))
	for _, ts := range tmpl.Sections {
		content := Bind(ts.Content, fields)

		if NeedsSynthesis(content) {
			content = a.finalContent(ctx, ts.Title, content, rec, opts.CustomInstructions)
		}

		sections = append(sections, Section{Title: ts.Title, Content: content})
	}

	appName := rec.Get("application_name")
	rep := &Report{
		ID:               reportID(rec, generatedAt),
		Title:            fmt.Sprintf("%s - %s", tmpl.Name, appName),
		ApplicationName:  appName,
		OrganizationName: rec.Get("organization_name"),
		Sections:         sections,
		Metadata: Metadata{
			TemplateID:    tmpl.ID,
			GeneratedAt:   generatedAt,
			ApplicationID: rec.Get("application_id"),
		},
	}
	rep.Chrome = HTMLOptions{
		TemplateName: tmpl.Name,
		Status:       rec.Get("application_status"),
		Stakeholders: opts.Stakeholders,
	}
	rep.HTMLContent = RenderHTML(rep.Title, rep.Sections, generatedAt, &rep.Chrome)

	return rep, nil
}

// finalContent picks enhanced prose when a capability is configured, falling
// back to the deterministic synthesizer on any enhancement failure.
func (a *Assembler) finalContent(ctx context.Context, title, bound string, rec record.Record, instructions string) string {
	if a.enhancer == nil {
		return Synthesize(title, rec)
	}

	enhanced, err := a.enhancer.Enhance(ctx, title, bound, instructions, rec)
	if err != nil {
		a.logger.Warn("section enhancement failed, using synthesized content",
			zap.String("section", title),
			zap.Error(err))
		return Synthesize(title, rec)
	}
	return enhanced
}

// BatchResult is the outcome of generating many reports against one
// template. Reports preserves input record order; failed records are
// skipped, counted, and reported without aborting the batch.
type BatchResult struct {
	Reports []*Report
	Failed  int
	Errors  []error
}

// AssembleBatch generates one report per record with partial-failure
// semantics: a failure for record i never prevents records i+1..n from
// being attempted.
func (a *Assembler) AssembleBatch(ctx context.Context, tmpl *template.Template, recs []record.Record, opts AssembleOptions) *BatchResult {
	result := &BatchResult{}
	for i, rec := range recs {
		rep, err := a.Assemble(ctx, tmpl, rec, opts)
		if err != nil {
			a.logger.Warn("skipping record in batch",
				zap.Int("index", i),
				zap.String("application", rec.Get("application_name")),
				zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("record %d (%s): %w", i, rec.Get("application_name"), err))
			continue
		}
		result.Reports = append(result.Reports, rep)
	}
	return result
}

// reportID builds a per-process-unique report id. The millisecond timestamp
// matches the observed id shape; the random suffix prevents collisions when
// several records of one batch assemble within the same millisecond.
func reportID(rec record.Record, t time.Time) string {
	primary := rec.Get("application_id")
	if primary == "" {
		primary = rec.Get("application_name")
	}
	return fmt.Sprintf("%s-%d-%s", primary, t.UnixMilli(), uuid.NewString()[:8])
}
