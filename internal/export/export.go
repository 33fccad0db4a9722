package export

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/report"
)

// Strategy renders one report into document bytes. Strategies are ordered by
// fidelity; a failure hands the report to the next strategy in the chain.
type Strategy interface {
	Name() string
	Render(ctx context.Context, rep *report.Report, opts Options) ([]byte, error)
}

// Exporter walks a per-format strategy chain until one strategy succeeds.
type Exporter struct {
	pdfChain  []Strategy
	docxChain []Strategy
	logger    *zap.Logger
}

// NewExporter builds the standard chains: full-layout browser PDF, then
// structured PDF, then plain text PDF; DOCX has a single structured strategy.
// chromeTimeout <= 0 selects the default; logger may be nil.
func NewExporter(chromeTimeout time.Duration, defaultLogoPath string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		pdfChain: []Strategy{
			NewChromePDF(chromeTimeout),
			NewStructuredPDF(defaultLogoPath),
			NewPlainTextPDF(),
		},
		docxChain: []Strategy{
			NewStructuredDOCX(defaultLogoPath),
		},
		logger: logger,
	}
}

// Export renders the report in the requested format. The returned error is
// an ExportError carrying every attempted strategy's failure when no
// strategy succeeds.
func (e *Exporter) Export(ctx context.Context, rep *report.Report, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	chain := e.pdfChain
	if opts.Format == FormatDOCX {
		chain = e.docxChain
	}

	exportErr := &ExportError{Format: opts.Format}
	for _, s := range chain {
		data, err := s.Render(ctx, rep, opts)
		if err == nil {
			return data, nil
		}
		e.logger.Warn("export strategy failed",
			zap.String("strategy", s.Name()),
			zap.String("report", rep.ID),
			zap.Error(err))
		exportErr.Attempts = append(exportErr.Attempts, &StrategyError{Strategy: s.Name(), Cause: err})
	}
	return nil, exportErr
}

// logoPath returns the logo to embed, or "" when the export carries none.
func logoPath(opts Options, defaultPath string) string {
	if opts.LogoPath != "" {
		return opts.LogoPath
	}
	if opts.UseDefaultLogo {
		return defaultPath
	}
	return ""
}
