package export

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/docwriter/internal/report"
)

// DefaultChromeTimeout bounds one browser print run.
const DefaultChromeTimeout = 45 * time.Second

// A4 paper with the document stylesheet's print margins, in inches.
const (
	paperWidthIn   = 8.27
	paperHeightIn  = 11.69
	marginTopIn    = 0.79 // 20mm
	marginBottomIn = 0.79
	marginLeftIn   = 0.59 // 15mm
	marginRightIn  = 0.59
)

// ChromePDF prints the resolved report HTML through a headless browser for
// full stylesheet fidelity. Requires Chrome/Chromium on the host.
type ChromePDF struct {
	timeout time.Duration
}

// NewChromePDF creates the browser strategy. timeout <= 0 selects
// DefaultChromeTimeout.
func NewChromePDF(timeout time.Duration) *ChromePDF {
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}
	return &ChromePDF{timeout: timeout}
}

func (s *ChromePDF) Name() string { return "chromePDF" }

func (s *ChromePDF) Render(ctx context.Context, rep *report.Report, _ Options) ([]byte, error) {
	html := report.Resolve(rep.HTMLContent, rep.Identity())

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, s.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginTopIn).
				WithMarginBottom(marginBottomIn).
				WithMarginLeft(marginLeftIn).
				WithMarginRight(marginRightIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Cause: err}
	}
	return pdf, nil
}
