package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		logger.Warnf("⚠️ detectChromePath: CHROME_PATH %s not found, probing defaults", configured)
	}

	// Common paths to check
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// MonthlyClosePDF prints the rendered monthly close page to an A4 PDF
func (s *ExportService) MonthlyClosePDF(ctx context.Context) (string, []byte, error) {
	closure, err := s.reports.MonthlyClose(ctx)
	if err != nil {
		return "", nil, err
	}

	renderURL := fmt.Sprintf("%s/admin/reports/monthly-close/render", s.baseURL)
	logger.Infof("📄 MonthlyClosePDF: printing %s", renderURL)

	pdf, err := s.printToPDF(ctx, renderURL)
	if err != nil {
		logger.Errorf("❌ MonthlyClosePDF: %v", err)
		return "", nil, err
	}

	filename := closeFilename(closure, "pdf")
	s.archive(filename, pdf)
	return filename, pdf, nil
}

func (s *ExportService) printToPDF(ctx context.Context, url string) ([]byte, error) {
	// Create context with timeout (30 seconds)
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	// Without a path chromedp auto-detects (may fail in containers)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0). // No margins, padding is in CSS
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
