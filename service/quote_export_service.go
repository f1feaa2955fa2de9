package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"stitchquote/models"
	"stitchquote/utils"
)

// QuoteExportService renders quotes as HTML and exports them as PDF.
type QuoteExportService struct {
	baseURL string // Base URL for the render endpoint (e.g., "http://localhost:8080")
}

// NewQuoteExportService creates a new QuoteExportService
func NewQuoteExportService(baseURL string) *QuoteExportService {
	return &QuoteExportService{baseURL: baseURL}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

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

// quoteLineView is one rendered row of the quote document.
type quoteLineView struct {
	Description string
	Services    string
	Quantity    int
	UnitPrice   string
	ServiceCost string
	LineTotal   string
	Error       string
	Warnings    []string
}

// quoteView is the template data for quote.html.
type quoteView struct {
	ID            string
	CreatedAt     string
	Status        string
	Lines         []quoteLineView
	Subtotal      string
	TotalCost     string
	MarginPercent string
	LogoURL       string
}

// RenderQuoteHTML renders the quote document template.
func (s *QuoteExportService) RenderQuoteHTML(quote *models.Quote) (string, error) {
	view := quoteView{
		ID:            quote.ID,
		CreatedAt:     quote.CreatedAt.Format("2 January 2006"),
		Status:        string(quote.Status),
		Subtotal:      utils.FormatGBP(quote.Subtotal),
		TotalCost:     utils.FormatGBP(quote.TotalCost),
		MarginPercent: utils.FormatPercent(quote.MarginPercent),
	}

	if logoPath := findStaticLogo(); logoPath != "" {
		view.LogoURL = fmt.Sprintf("%s/%s", s.baseURL, filepath.ToSlash(logoPath))
	}

	for _, line := range quote.Lines {
		lv := quoteLineView{
			Description: fmt.Sprintf("%s %s, %s, %s", line.Product.Supplier, line.Product.StyleNo, line.Product.Colour, line.Product.Size),
			Services:    serviceSummary(line.Services),
			Quantity:    line.Quantity,
			UnitPrice:   utils.FormatGBP(line.UnitMarkedUpPrice),
			ServiceCost: utils.FormatGBP(line.UnitServiceCost),
			LineTotal:   utils.FormatGBP(line.LineTotal),
			Error:       line.Error,
		}
		for _, w := range line.Breakdown.Warnings {
			lv.Warnings = append(lv.Warnings, w.Message)
		}
		view.Lines = append(view.Lines, lv)
	}

	tmpl, err := template.ParseFiles(filepath.Join("templates", "quote.html"))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// serviceSummary builds the display summary of a line's decoration services.
func serviceSummary(services []models.ServiceSelection) string {
	if len(services) == 0 {
		return "Garment only"
	}
	var b bytes.Buffer
	for i, svc := range services {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(utils.ServiceLabel(string(svc.ServiceType)))
		if svc.LogoSize != "" {
			fmt.Fprintf(&b, " (%s × %d)", utils.LogoSizeLabel(svc.LogoSize), svc.LogoCount)
		}
	}
	return b.String()
}

// findStaticLogo locates the shop logo shipped with the deployment, if any.
func findStaticLogo() string {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join("static", "quote", "logo"+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF generates an A4 PDF of a saved quote using chromedp.
// quoteID is used to construct the render URL.
func (s *QuoteExportService) GeneratePDF(ctx context.Context, quoteID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	// Enable Page domain for printing
	if err := chromedp.Run(chromedpCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		// Log warning but continue
	}

	renderURL := fmt.Sprintf("%s/quotes/%s/render", s.baseURL, quoteID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500), // Wait for fonts and the logo image
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
