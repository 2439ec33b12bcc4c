package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"autocare_portal_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed report_templates/*.html
var reportTemplates embed.FS

var projectReportTmpl = template.Must(template.New("project_report.html").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
}).ParseFS(reportTemplates, "report_templates/project_report.html"))

// PDFTimeout bounds a single headless Chrome render
const PDFTimeout = 30 * time.Second

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // letter, legal, A4
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns A4 portrait with half-inch margins
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       36,
		MarginBottom:    36,
		MarginLeft:      36,
		MarginRight:     36,
	}
}

// paperSize returns width and height in inches
func (o PDFOptions) paperSize() (float64, float64) {
	var w, h float64
	switch o.PageSize {
	case "legal":
		w, h = 8.5, 14.0
	case "A4":
		w, h = 8.27, 11.69
	default: // letter
		w, h = 8.5, 11.0
	}
	if o.PageOrientation == "landscape" {
		w, h = h, w
	}
	return w, h
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	// Custom Chrome path (headless-shell in Docker)
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	ctx, timeoutCancel := context.WithTimeout(ctx, PDFTimeout)
	defer timeoutCancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	paperWidth, paperHeight := options.paperSize()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(float64(options.MarginTop) / 72.0).
				WithMarginBottom(float64(options.MarginBottom) / 72.0).
				WithMarginLeft(float64(options.MarginLeft) / 72.0).
				WithMarginRight(float64(options.MarginRight) / 72.0).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// ProjectReportData is the view model of the project service report
type ProjectReportData struct {
	Project     *models.Project
	Updates     []models.ProgressUpdate
	Average     float64
	GeneratedAt time.Time
}

// BuildProjectReportHTML renders the report page for a project and its progress history
func BuildProjectReportHTML(project *models.Project, updates []models.ProgressUpdate, now time.Time) (string, error) {
	data := ProjectReportData{
		Project:     project,
		Updates:     updates,
		Average:     AverageProgress(updates),
		GeneratedAt: now,
	}
	var buf bytes.Buffer
	if err := projectReportTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render project report: %w", err)
	}
	return buf.String(), nil
}

// GenerateProjectReportPDF renders the project report and prints it to PDF
func GenerateProjectReportPDF(ctx context.Context, project *models.Project, updates []models.ProgressUpdate) ([]byte, error) {
	html, err := BuildProjectReportHTML(project, updates, time.Now())
	if err != nil {
		return nil, err
	}
	return GeneratePDF(ctx, html, DefaultPDFOptions())
}
