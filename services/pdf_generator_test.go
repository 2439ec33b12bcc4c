package services

import (
	"context"
	"os"
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPDFOptions(t *testing.T) {
	opts := DefaultPDFOptions()
	assert.Equal(t, "portrait", opts.PageOrientation)
	assert.Equal(t, "A4", opts.PageSize)

	w, h := opts.paperSize()
	assert.Equal(t, 8.27, w)
	assert.Equal(t, 11.69, h)

	opts.PageOrientation = "landscape"
	opts.PageSize = "letter"
	w, h = opts.paperSize()
	assert.Equal(t, 11.0, w)
	assert.Equal(t, 8.5, h)
}

func TestBuildProjectReportHTML(t *testing.T) {
	employee := &models.User{Name: "Ruwan"}
	project := &models.Project{
		Title:              "Body kit <install>",
		Status:             models.ProjectStatusOngoing,
		ProgressPercentage: 60,
		EstimatedCost:      decimal.RequireFromString("1500.5"),
		Customer:           models.User{Name: "Kasun"},
		Employee:           employee,
		Vehicle:            models.Vehicle{Model: "Corolla", Year: 2019, LicensePlate: "CAB-1"},
	}
	now := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	updates := []models.ProgressUpdate{
		{Stage: "Prep", Percentage: 20, CreatedAt: now, UpdatedBy: *employee},
		{Stage: "Paint", Percentage: 60, CreatedAt: now, UpdatedBy: *employee},
	}

	html, err := BuildProjectReportHTML(project, updates, now)
	assert.NoError(t, err)
	assert.Contains(t, html, "Body kit &lt;install&gt;")
	assert.Contains(t, html, "2019 Corolla (CAB-1)")
	assert.Contains(t, html, "1500.50")
	assert.Contains(t, html, "Average reported progress: 40.0%")
	assert.Contains(t, html, "Mar 3, 2026")

	empty, err := BuildProjectReportHTML(&models.Project{Title: "Empty"}, nil, now)
	assert.NoError(t, err)
	assert.Contains(t, empty, "No progress updates yet.")
}

func TestGeneratePDFSmoke(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}

	pdf, err := GeneratePDF(context.Background(), "<h1>Hello</h1>", DefaultPDFOptions())
	if err != nil {
		t.Errorf("GeneratePDF failed: %v", err)
		return
	}
	assert.Contains(t, string(pdf[:5]), "%PDF-")
}
