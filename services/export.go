package services

import (
	"bytes"
	"context"
	"fmt"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Sheet names are fixed so the workbook can be re-read programmatically
const (
	sheetSummary      = "Summary"
	sheetAppointments = "Appointments"
	sheetProjects     = "Projects"
)

// GenerateCustomerWorkbook builds an xlsx export of the customer's dashboard:
// a summary of the statistics plus one sheet per appointment/project list.
func GenerateCustomerWorkbook(ctx context.Context, db *gorm.DB, customer *models.User) (*bytes.Buffer, error) {
	stats, err := ComputeCustomerStats(db, customer.ID)
	if err != nil {
		return nil, err
	}
	appointments, err := ListCustomerAppointments(db, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	projects, err := ListCustomerProjects(db, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F2937"}, Pattern: 1},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})

	// --- Summary ---
	f.SetSheetName("Sheet1", sheetSummary)
	f.SetCellValue(sheetSummary, "A1", i18n.T(ctx, "app.name")+" - "+customer.Name)
	f.SetCellStyle(sheetSummary, "A1", "A1", titleStyle)

	summary := []struct {
		key   string
		value int64
	}{
		{"dashboard.total_vehicles", stats.TotalVehicles},
		{"dashboard.total_appointments", stats.TotalAppointments},
		{"dashboard.upcoming_appointments", stats.UpcomingAppointments},
		{"dashboard.completed_appointments", stats.CompletedAppointments},
		{"dashboard.total_projects", stats.TotalProjects},
		{"dashboard.ongoing_projects", stats.OngoingProjects},
		{"dashboard.completed_projects", stats.CompletedProjects},
	}
	for i, row := range summary {
		r := i + 3
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", r), i18n.T(ctx, row.key))
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", r), row.value)
	}
	f.SetColWidth(sheetSummary, "A", "A", 32)

	// --- Appointments ---
	f.NewSheet(sheetAppointments)
	writeHeader(f, sheetAppointments, headerStyle, []string{
		i18n.T(ctx, "appointments.date"),
		i18n.T(ctx, "appointments.start_time"),
		i18n.T(ctx, "appointments.end_time"),
		i18n.T(ctx, "appointments.service"),
		i18n.T(ctx, "appointments.vehicle"),
		i18n.T(ctx, "appointments.employee"),
		i18n.T(ctx, "appointments.status"),
	})
	for i, a := range appointments {
		employee := ""
		if a.Employee != nil {
			employee = a.Employee.Name
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheetAppointments, cell, &[]interface{}{
			a.Date.Format("2006-01-02"),
			a.StartTime,
			a.EndTime,
			a.ServiceName,
			a.Vehicle.DisplayName(),
			employee,
			i18n.T(ctx, "status."+a.Status),
		})
	}
	f.SetColWidth(sheetAppointments, "A", "G", 18)

	// --- Projects ---
	f.NewSheet(sheetProjects)
	writeHeader(f, sheetProjects, headerStyle, []string{
		i18n.T(ctx, "projects.title"),
		i18n.T(ctx, "appointments.vehicle"),
		i18n.T(ctx, "appointments.status"),
		i18n.T(ctx, "projects.progress"),
		i18n.T(ctx, "projects.estimated_cost"),
	})
	for i, p := range projects {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		cost, _ := p.EstimatedCost.Float64()
		f.SetSheetRow(sheetProjects, cell, &[]interface{}{
			p.Title,
			p.Vehicle.DisplayName(),
			i18n.T(ctx, "status."+p.Status),
			p.ProgressPercentage,
			cost,
		})
	}
	f.SetColWidth(sheetProjects, "A", "E", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
