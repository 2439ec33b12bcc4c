package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"autocare_portal_go/config"
	"autocare_portal_go/services/i18n"

	"github.com/resend/resend-go/v2"
)

//go:embed email_templates/*
var emailTemplates embed.FS

const emailTemplateDir = "email_templates"

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// buildEmail renders templateName for lang, falling back to the base (English) template
func buildEmail(templateName, lang string, data interface{}, toEmail string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, lang, data)
	if err != nil {
		log.Printf("Error loading %s email template for lang %s: %v", templateName, lang, err)
	}

	return &Email{
		To:       []string{toEmail},
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// templatePath returns the localized template file if present, else the base file
func templatePath(templateName, lang, ext string) string {
	localized := fmt.Sprintf("%s/%s_%s%s", emailTemplateDir, templateName, lang, ext)
	if _, err := emailTemplates.Open(localized); err == nil {
		return localized
	}
	return fmt.Sprintf("%s/%s%s", emailTemplateDir, templateName, ext)
}

// loadTemplate renders the .html body with html/template and the .txt body with text/template
func loadTemplate(templateName, lang string, data interface{}) (string, string, error) {
	htmlPath := templatePath(templateName, lang, ".html")
	htmlTmpl, err := htmltemplate.ParseFS(emailTemplates, htmlPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlPath, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlPath, err)
	}

	textPath := templatePath(templateName, lang, ".txt")
	textTmpl, err := texttemplate.ParseFS(emailTemplates, textPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textPath, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textPath, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In test mode the email is only logged
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email in a goroutine so handlers don't block on Resend
func SendEmailAsync(cfg *config.Config, email *Email) {
	if cfg == nil || email == nil {
		return
	}
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// WelcomeEmailData contains data for the welcome email template
type WelcomeEmailData struct {
	UserName string
	LoginURL string
}

// BuildWelcomeEmail creates a welcome email for new customers
func BuildWelcomeEmail(userEmail, userName, loginURL, lang string) *Email {
	email := buildEmail("welcome", lang, WelcomeEmailData{UserName: userName, LoginURL: loginURL}, userEmail)
	email.Subject = i18n.Translate(lang, "email.subject.welcome")
	return email
}

// AppointmentStatusEmailData contains data for the appointment status change template
type AppointmentStatusEmailData struct {
	CustomerName string
	ServiceName  string
	VehicleName  string
	Date         string
	TimeRange    string
	Status       string
	EmployeeName string
	Link         string
}

// BuildAppointmentStatusEmail tells the customer their appointment changed status
func BuildAppointmentStatusEmail(customerEmail string, data AppointmentStatusEmailData, lang string) *Email {
	email := buildEmail("appointment_status", lang, data, customerEmail)
	email.Subject = i18n.Translate(lang, "email.subject.appointment_status", map[string]interface{}{
		"status": data.Status,
	})
	return email
}

// ProgressUpdateEmailData contains data for the progress update template
type ProgressUpdateEmailData struct {
	CustomerName string
	Subject      string // service name or project title
	Stage        string
	Percentage   int
	Remarks      string
	Link         string
}

// BuildProgressUpdateEmail tells the customer about a new progress update
func BuildProgressUpdateEmail(customerEmail string, data ProgressUpdateEmailData, lang string) *Email {
	email := buildEmail("progress_update", lang, data, customerEmail)
	email.Subject = i18n.Translate(lang, "email.subject.progress_update", map[string]interface{}{
		"subject": data.Subject,
	})
	return email
}

// AppointmentReminderEmailData contains data for the reminder template
type AppointmentReminderEmailData struct {
	CustomerName string
	ServiceName  string
	VehicleName  string
	Date         string
	StartTime    string
	EmployeeName string
	Link         string
}

// BuildAppointmentReminderEmail creates the day-before reminder
func BuildAppointmentReminderEmail(customerEmail string, data AppointmentReminderEmailData, lang string) *Email {
	email := buildEmail("appointment_reminder", lang, data, customerEmail)
	email.Subject = i18n.Translate(lang, "email.subject.appointment_reminder")
	return email
}
